package values

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testCase struct {
	value    interface{}
	expected string
}

var tests = []testCase{
	{value: "text", expected: "text"},
	{value: true, expected: "true"},
	{value: float64(42), expected: "42"},
	{value: 0.5, expected: "0.5"},
	{value: 7, expected: "7"},
	{value: int64(-3), expected: "-3"},
	{value: nil, expected: ""},
	{
		value:    time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		expected: "2024-03-01T12:00:00Z",
	},
}

func TestString(t *testing.T) {
	for _, test := range tests {
		assert.Equal(t, test.expected, String(test.value))
	}
}
