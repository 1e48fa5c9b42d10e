package values

import (
	"fmt"
	"strconv"
	"time"
)

// String renders a payload value to its canonical textual form.
// Numbers never pick up an exponent for the usual magnitudes, booleans
// render as true/false, times as RFC 3339, nil as the empty string.
func String(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
