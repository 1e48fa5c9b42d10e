package placeholder

import (
	"regexp"
	"strings"
)

// Matcher finds and substitutes template tags.
//
// Extraction and filling share the one compiled pattern so both sides
// always agree on what a tag is.
type Matcher struct {
	tagReg *regexp.Regexp
}

// New ...
func New() (m *Matcher, err error) {
	m = &Matcher{}
	m.tagReg, err = regexp.Compile(tagRegexp)
	return
}

// Find returns the names of all non-overlapping tags in str, in order
// of appearance. Duplicates are kept, de-duplication is the caller's
// concern.
func (m *Matcher) Find(str string) (names []string) {
	for _, loc := range m.tagReg.FindAllStringSubmatchIndex(str, -1) {
		names = append(names, tagName(str, loc))
	}
	return
}

// Replace substitutes every tag in str that lookup resolves. Tags that
// lookup does not know stay verbatim, delimiters included.
func (m *Matcher) Replace(str string, lookup func(name string) (value string, ok bool)) string {
	locs := m.tagReg.FindAllStringSubmatchIndex(str, -1)
	if len(locs) == 0 {
		return str
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		value, ok := lookup(tagName(str, loc))
		if !ok {
			continue
		}
		b.WriteString(str[last:loc[0]])
		b.WriteString(value)
		last = loc[1]
	}
	b.WriteString(str[last:])
	return b.String()
}

// tagName picks the submatch that fired: group 1 for {{name}},
// group 2 for ${ name }.
func tagName(str string, loc []int) string {
	if loc[2] >= 0 {
		return str[loc[2]:loc[3]]
	}
	return str[loc[4]:loc[5]]
}
