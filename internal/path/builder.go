package path

import (
	"regexp"
)

const unsafeRegexp = `[^a-zA-Z0-9._-]`

// Builder of object storage keys.
type Builder struct {
	unsafeReg *regexp.Regexp
	uuidFunc  func() string
}

// NewBuilder ...
func NewBuilder(
	uuidFunc func() string,
) (*Builder, error) {
	unsafeReg, err := regexp.Compile(unsafeRegexp)
	if err != nil {
		return nil, err
	}
	return &Builder{
		unsafeReg: unsafeReg,
		uuidFunc:  uuidFunc,
	}, nil
}

// Template returns a collision-free storage key for an uploaded
// template, namespaced by owner.
func (b *Builder) Template(userID, filename string) string {
	return userID + "/" + b.uuidFunc() + "-" + b.unsafeReg.ReplaceAllString(filename, "_")
}
