package parser

import (
	"regexp"
	"strings"
)

// Parser of file types.
type Parser struct {
	typeRegexp *regexp.Regexp
}

// New ...
func New() (p *Parser, err error) {
	p = &Parser{}
	p.typeRegexp, err = regexp.Compile(typeRegexp)
	return
}

// Type returns type of file by filename, lowercased.
func (p *Parser) Type(filename string) (string, error) {
	if submatchList := p.typeRegexp.FindAllStringSubmatch(filename, -1); len(submatchList) == 1 && len(submatchList[0]) == 2 {
		return strings.ToLower(submatchList[0][1]), nil
	}
	return "", ErrTypeNotDefined
}
