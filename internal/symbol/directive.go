package symbol

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDirective parses a "//<prefix>:<name> key:"value" ..." comment line.
// ok is false when the comment is not a directive for prefix.
func ParseDirective(prefix, comment string) (a Annotation, ok bool, err error) {
	text := strings.TrimPrefix(comment, "//")
	marker := prefix + ":"
	if !strings.HasPrefix(text, marker) {
		return Annotation{}, false, nil
	}
	text = text[len(marker):]
	name, rest, _ := strings.Cut(text, " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return Annotation{}, false, fmt.Errorf("directive %q: missing name", comment)
	}
	values, err := parseValues(rest)
	if err != nil {
		return Annotation{}, true, fmt.Errorf("directive %s:%s: %w", prefix, name, err)
	}
	return Annotation{Name: name, Values: values}, true, nil
}

// parseValues reads struct-tag style key:"value" pairs.
func parseValues(s string) (map[string]string, error) {
	values := map[string]string{}
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return values, nil
		}
		i := 0
		for i < len(s) && s[i] > ' ' && s[i] != ':' && s[i] != '"' {
			i++
		}
		if i == 0 || i+1 >= len(s) || s[i] != ':' || s[i+1] != '"' {
			return nil, fmt.Errorf("malformed field near %q", s)
		}
		key := s[:i]
		s = s[i+1:]

		i = 1
		for i < len(s) && s[i] != '"' {
			if s[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(s) {
			return nil, fmt.Errorf("unterminated value for %s", key)
		}
		v, err := strconv.Unquote(s[:i+1])
		if err != nil {
			return nil, fmt.Errorf("value for %s: %w", key, err)
		}
		values[key] = v
		s = s[i+1:]
	}
}
