package hubspot

import (
	"net/url"
	"regexp"
	"strings"
)

// placeholderPattern matches a whole :name token. The identifier class is
// greedy so :owner never matches inside :owner_id.
var placeholderPattern = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// ResolvePath substitutes every :name placeholder that has a matching param
// and returns the remaining params. The input bag is not modified.
func ResolvePath(template string, params Params) (string, Params, error) {
	var (
		consumed []string
		firstErr error
	)

	path := placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := token[1:]
		value, ok := params.Get(name)
		if !ok || firstErr != nil {
			return token
		}
		if _, seq := sequence(value); seq {
			firstErr = &InvalidParameterError{Key: name, Reason: "sequences cannot be interpolated into a path"}
			return token
		}
		if _, isRange := asRange(value); isRange {
			firstErr = &InvalidParameterError{Key: name, Reason: "ranges cannot be interpolated into a path"}
			return token
		}
		s, err := scalarString(name, value)
		if err != nil {
			firstErr = err
			return token
		}
		consumed = append(consumed, name)
		return url.QueryEscape(s)
	})
	if firstErr != nil {
		return "", nil, firstErr
	}

	if strings.Contains(path, ":") {
		return "", nil, &MissingInterpolationError{Path: path}
	}

	return path, params.Without(consumed...), nil
}

// hasPlaceholder reports whether template contains the exact token :name.
func hasPlaceholder(template, name string) bool {
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if match[1] == name {
			return true
		}
	}
	return false
}
