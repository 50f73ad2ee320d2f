package hubspot

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const batchPrefix = "batch_"

// encodingRule turns one key/value pair into query fragments. Rules are tried
// in order and the first match wins.
type encodingRule struct {
	name   string
	match  func(key string) bool
	encode func(key string, value any) ([]string, error)
}

var encodingRules = []encodingRule{
	{name: "range", match: isRangeKey, encode: encodeRange},
	{name: "batch", match: isBatchKey, encode: encodeBatch},
	{name: "plain", match: func(string) bool { return true }, encode: encodePlain},
}

func isRangeKey(key string) bool {
	return strings.Contains(key, "range")
}

func isBatchKey(key string) bool {
	return strings.HasPrefix(key, batchPrefix) && len(key) > len(batchPrefix)
}

// EncodeQuery renders params as key=value pairs joined with '&'.
// Sequences are expanded into repeated keys in element order.
func EncodeQuery(params Params) (string, error) {
	fragments := make([]string, 0, len(params))
	for _, param := range params {
		encoded, err := EncodeParam(param.Key, param.Value)
		if err != nil {
			return "", err
		}
		fragments = append(fragments, encoded...)
	}
	return strings.Join(fragments, "&"), nil
}

// EncodeParam renders a single parameter into one or more query fragments.
func EncodeParam(key string, value any) ([]string, error) {
	rule := ruleFor(key)

	if elems, ok := sequence(value); ok {
		var fragments []string
		for _, elem := range elems {
			if _, nested := sequence(elem); nested {
				return nil, &InvalidParameterError{Key: key, Reason: "nested sequences are not supported"}
			}
			encoded, err := rule.encode(key, elem)
			if err != nil {
				return nil, err
			}
			fragments = append(fragments, encoded...)
		}
		return fragments, nil
	}

	return rule.encode(key, value)
}

func ruleFor(key string) encodingRule {
	for _, rule := range encodingRules {
		if rule.match(key) {
			return rule
		}
	}
	return encodingRules[len(encodingRules)-1]
}

func encodeRange(key string, value any) ([]string, error) {
	r, ok := asRange(value)
	if !ok {
		return nil, &InvalidParameterError{Key: key, Reason: "value must be a range"}
	}
	begin, err := convertValue(key, r.Begin)
	if err != nil {
		return nil, err
	}
	end, err := convertValue(key, r.End)
	if err != nil {
		return nil, err
	}
	return []string{key + "=" + begin, key + "=" + end}, nil
}

func encodeBatch(key string, value any) ([]string, error) {
	return encodePlain(batchKey(key), value)
}

func encodePlain(key string, value any) ([]string, error) {
	converted, err := convertValue(key, value)
	if err != nil {
		return nil, err
	}
	return []string{key + "=" + converted}, nil
}

// batchKey rewrites batch_first_name to firstName.
func batchKey(key string) string {
	segments := strings.Split(strings.TrimPrefix(key, batchPrefix), "_")
	var sb strings.Builder
	sb.WriteString(segments[0])
	for _, segment := range segments[1:] {
		if segment == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(segment)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(segment[size:])
	}
	return sb.String()
}

// convertValue applies the scalar rule: timestamps become epoch milliseconds,
// everything else its query-escaped string form.
func convertValue(key string, value any) (string, error) {
	if _, ok := asRange(value); ok {
		return "", &InvalidParameterError{Key: key, Reason: "range values are only accepted for range keys"}
	}
	if _, ok := value.(map[string]any); ok {
		return "", &InvalidParameterError{Key: key, Reason: "map values cannot be encoded"}
	}
	if _, ok := sequence(value); ok {
		return "", &InvalidParameterError{Key: key, Reason: "sequences are not accepted here"}
	}
	s, err := scalarString(key, value)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(s), nil
}

// scalarString is the unescaped string form shared by query and path encoding.
func scalarString(key string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case time.Time:
		return strconv.FormatInt(v.UnixMilli(), 10), nil
	case *time.Time:
		if v == nil {
			return "", nil
		}
		return strconv.FormatInt(v.UnixMilli(), 10), nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Func, reflect.Chan:
		return "", &InvalidParameterError{Key: key, Reason: fmt.Sprintf("unsupported value type %T", value)}
	case reflect.Pointer:
		if rv.IsNil() {
			return "", nil
		}
		return scalarString(key, rv.Elem().Interface())
	}
	return fmt.Sprint(value), nil
}

func asRange(value any) (Range, bool) {
	switch r := value.(type) {
	case Range:
		return r, true
	case *Range:
		if r == nil {
			return Range{}, false
		}
		return *r, true
	}
	return Range{}, false
}

// sequence reports whether value is a slice or array to expand. Byte slices
// are treated as scalars.
func sequence(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	if _, ok := value.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
