package cmd

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/s0up4200/hubspot/hubspot"
)

const rangeSeparator = ".."

// parseParams turns repeated key=value flags into an ordered bag. Keys
// containing "range" take begin..end; RFC3339 endpoints become timestamps.
func parseParams(pairs []string) (hubspot.Params, error) {
	params := make(hubspot.Params, 0, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected key=value)", pair)
		}

		if strings.Contains(key, "range") {
			begin, end, ok := strings.Cut(value, rangeSeparator)
			if !ok {
				return nil, fmt.Errorf("parameter %q needs a range value like begin..end", key)
			}
			params = append(params, hubspot.Param{
				Key:   key,
				Value: hubspot.NewRange(parseEndpoint(begin), parseEndpoint(end)),
			})
			continue
		}

		params = append(params, hubspot.Param{Key: key, Value: value})
	}
	return params, nil
}

func parseEndpoint(s string) any {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return s
}

// parseForm turns repeated field=value flags into form values.
func parseForm(pairs []string) (url.Values, error) {
	form := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q (expected name=value)", pair)
		}
		form.Add(key, value)
	}
	return form, nil
}

// buildBody applies path=value assignments on top of base. Values that are
// valid JSON literals are inserted raw, everything else as a string.
func buildBody(base []byte, sets []string) ([]byte, error) {
	body := base
	if len(body) == 0 && len(sets) > 0 {
		body = []byte("{}")
	}
	if len(body) > 0 && !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("request body is not valid JSON")
	}

	for _, set := range sets {
		path, value, ok := strings.Cut(set, "=")
		if !ok || path == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected path=value)", set)
		}

		var err error
		if gjson.Valid(value) {
			body, err = sjson.SetRawBytes(body, path, []byte(value))
		} else {
			body, err = sjson.SetBytes(body, path, value)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return body, nil
}
