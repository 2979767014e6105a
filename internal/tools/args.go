package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Args are the decoded arguments of a tool call. Numbers are kept as
// json.Number so that identifiers survive unchanged.
type Args map[string]any

// ParseArgs decodes a JSON object. An empty string yields empty Args.
func ParseArgs(raw string) (Args, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Args{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var args Args
	if err := dec.Decode(&args); err != nil {
		return nil, fmt.Errorf("could not decode arguments %q: %w", raw, err)
	}
	if args == nil {
		args = Args{}
	}

	return args, nil
}

// Has reports whether key is present and not null.
func (a Args) Has(key string) bool {
	v, ok := a[key]

	return ok && v != nil
}

// String returns the value of key rendered as text, or "" when absent.
func (a Args) String(key string) string {
	switch v := a[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the value of key as an integer. Numeric strings are accepted.
// ok is false when the key is absent or not an integer.
func (a Args) Int(key string) (n int64, ok bool) {
	return toInt(a[key])
}

func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		if f, err := t.Float64(); err == nil && f == math.Trunc(f) {
			return int64(f), true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, true
		}
	case float64:
		if t == math.Trunc(t) {
			return int64(t), true
		}
	case int:
		return int64(t), true
	case int64:
		return t, true
	}

	return 0, false
}
