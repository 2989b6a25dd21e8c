package questions

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Numeric is an optional numeric field held in canonical textual form.
// Upstream files deliver points and tolerances inconsistently as ints,
// floats, or quoted strings; Numeric absorbs all three at the codec
// boundary so the rest of the system compares and parses one
// representation. The empty string means absent.
type Numeric string

// Present reports whether a value was supplied.
func (n Numeric) Present() bool {
	return strings.TrimSpace(string(n)) != ""
}

// Float64 parses the canonical form. Absent values parse as an error;
// callers should check Present first.
func (n Numeric) Float64() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
}

// String returns the canonical textual form.
func (n Numeric) String() string {
	return string(n)
}

// UnmarshalJSON accepts a JSON number, string, or null.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	*n = Numeric(canonicalScalar(data))
	return nil
}

// MarshalJSON emits a bare number when the value parses as one, otherwise
// the original text as a string, so malformed inputs survive round trips
// for the validator to report.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.Present() {
		return []byte("null"), nil
	}
	if _, err := n.Float64(); err == nil {
		return []byte(strings.TrimSpace(string(n))), nil
	}
	return json.Marshal(string(n))
}

// UnmarshalYAML accepts a YAML number, string, or null.
func (n *Numeric) UnmarshalYAML(unmarshal func(any) error) error {
	s, err := decodeScalarYAML(unmarshal)
	if err != nil {
		return err
	}
	*n = Numeric(s)
	return nil
}

// MarshalYAML mirrors MarshalJSON for YAML output.
func (n Numeric) MarshalYAML() (any, error) {
	if !n.Present() {
		return nil, nil
	}
	if f, err := n.Float64(); err == nil {
		return f, nil
	}
	return string(n), nil
}

// Scalar is a string-valued field that also accepts numeric input, such as
// a correct answer of 42 for a numerical question. It normalizes to the
// literal textual form and compares as a plain string everywhere else.
type Scalar string

// String returns the canonical textual form.
func (s Scalar) String() string {
	return string(s)
}

// UnmarshalJSON accepts a JSON string, number, boolean, or null.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	*s = Scalar(canonicalScalar(data))
	return nil
}

// MarshalJSON always emits a string; answers are compared textually.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalYAML accepts a YAML string, number, boolean, or null.
func (s *Scalar) UnmarshalYAML(unmarshal func(any) error) error {
	v, err := decodeScalarYAML(unmarshal)
	if err != nil {
		return err
	}
	*s = Scalar(v)
	return nil
}

// MarshalYAML always emits a string.
func (s Scalar) MarshalYAML() (any, error) {
	return string(s), nil
}

// canonicalScalar converts a raw JSON scalar to its textual form. Numbers
// keep their literal representation, strings are unquoted, null becomes
// the empty string.
func canonicalScalar(data []byte) string {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return ""
	}
	if len(raw) >= 2 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			return s
		}
	}
	return raw
}

// decodeScalarYAML decodes any YAML scalar to its textual form.
func decodeScalarYAML(unmarshal func(any) error) (string, error) {
	var v any
	if err := unmarshal(&v); err != nil {
		return "", err
	}
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		var s string
		if err := unmarshal(&s); err != nil {
			return "", err
		}
		return s, nil
	}
}
