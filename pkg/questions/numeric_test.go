package questions

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Numeric
	}{
		{"integer", `{"points": 5}`, "5"},
		{"float", `{"points": 2.5}`, "2.5"},
		{"quoted number", `{"points": "3"}`, "3"},
		{"quoted junk", `{"points": "abc"}`, "abc"},
		{"null", `{"points": null}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q struct {
				Points Numeric `json:"points"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &q))
			assert.Equal(t, tt.want, q.Points)
		})
	}
}

func TestNumericUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Numeric
	}{
		{"integer", "points: 5", "5"},
		{"float", "points: 2.5", "2.5"},
		{"quoted number", `points: "3"`, "3"},
		{"string", "points: lots", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q struct {
				Points Numeric `yaml:"points"`
			}
			require.NoError(t, yaml.Unmarshal([]byte(tt.raw), &q))
			assert.Equal(t, tt.want, q.Points)
		})
	}
}

func TestNumericFloat64(t *testing.T) {
	v, err := Numeric("2.5").Float64()
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	_, err = Numeric("abc").Float64()
	assert.Error(t, err)

	assert.False(t, Numeric("").Present())
	assert.True(t, Numeric("0").Present())
}

func TestNumericMarshalJSON(t *testing.T) {
	type record struct {
		Points Numeric `json:"points,omitempty"`
	}

	data, err := json.Marshal(record{Points: "5"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"points": 5}`, string(data))

	// Unparseable values survive round trips as strings for the
	// validator to report.
	data, err = json.Marshal(record{Points: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"points": "abc"}`, string(data))
}

func TestScalarUnmarshal(t *testing.T) {
	var doc struct {
		Answer Scalar `yaml:"answer" json:"answer"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("answer: 42"), &doc))
	assert.Equal(t, Scalar("42"), doc.Answer)

	require.NoError(t, yaml.Unmarshal([]byte("answer: B"), &doc))
	assert.Equal(t, Scalar("B"), doc.Answer)

	require.NoError(t, json.Unmarshal([]byte(`{"answer": 3.5}`), &doc))
	assert.Equal(t, Scalar("3.5"), doc.Answer)

	require.NoError(t, json.Unmarshal([]byte(`{"answer": "true"}`), &doc))
	assert.Equal(t, Scalar("true"), doc.Answer)
}
