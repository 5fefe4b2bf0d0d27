package report

import (
	"testing"

	"codeberg.org/iklabib/metriccull/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected model.Report
	}{
		{
			name:     "empty object",
			input:    `{}`,
			expected: model.Report{},
		},
		{
			name:     "agent output",
			input:    `{"total_time_ms":1532,"peak_memory_kb":20480,"status":"success"}`,
			expected: model.Report{TotalTimeMs: 1532, PeakMemoryKb: 20480},
		},
		{
			name:     "only memory",
			input:    `{"peak_memory_kb": 49999}`,
			expected: model.Report{PeakMemoryKb: 49999},
		},
		{
			name:     "fractional values",
			input:    `{"total_time_ms": 12.5, "peak_memory_kb": 0.25}`,
			expected: model.Report{TotalTimeMs: 12.5, PeakMemoryKb: 0.25},
		},
		{
			name:     "trailing newline",
			input:    "{\"total_time_ms\": 2000}\n",
			expected: model.Report{TotalTimeMs: 2000},
		},
		{
			name:     "unknown fields may hold anything",
			input:    `{"status": null, "total_time_ms": 7, "label": "2000"}`,
			expected: model.Report{TotalTimeMs: 7},
		},
		{
			name:     "unknown fields",
			input:    `{"repo_url":"https://example.com/x.git","extra":{"nested":[1,2]}}`,
			expected: model.Report{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rep)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Decode(nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	for _, input := range []string{`[]`, `42`, `"report"`, `null`, " [1, 2] \n"} {
		t.Run("not an object "+input, func(t *testing.T) {
			_, err := Decode([]byte(input))
			assert.ErrorIs(t, err, ErrNotObject)
		})
	}

	for _, input := range []string{"\n", "   ", `{`, `{"total_time_ms": }`, `total_time_ms=5`} {
		t.Run("malformed "+input, func(t *testing.T) {
			_, err := Decode([]byte(input))
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrEmptyInput)
		})
	}

	for _, input := range []string{
		`{"total_time_ms": "slow"}`,
		`{"total_time_ms": "2000"}`,
		`{"total_time_ms": null}`,
		`{"peak_memory_kb": null}`,
		`{"peak_memory_kb": "200000"}`,
		`{"peak_memory_kb": true}`,
		`{"total_time_ms": 5, "peak_memory_kb": [1]}`,
		`{"total_time_ms": {"value": 2000}}`,
	} {
		t.Run("non numeric field "+input, func(t *testing.T) {
			_, err := Decode([]byte(input))
			assert.ErrorIs(t, err, ErrNotNumber)
		})
	}
}
