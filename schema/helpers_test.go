package schema

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Percent
	}{
		{"integer", `95`, 95},
		{"float", `87.5`, 87.5},
		{"istanbul unknown", `"Unknown"`, 0},
		{"numeric string", `"42.1"`, 42.1},
		{"null", `null`, 0},
		{"above range", `150`, 100},
		{"below range", `-3`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Percent
			require.NoError(t, json.Unmarshal([]byte(tt.input), &p))
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestCoverageMetricUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want CoverageMetric
	}{
		{"integers", `{"total": 10, "covered": 7, "pct": 70}`, CoverageMetric{Total: 10, Covered: 7, Pct: 70}},
		{"float counts", `{"total": 10.0, "covered": 7.9, "pct": 79}`, CoverageMetric{Total: 10, Covered: 7, Pct: 79}},
		{"unknown pct", `{"total": 0, "covered": 0, "pct": "Unknown"}`, CoverageMetric{}},
		{"missing fields", `{"pct": 50}`, CoverageMetric{Pct: 50}},
		{"huge count", `{"total": 1e300, "covered": 1}`, CoverageMetric{Total: math.MaxInt32, Covered: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got CoverageMetric
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var m CoverageMetric
	assert.Error(t, json.Unmarshal([]byte(`{"total": "ten"}`), &m))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &m))
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 0, RoundPercent(0, 0))
	assert.Equal(t, 0, RoundPercent(10, 0))
	assert.Equal(t, 95, RoundPercent(95, 100))
	assert.Equal(t, 67, RoundPercent(2, 3))
	assert.Equal(t, 50, RoundPercent(1, 2))
	assert.Equal(t, 100, RoundPercent(7, 7))
}

func TestFormatThousands(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		12345:    "12,345",
		123456:   "123,456",
		1234567:  "1,234,567",
		-1234:    "-1,234",
		-123456:  "-123,456",
		-999:     "-999",
		10000000: "10,000,000",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatThousands(in), "input %d", in)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "95", FormatPercent(95))
	assert.Equal(t, "87.5", FormatPercent(87.5))
	assert.Equal(t, "0", FormatPercent(0))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "has tests", Humanize(string(HasTests)))
	assert.Equal(t, "no tests", Humanize(string(NoTests)))
}
