package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Percent is a coverage percentage. Istanbul writes the string "Unknown" when a
// dimension has no entries, so decoding accepts any JSON value and falls back to 0.
type Percent float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Percent) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Percent(ClampPercent(n))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*p = Percent(ClampPercent(v))
			return nil
		}
	}
	*p = 0
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Counts are decoded as numbers and
// truncated, so a summary writing 10.0 reads the same as 10.
func (m *CoverageMetric) UnmarshalJSON(data []byte) error {
	var raw struct {
		Total   float64 `json:"total"`
		Covered float64 `json:"covered"`
		Pct     Percent `json:"pct"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = CoverageMetric{Total: truncateCount(raw.Total), Covered: truncateCount(raw.Covered), Pct: raw.Pct}
	return nil
}

// truncateCount drops the fraction of v and bounds it to the int32 range.
func truncateCount(v float64) int {
	return int(max(min(math.Trunc(v), math.MaxInt32), math.MinInt32))
}

// ClampPercent bounds v to [0, 100]. NaN becomes 0.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// RoundPercent returns round(100 * covered / total), or 0 when total is 0.
func RoundPercent(covered, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(covered) / float64(total) * 100))
}

// FormatThousands renders n with comma separators, e.g. 12345 -> "12,345".
func FormatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPercent renders a percentage without trailing zeros, e.g. 95 -> "95", 87.5 -> "87.5".
func FormatPercent(p Percent) string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

// Humanize turns a snake_case status into words, e.g. "has_tests" -> "has tests".
func Humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
