package schema

import (
	"encoding/json"
	"slices"
	"strconv"
	"time"
)

// TestCounts is the number of suites per test level for one service.
type TestCounts struct {
	Unit        int `json:"unit"`
	Integration int `json:"integration"`
	E2E         int `json:"e2e"`
}

// Total sums all levels.
func (c TestCounts) Total() int {
	return c.Unit + c.Integration + c.E2E
}

// SuiteInventory describes the test suite of a single service.
type SuiteInventory struct {
	Status   SuiteStatus `json:"status"`
	Coverage int         `json:"coverage"`
	Tests    TestCounts  `json:"tests"`
}

// OptionalPercent is a coverage figure that may be unavailable. It encodes as a
// number, or as the string "N/A" when unset.
type OptionalPercent struct {
	Value int
	Valid bool
}

// PercentOf returns a set OptionalPercent.
func PercentOf(v int) OptionalPercent {
	return OptionalPercent{Value: v, Valid: true}
}

// String implements fmt.Stringer.
func (p OptionalPercent) String() string {
	if !p.Valid {
		return "N/A"
	}
	return strconv.Itoa(p.Value) + "%"
}

// MarshalJSON implements json.Marshaler.
func (p OptionalPercent) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte(`"N/A"`), nil
	}
	return []byte(strconv.Itoa(p.Value)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *OptionalPercent) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = PercentOf(n)
		return nil
	}
	*p = OptionalPercent{}
	return nil
}

// TestTypeStats holds results for one category of tests (unit, e2e, security...).
type TestTypeStats struct {
	Total    int             `json:"total"`
	Passed   int             `json:"passed"`
	Failed   int             `json:"failed"`
	Coverage OptionalPercent `json:"coverage"`
}

// CoverageFigures holds one percentage per coverage dimension.
type CoverageFigures struct {
	Lines      int `json:"lines"`
	Functions  int `json:"functions"`
	Branches   int `json:"branches"`
	Statements int `json:"statements"`
}

// Get returns the figure for the given dimension.
func (f CoverageFigures) Get(key MetricKey) int {
	switch key {
	case LinesMetric:
		return f.Lines
	case FunctionsMetric:
		return f.Functions
	case BranchesMetric:
		return f.Branches
	case StatementsMetric:
		return f.Statements
	}
	return 0
}

// CoverageTargets compares current coverage against the required threshold.
type CoverageTargets struct {
	Threshold CoverageFigures `json:"threshold"`
	Current   CoverageFigures `json:"current"`
}

// Meets reports whether the current figure reaches the threshold for key.
func (t CoverageTargets) Meets(key MetricKey) bool {
	return t.Current.Get(key) >= t.Threshold.Get(key)
}

// TestSummary is the roll-up section of a TestReport.
type TestSummary struct {
	TotalTests int             `json:"totalTests"`
	Passed     int             `json:"passed"`
	Failed     int             `json:"failed"`
	Skipped    int             `json:"skipped"`
	Coverage   CoverageFigures `json:"coverage"`
}

// TestReport is the aggregate produced by one test report run.
type TestReport struct {
	Generated       time.Time                 `json:"generated"`
	Summary         TestSummary               `json:"summary"`
	Services        map[string]SuiteInventory `json:"services"`
	TestTypes       map[string]TestTypeStats  `json:"testTypes"`
	Recommendations []string                  `json:"recommendations"`
	Coverage        CoverageTargets           `json:"coverage"`

	serviceOrder []string
	typeOrder    []string
}

// SetOrder records the display order of services and test types.
func (r *TestReport) SetOrder(services, testTypes []string) {
	r.serviceOrder = slices.Clone(services)
	r.typeOrder = slices.Clone(testTypes)
}

// ServiceNames returns service keys in display order.
func (r *TestReport) ServiceNames() []string {
	return orderedKeys(r.serviceOrder, r.Services)
}

// TestTypeNames returns test type keys in display order.
func (r *TestReport) TestTypeNames() []string {
	return orderedKeys(r.typeOrder, r.TestTypes)
}

// CountByStatus returns how many services have the given suite status.
func (r *TestReport) CountByStatus(status SuiteStatus) int {
	n := 0
	for _, s := range r.Services {
		if s.Status == status {
			n++
		}
	}
	return n
}

func orderedKeys[V any](order []string, m map[string]V) []string {
	if len(order) > 0 {
		return slices.Clone(order)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
