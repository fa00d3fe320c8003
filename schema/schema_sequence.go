package schema

// TestDescriptor is a discovered test file handed to the sequencer.
type TestDescriptor struct {
	Path string `json:"path"`
}

// TestOrderingSpec lists filename substrings that must run first, in order.
type TestOrderingSpec []string

// DefaultOrdering runs the auth integration suite before everything else,
// since later suites reuse the users it registers.
var DefaultOrdering = TestOrderingSpec{"auth.integration.test.ts"}

// DescriptorsFromPaths wraps plain paths into descriptors.
func DescriptorsFromPaths(paths []string) []TestDescriptor {
	out := make([]TestDescriptor, len(paths))
	for i, p := range paths {
		out[i] = TestDescriptor{Path: p}
	}
	return out
}

// Paths extracts the paths of the given descriptors.
func Paths(tests []TestDescriptor) []string {
	out := make([]string, len(tests))
	for i, t := range tests {
		out[i] = t.Path
	}
	return out
}
