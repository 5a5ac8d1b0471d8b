package domain

// TestStatus names the family a forbidden call belongs to.
type TestStatus string

const (
	// TestStatusFocused marks focused calls (iit, fdescribe, it.only).
	// Always reported.
	TestStatusFocused TestStatus = "focused"
	// TestStatusSkipped marks disabled-test aliases (xit, xdescribe).
	// Reported only when disabled tests are not allowed.
	TestStatusSkipped TestStatus = "skipped"
)

// String returns the status name.
func (s TestStatus) String() string {
	return string(s)
}
