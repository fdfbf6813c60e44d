package check

// Status classifies a requirement after detection.
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
)

// Result holds the detection outcome for a single requirement.
type Result struct {
	Name     string   // e.g., "Rust toolchain", "Visual Studio Build Tools"
	Status   Status   // PRESENT or ABSENT
	Details  []string // human-readable details (path, version banner, fix notes)
	Optional bool     // soft requirement: absence never fails the run
	Err      error    // underlying error for absences
}

// Present returns true if the requirement was detected.
func (r Result) Present() bool {
	return r.Status == StatusPresent
}

// Blocking returns true if this result alone fails an overall check.
func (r Result) Blocking() bool {
	return r.Status == StatusAbsent && !r.Optional
}
