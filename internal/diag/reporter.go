package diag

import "sync"

// Reporter accumulates diagnoses in report order.
type Reporter struct {
	mu      sync.Mutex
	reports []Diagnosis
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report adds a new record to the reporter.
func (r *Reporter) Report(d Diagnosis) {
	r.mu.Lock()
	r.reports = append(r.reports, d)
	r.mu.Unlock()
}

// ReportAll adds records preserving their order.
func (r *Reporter) ReportAll(ds []Diagnosis) {
	r.mu.Lock()
	r.reports = append(r.reports, ds...)
	r.mu.Unlock()
}

// Reports returns a snapshot of all collected records.
func (r *Reporter) Reports() []Diagnosis {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnosis, len(r.reports))
	copy(out, r.reports)
	return out
}

// Len returns the number of collected records.
func (r *Reporter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

// HasErrors reports whether any record has error severity.
func (r *Reporter) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reports {
		if r.reports[i].Severity >= SevError {
			return true
		}
	}
	return false
}
