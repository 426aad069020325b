package check

import "time"

// Entry holds every outcome produced for one selected check name.
type Entry struct {
	Name     string    `json:"name"`
	Outcomes []Outcome `json:"outcomes"`
}

// Status derives the entry's overall status: Fail if any outcome failed,
// Skip if nothing ran, Pass otherwise.
func (e Entry) Status() Status {
	status := StatusSkip
	for _, o := range e.Outcomes {
		switch o.Status {
		case StatusFail:
			return StatusFail
		case StatusPass:
			status = StatusPass
		case StatusSkip:
			// does not change the aggregate
		}
	}
	return status
}

// Report is the complete result of one execution pass. It contains exactly
// one entry per selected name, in selection order, and is immutable once the
// engine returns it.
type Report struct {
	Timestamp time.Time `json:"timestamp"`
	Entries   []Entry   `json:"entries"`
}

// Status derives the overall status: Pass iff no entry failed.
func (r *Report) Status() Status {
	status := StatusPass
	for _, e := range r.Entries {
		if e.Status() == StatusFail {
			return StatusFail
		}
	}
	return status
}

// Entry returns the entry for name, if present.
func (r *Report) Entry(name string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
