package report

import "time"

// Status classifies a Report.
type Status int

const (
	// StatusPassed means every row satisfied the rule.
	StatusPassed Status = iota
	// StatusFailed means the rule ran and found offending rows.
	StatusFailed
	// StatusFault means the rule could not be evaluated.
	StatusFault
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusFault:
		return "fault"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Report is the diagnostic produced for one invocation.
type Report struct {
	Check       string `json:"check"`
	Description string `json:"description,omitempty"`
	Rule        string `json:"rule"`
	Call        string `json:"call"`
	Status      Status `json:"status"`
	// FailingCount is set for failed reports.
	FailingCount int `json:"failing_count,omitempty"`
	// Failing lists offending row ids when debug output is enabled.
	Failing []string `json:"failing,omitempty"`
	// Error is the fault message for StatusFault.
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Summary aggregates the reports of one run.
type Summary struct {
	RunID    string        `json:"run_id"`
	Checks   int           `json:"checks"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Faults   int           `json:"faults"`
	Duration time.Duration `json:"duration_ns"`
}

// OK reports whether no check failed or faulted.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Faults == 0
}

// Summarize counts reports by status.
func Summarize(runID string, reports []Report, elapsed time.Duration) Summary {
	s := Summary{RunID: runID, Checks: len(reports), Duration: elapsed}
	for _, r := range reports {
		switch r.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusFault:
			s.Faults++
		}
	}
	return s
}
