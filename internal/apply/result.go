package apply

// Status is the terminal state an item reached during a batch run.
type Status string

const (
	StatusSkipped Status = "skipped" // no media reference, or no rule matched
	StatusApplied Status = "applied"
	StatusRemoved Status = "removed"
	StatusError   Status = "error"
)

// ItemOutcome records what happened to one visited item. Outcomes are
// appended in iteration order and never mutated after the run.
type ItemOutcome struct {
	Container     string
	Item          string
	PropertyValue string // normalized value the winning rule matched, "" for skips
	LUTName       string // display name; lut.RemoveLabel for removals, "" for skips
	TargetNode    int
	Removal       bool
	Success       bool
	Status        Status
	ErrorDetail   string
}

// Match is one would-be application produced by a preview run. It carries
// the same reporting fields an apply-mode outcome would, without any
// validation or mutation having happened.
type Match struct {
	Container     string
	Item          string
	PropertyValue string
	LUTName       string
	TargetNode    int
	Removal       bool
}

// BatchResult aggregates one batch run: counters plus the ordered per-item
// outcomes. ItemsProcessed counts every visited item, eligible or not.
type BatchResult struct {
	RunID             string
	ItemsProcessed    int
	ItemsSkipped      int
	TransformsApplied int
	Errors            int
	Outcomes          []ItemOutcome
}

// FirstError returns the first failing outcome, or nil when the run had no
// errors. The summary line surfaces its detail string.
func (r *BatchResult) FirstError() *ItemOutcome {
	for i := range r.Outcomes {
		if r.Outcomes[i].Status == StatusError {
			return &r.Outcomes[i]
		}
	}
	return nil
}
