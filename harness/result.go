package harness

// SkipRecord is an item that was excluded before running, with the reason
// shown to the user.
type SkipRecord struct {
	Item   Item
	Reason string
}

// ItemReport is the post-run record of one failed test.
type ItemReport struct {
	NodeID string
	Path   string
}

// Results describes the outcome of one harness session.
type Results struct {
	Selected []Item
	Skipped  []SkipRecord
	Failures []ItemReport
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}
