package harness

import (
	"fmt"
	"sort"
)

// UsageError is a configuration mistake that must be reported to the user
// before any test runs.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// PartitionSpec selects one group out of a static split of the test
// collection. The zero value means partitioning is disabled. Splits and
// Group must be supplied together.
type PartitionSpec struct {
	Splits int
	Group  int
}

// Enabled reports whether any partitioning was requested at all.
func (s PartitionSpec) Enabled() bool {
	return s.Splits != 0 || s.Group != 0
}

// Validate checks the spec before collection. Partial or out-of-range specs
// are usage errors, never silent defaults.
func (s PartitionSpec) Validate() error {
	if !s.Enabled() {
		return nil
	}
	if s.Group == 0 {
		return usageErrorf("--group is required when --splits is given")
	}
	if s.Splits == 0 {
		return usageErrorf("--splits is required when --group is given")
	}
	if s.Splits < 1 {
		return usageErrorf("--splits must be >= 1")
	}
	if s.Group < 1 || s.Group > s.Splits {
		return usageErrorf("--group must be between 1 and %d", s.Splits)
	}
	return nil
}

// Partition returns the subsequence of items belonging to the spec's group:
// the elements at 0-based positions (group-1), (group-1)+splits, and so on,
// preserving the original relative order. The union of all groups for a
// given split count reconstructs the input exactly once per item. A disabled
// spec returns the input unchanged.
//
// Callers are expected to Validate the spec first; Partition assumes it
// holds.
func Partition(items []Item, spec PartitionSpec) []Item {
	if !spec.Enabled() {
		return items
	}
	selected := make([]Item, 0, (len(items)+spec.Splits-1)/spec.Splits)
	for i := spec.Group - 1; i < len(items); i += spec.Splits {
		selected = append(selected, items[i])
	}
	return selected
}

// Prioritize reorders items in place so that any item owned by the named
// module sorts before all others, keeping the original relative order
// otherwise. It exists because a small number of test modules mutate global
// state in the host process in a way that corrupts later tests when run out
// of order; it is a narrow exception list, not a dependency mechanism.
func Prioritize(items []Item, module string) {
	if module == "" {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Module == module && items[j].Module != module
	})
}
