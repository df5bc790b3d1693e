package harness

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemsFromIDs(ids ...string) []Item {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, ParseNodeID(id))
	}
	return items
}

func nodeIDs(items []Item) []string {
	var ids []string
	for _, item := range items {
		ids = append(ids, item.NodeID)
	}
	return ids
}

func TestPartitionSpecValidate(t *testing.T) {
	valid := []PartitionSpec{
		{},
		{Splits: 1, Group: 1},
		{Splits: 3, Group: 1},
		{Splits: 3, Group: 3},
	}
	for _, spec := range valid {
		assert.NoError(t, spec.Validate(), "spec %+v should be valid", spec)
	}

	invalid := []PartitionSpec{
		{Splits: 3},
		{Group: 2},
		{Splits: -1, Group: 1},
		{Splits: 3, Group: 4},
	}
	for _, spec := range invalid {
		err := spec.Validate()
		require.Error(t, err, "spec %+v should be rejected", spec)
		var usageErr *UsageError
		assert.ErrorAs(t, err, &usageErr, "spec %+v should fail as a usage error", spec)
	}
}

func TestPartitionConcreteScenario(t *testing.T) {
	items := itemsFromIDs("A", "B", "C", "D", "E", "F", "G")

	assert.Equal(t, []string{"A", "D", "G"}, nodeIDs(Partition(items, PartitionSpec{Splits: 3, Group: 1})))
	assert.Equal(t, []string{"B", "E"}, nodeIDs(Partition(items, PartitionSpec{Splits: 3, Group: 2})))
	assert.Equal(t, []string{"C", "F"}, nodeIDs(Partition(items, PartitionSpec{Splits: 3, Group: 3})))
}

func TestPartitionGroupsReconstructInput(t *testing.T) {
	var ids []string
	for i := 0; i < 23; i++ {
		ids = append(ids, fmt.Sprintf("tests/test_%d.py::test_case", i))
	}
	items := itemsFromIDs(ids...)

	for splits := 1; splits <= 5; splits++ {
		seen := make(map[string]int)
		for group := 1; group <= splits; group++ {
			for _, item := range Partition(items, PartitionSpec{Splits: splits, Group: group}) {
				seen[item.NodeID]++
			}
		}
		require.Len(t, seen, len(items), "splits=%d lost or duplicated items", splits)
		for id, count := range seen {
			assert.Equal(t, 1, count, "splits=%d: item %s appeared %d times", splits, id, count)
		}
	}
}

func TestPartitionIsDeterministic(t *testing.T) {
	items := itemsFromIDs("A", "B", "C", "D", "E")
	spec := PartitionSpec{Splits: 2, Group: 2}

	first := nodeIDs(Partition(items, spec))
	second := nodeIDs(Partition(items, spec))
	assert.Equal(t, first, second)
}

func TestPartitionDisabledReturnsInput(t *testing.T) {
	items := itemsFromIDs("A", "B", "C")
	assert.Equal(t, items, Partition(items, PartitionSpec{}))
}

func TestPrioritizeMovesModuleFirst(t *testing.T) {
	items := []Item{
		{NodeID: "X", Module: "tests.foo"},
		{NodeID: "Y", Module: "tests.server.test_prometheus_exporter"},
		{NodeID: "Z", Module: "tests.bar"},
	}
	Prioritize(items, "tests.server.test_prometheus_exporter")
	assert.Equal(t, []string{"Y", "X", "Z"}, nodeIDs(items))
}

func TestPrioritizeIsStable(t *testing.T) {
	items := []Item{
		{NodeID: "a1", Module: "tests.a"},
		{NodeID: "t1", Module: "tests.target"},
		{NodeID: "b1", Module: "tests.b"},
		{NodeID: "t2", Module: "tests.target"},
		{NodeID: "a2", Module: "tests.a"},
	}
	Prioritize(items, "tests.target")
	assert.Equal(t, []string{"t1", "t2", "a1", "b1", "a2"}, nodeIDs(items))
}

func TestPrioritizeEmptyModuleIsNoop(t *testing.T) {
	items := itemsFromIDs("A", "B")
	Prioritize(items, "")
	assert.Equal(t, []string{"A", "B"}, nodeIDs(items))
}
