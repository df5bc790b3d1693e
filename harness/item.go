package harness

import "strings"

// TagRequiresSSH marks tests that need locally configured SSH keys. They are
// skipped unless the run explicitly opts in.
const TagRequiresSSH = "requires_ssh"

// Tags is a set of string markers attached to a test item, checked by exact
// membership.
type Tags map[string]struct{}

func NewTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, name := range names {
		t[name] = struct{}{}
	}
	return t
}

func (t Tags) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Item is one discoverable, runnable unit of test collection. The harness
// never inspects its contents; it only reorders, selects, and filters by
// identity and by the derived module name.
type Item struct {
	// NodeID is the stable identifier the host runner uses to address this
	// test, e.g. "tests/server/test_handlers.py::test_create_run".
	NodeID string
	// Path is the file containing the test.
	Path string
	// Module is the dotted name of the module that owns the test.
	Module string
	Tags   Tags
}

// ParseNodeID builds an Item from a runner node ID, deriving the containing
// file and the owning module name. Node IDs use forward slashes regardless
// of platform.
func ParseNodeID(nodeID string) Item {
	path := nodeID
	if i := strings.Index(nodeID, "::"); i >= 0 {
		path = nodeID[:i]
	}
	module := strings.TrimSuffix(path, ".py")
	module = strings.ReplaceAll(module, "/", ".")
	return Item{NodeID: nodeID, Path: path, Module: module}
}

// SkipReason reports whether the item should be skipped before it runs, and
// why. Options carries the per-run opt-ins supplied by the user.
func SkipReason(item Item, opts Options) (string, bool) {
	if item.Tags.Has(TagRequiresSSH) && !opts.RequiresSSH {
		return "use --requires-ssh to run this test", true
	}
	return "", false
}

// Options are the per-run switches that affect collection.
type Options struct {
	RequiresSSH   bool
	IgnoreFlavors bool
	Partition     PartitionSpec
}
