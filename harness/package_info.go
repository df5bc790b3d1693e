// Package harness contains the test-collection logic that is shared between
// CI jobs running the MLflow test suite.
//
// The general model is:
//
// 1. A host test runner discovers an ordered collection of test items. Each
// item is opaque to this package: it is identified by a stable node ID, the
// module that owns it, and a set of string tags.
//
// 2. Before any test runs, the collection is normalized (modules that must
// run first are moved to the front), filtered (flavor tests, tag-based
// skips, regex selection), and optionally partitioned into one of N groups
// so that independent workers can each run a deterministic slice of the
// suite.
//
// 3. After a run, the failed reports can be compressed into a ready-to-run
// re-invocation command line.
//
// The package performs no I/O of its own; a thin adapter binds it to
// whatever runner actually executes the tests.
package harness
