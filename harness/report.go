package harness

import (
	"strings"

	"github.com/alessio/shellescape"
)

// DefaultFailureThreshold is the failure count above which the re-run
// command lists files instead of individual tests.
const DefaultFailureThreshold = 30

// Rerun is a ready-to-run command line for repeating the failed portion of a
// session.
type Rerun struct {
	// Executable is the runner to invoke, "pytest" by default.
	Executable string
	// Args are the node IDs or file paths to pass to the runner.
	Args []string
	// ByFile is true when Args lists containing files rather than
	// individual tests.
	ByFile bool
}

// Section is the heading to print above the command.
func (r Rerun) Section() string {
	if r.ByFile {
		return "command to run failed test suites"
	}
	return "command to run failed test cases"
}

// Command renders the shell command, quoting each argument.
func (r Rerun) Command() string {
	var b commandBuilder
	b.add(r.Executable)
	b.add(r.Args...)
	return b.String()
}

// CompressFailureReport turns the failed reports of a session into a Rerun.
// At or below the threshold every failed test is listed individually; above
// it the output de-duplicates by containing file, preserving the order of
// first occurrence. A threshold < 1 uses DefaultFailureThreshold.
func CompressFailureReport(reports []ItemReport, threshold int) Rerun {
	if threshold < 1 {
		threshold = DefaultFailureThreshold
	}
	rerun := Rerun{Executable: "pytest"}
	if len(reports) <= threshold {
		for _, report := range reports {
			rerun.Args = append(rerun.Args, report.NodeID)
		}
		return rerun
	}
	rerun.ByFile = true
	seen := make(map[string]struct{}, len(reports))
	for _, report := range reports {
		if _, ok := seen[report.Path]; ok {
			continue
		}
		seen[report.Path] = struct{}{}
		rerun.Args = append(rerun.Args, report.Path)
	}
	return rerun
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
