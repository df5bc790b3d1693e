package distribution

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bascloin/mlflow/harness"
)

// Builder produces an installable artifact from a source tree into an
// output directory.
type Builder interface {
	Build(ctx context.Context, sourceDir, outDir string) error
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(ctx context.Context, sourceDir, outDir string) error

func (f BuilderFunc) Build(ctx context.Context, sourceDir, outDir string) error {
	return f(ctx, sourceDir, outDir)
}

// WheelBuilder builds a wheel with pip. Dependency resolution is disabled:
// the wheel's own dependencies are not re-fetched during the build.
type WheelBuilder struct {
	// Python is the interpreter to invoke, "python" when empty.
	Python string
}

func (b WheelBuilder) Build(ctx context.Context, sourceDir, outDir string) error {
	python := b.Python
	if python == "" {
		python = "python"
	}
	cmd := exec.CommandContext(ctx, python, "-m", "pip", "wheel", "--wheel-dir", outDir, "--no-deps", sourceDir)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("building wheel from %s: %w\n%s", sourceDir, err, output.String())
	}
	return nil
}

// SourceRoot locates the root of the source tree being built. When source
// control is unavailable in the execution environment (some tests run in
// containers without git) it falls back to the current directory rather
// than failing.
func SourceRoot(ctx context.Context, logger harness.Logger) string {
	if logger == nil {
		logger = harness.NullLogger()
	}
	out, err := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		logger.Printf("could not determine source root (%s); assuming current directory", err)
		return "."
	}
	return strings.TrimSpace(string(out))
}
