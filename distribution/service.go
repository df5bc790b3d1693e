package distribution

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bascloin/mlflow/harness"
)

// Options configures Start. The zero value uses the real process
// environment, the pip wheel builder, source-control discovery of the
// source root, and the standard resolver variable.
type Options struct {
	Env     Env
	Builder Builder
	// SourceRoot is the tree to build; empty means discover it via source
	// control, falling back to the current directory.
	SourceRoot string
	// ResolverVar is the environment variable the server's URL is appended
	// to; defaults to the ResolverVar constant.
	ResolverVar string
	Logger      harness.Logger
}

// Service is a running ephemeral distribution service: a freshly built
// artifact served over a local HTTP server whose URL has been published to
// the installer's resolver variable. It must be closed at session end on
// every exit path.
type Service struct {
	url         string
	artifactDir string
	server      *StaticServer
	closing     sync.Once
}

// SessionRoot allocates a fresh directory for one session's artifacts and
// returns it with its cleanup function. Cleanup is best-effort: it runs
// after results are already captured, so removal failures are swallowed.
func SessionRoot() (string, func(), error) {
	root, err := os.MkdirTemp("", "mlflow-serve-")
	if err != nil {
		return "", nil, fmt.Errorf("allocating session directory: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(root) }
	return root, cleanup, nil
}

// Start acquires the service: it builds the artifact into a subdirectory of
// root, serves root on an OS-assigned port, and appends the server's URL to
// the resolver variable. root must be a fresh session-scoped directory; the
// service never deletes it, leaving cleanup to whatever allocated it.
//
// Any failure is fatal to the session. A build failure aborts before the
// server starts, so no process is ever orphaned.
func Start(ctx context.Context, root string, opts Options) (*Service, error) {
	env := opts.Env
	if env == nil {
		env = OSEnv{}
	}
	builder := opts.Builder
	if builder == nil {
		builder = WheelBuilder{}
	}
	resolverVar := opts.ResolverVar
	if resolverVar == "" {
		resolverVar = ResolverVar
	}
	logger := opts.Logger
	if logger == nil {
		logger = harness.NullLogger()
	}

	artifactDir := filepath.Join(root, "mlflow")
	if err := os.MkdirAll(artifactDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating artifact directory: %w", err)
	}

	ln, _, err := Listen()
	if err != nil {
		return nil, err
	}

	sourceRoot := opts.SourceRoot
	if sourceRoot == "" {
		sourceRoot = SourceRoot(ctx, logger)
	}
	if err := builder.Build(ctx, sourceRoot, artifactDir); err != nil {
		_ = ln.Close()
		return nil, err
	}

	server, err := ServeDirectory(root, ln, logger)
	if err != nil {
		return nil, err
	}

	if err := AppendValue(env, resolverVar, server.URL()); err != nil {
		_ = server.Close()
		return nil, fmt.Errorf("publishing %s: %w", resolverVar, err)
	}

	return &Service{
		url:         server.URL(),
		artifactDir: artifactDir,
		server:      server,
	}, nil
}

// URL returns the index URL published to the resolver variable.
func (s *Service) URL() string { return s.url }

// ArtifactDir returns the directory the built artifact was placed in.
func (s *Service) ArtifactDir() string { return s.artifactDir }

// Close releases the service, terminating the server exactly once. Closing
// twice, or closing after the server already died, is not an error.
func (s *Service) Close() error {
	var err error
	s.closing.Do(func() {
		err = s.server.Close()
	})
	return err
}
