package distribution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeWheelName = "mlflow-2.0.dev0-py3-none-any.whl"

// fakeBuilder drops a wheel-shaped file into the output directory and
// records what it was asked to build.
func fakeBuilder(sourceDirs *[]string) Builder {
	return BuilderFunc(func(ctx context.Context, sourceDir, outDir string) error {
		if sourceDirs != nil {
			*sourceDirs = append(*sourceDirs, sourceDir)
		}
		return os.WriteFile(filepath.Join(outDir, fakeWheelName), []byte("wheel-bytes"), 0o600)
	})
}

func startTestService(t *testing.T, env Env) *Service {
	t.Helper()
	service, err := Start(context.Background(), t.TempDir(), Options{
		Env:        env,
		Builder:    fakeBuilder(nil),
		SourceRoot: ".",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = service.Close() })
	return service
}

func TestStartPublishesResolverURL(t *testing.T) {
	env := MapEnv{}
	service := startTestService(t, env)

	url := env.Getenv(ResolverVar)
	assert.Regexp(t, regexp.MustCompile(`^http://localhost:\d+$`), url)
	assert.Equal(t, service.URL(), url)
}

func TestStartServesBuiltArtifact(t *testing.T) {
	service := startTestService(t, MapEnv{})

	resp, err := http.Get(fmt.Sprintf("%s/mlflow/%s", service.URL(), fakeWheelName))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "wheel-bytes", string(body))
}

func TestStartAppendsToExistingResolverValue(t *testing.T) {
	env := MapEnv{ResolverVar: "https://example.com/simple"}
	service := startTestService(t, env)

	assert.Equal(t, "https://example.com/simple "+service.URL(), env.Getenv(ResolverVar))
}

func TestStartPassesSourceRootToBuilder(t *testing.T) {
	var sourceDirs []string
	service, err := Start(context.Background(), t.TempDir(), Options{
		Env:        MapEnv{},
		Builder:    fakeBuilder(&sourceDirs),
		SourceRoot: "/some/source/tree",
	})
	require.NoError(t, err)
	defer service.Close()

	assert.Equal(t, []string{"/some/source/tree"}, sourceDirs)
}

func TestStartBuildFailureAbortsBeforeServing(t *testing.T) {
	env := MapEnv{}
	_, err := Start(context.Background(), t.TempDir(), Options{
		Env: env,
		Builder: BuilderFunc(func(ctx context.Context, sourceDir, outDir string) error {
			return errors.New("pip exploded")
		}),
		SourceRoot: ".",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pip exploded")

	_, published := env.LookupEnv(ResolverVar)
	assert.False(t, published, "resolver variable must not be set when the build fails")
}

func TestServiceCloseStopsServer(t *testing.T) {
	service := startTestService(t, MapEnv{})

	require.NoError(t, service.Close())

	_, err := http.Get(service.URL())
	assert.Error(t, err, "server should be down after teardown")
}

func TestServiceCloseIsIdempotent(t *testing.T) {
	service := startTestService(t, MapEnv{})
	require.NoError(t, service.Close())
	assert.NoError(t, service.Close())
}

func TestSessionRootCleanupRemovesDirectory(t *testing.T) {
	root, cleanup, err := SessionRoot()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "leftover.whl"), []byte("x"), 0o600))

	cleanup()
	_, err = os.Stat(root)
	assert.True(t, os.IsNotExist(err), "session root should be removed by its own cleanup")

	// Cleanup is best-effort and safe to run again
	cleanup()
}

func TestServiceLeavesSessionDirectoryInPlace(t *testing.T) {
	root := t.TempDir()
	service, err := Start(context.Background(), root, Options{
		Env:        MapEnv{},
		Builder:    fakeBuilder(nil),
		SourceRoot: ".",
	})
	require.NoError(t, err)
	require.NoError(t, service.Close())

	// Cleanup belongs to whatever allocated the session directory
	_, err = os.Stat(filepath.Join(root, "mlflow", fakeWheelName))
	assert.NoError(t, err)
}
