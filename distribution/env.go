package distribution

import (
	"os"
	"strings"
)

// Names of the process-environment variables the harness touches.
const (
	// ResolverVar is read by pip to locate additional package indexes.
	ResolverVar = "PIP_EXTRA_INDEX_URL"
	// TrackingURIVar interferes with tests when set; the harness only
	// warns about it.
	TrackingURIVar = "MLFLOW_TRACKING_URI"
	// TestingVar switches MLflow into test mode for the session.
	TestingVar = "MLFLOW_TESTING"
	// CIVar marks continuous-integration environments.
	CIVar = "CI"
)

// Env abstracts the process environment so tests can supply an isolated
// fake instead of mutating real process state.
type Env interface {
	Getenv(key string) string
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
	Unsetenv(key string) error
}

// OSEnv is the real process environment. Mutations made through it are
// inherited by child processes.
type OSEnv struct{}

func (OSEnv) Getenv(key string) string            { return os.Getenv(key) }
func (OSEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (OSEnv) Setenv(key, value string) error      { return os.Setenv(key, value) }
func (OSEnv) Unsetenv(key string) error           { return os.Unsetenv(key) }

// MapEnv is an in-memory environment for tests.
type MapEnv map[string]string

func (m MapEnv) Getenv(key string) string { return m[key] }

func (m MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapEnv) Setenv(key, value string) error {
	m[key] = value
	return nil
}

func (m MapEnv) Unsetenv(key string) error {
	delete(m, key)
	return nil
}

// IsCI reports whether env describes a continuous-integration run.
func IsCI(env Env) bool {
	return strings.EqualFold(env.Getenv(CIVar), "true")
}

// AppendValue adds value to a whitespace-separated environment list,
// preserving any existing entries rather than overwriting them. Other
// contributors to the same variable are never clobbered.
func AppendValue(env Env, key, value string) error {
	if existing := env.Getenv(key); existing != "" {
		value = existing + " " + value
	}
	return env.Setenv(key, value)
}

// SetScoped sets a variable and returns a restore function that puts back
// whatever was there before, including unsetting a variable that did not
// exist. The restore must run on every exit path.
func SetScoped(env Env, key, value string) (func(), error) {
	previous, existed := env.LookupEnv(key)
	if err := env.Setenv(key, value); err != nil {
		return nil, err
	}
	restore := func() {
		if existed {
			_ = env.Setenv(key, previous)
		} else {
			_ = env.Unsetenv(key)
		}
	}
	return restore, nil
}
