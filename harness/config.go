package harness

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the file-driven part of the harness: the suite-specific lists
// that change more often than the code around them.
type Config struct {
	// FirstModule is the module moved to the front of the collection
	// before partitioning. Empty disables the reordering.
	FirstModule string `toml:"first_module"`
	// FailureThreshold is the failed-test count above which the re-run
	// command lists files instead of tests.
	FailureThreshold int `toml:"failure_threshold"`
	// FlavorPaths are the repo-relative paths excluded by --ignore-flavors.
	FlavorPaths []string `toml:"flavor_paths"`
}

// DefaultConfig returns the configuration used when no file is supplied.
// The flavor list must be kept in sync with dev/run-python-flavor-tests.sh.
func DefaultConfig() Config {
	return Config{
		FirstModule:      "tests.server.test_prometheus_exporter",
		FailureThreshold: DefaultFailureThreshold,
		FlavorPaths: []string{
			"tests/azureml",
			"tests/catboost",
			"tests/diviner",
			"tests/fastai",
			"tests/gluon",
			"tests/h2o",
			"tests/johnsnowlabs",
			"tests/keras",
			"tests/keras_core",
			"tests/langchain",
			"tests/lightgbm",
			"tests/mleap",
			"tests/models",
			"tests/onnx",
			"tests/openai",
			"tests/paddle",
			"tests/pmdarima",
			"tests/prophet",
			"tests/pyfunc",
			"tests/pytorch",
			"tests/sagemaker",
			"tests/sentence_transformers",
			"tests/shap",
			"tests/sklearn",
			"tests/spacy",
			"tests/spark",
			"tests/statsmodels",
			"tests/tensorflow",
			"tests/transformers",
			"tests/xgboost",
			"tests/test_mlflow_lazily_imports_ml_packages.py",
			"tests/utils/test_model_utils.py",
			"tests/tracking/fluent/test_fluent_autolog.py",
			"tests/autologging/test_autologging_safety_unit.py",
			"tests/autologging/test_autologging_behaviors_unit.py",
			"tests/autologging/test_autologging_behaviors_integration.py",
			"tests/autologging/test_autologging_utils.py",
			"tests/autologging/test_training_session.py",
			"tests/server/auth",
			"tests/gateway",
		},
	}
}

// LoadConfig reads a TOML configuration file, filling unset fields from
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Config{}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	defaults := DefaultConfig()
	if cfg.FirstModule == "" {
		cfg.FirstModule = defaults.FirstModule
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.FlavorPaths == nil {
		cfg.FlavorPaths = defaults.FlavorPaths
	}
	if cfg.FailureThreshold < 1 {
		return Config{}, fmt.Errorf("config %s: failure_threshold must be >= 1", path)
	}
	return cfg, nil
}
