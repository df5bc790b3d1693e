package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bascloin/mlflow/distribution"
	"github.com/bascloin/mlflow/harness"
)

type commandParams struct {
	requiresSSH   bool
	ignoreFlavors bool
	splits        int
	group         int
	serveWheel    bool
	configPath    string
	itemsPath     string
	failuresPath  string
	filters       harness.RegexFilters
	debug         bool
	command       []string
}

func (c *commandParams) Read(args []string, env distribution.Env) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.BoolVar(&c.requiresSSH, "requires-ssh", false,
		"run tests tagged 'requires_ssh'; these require keys to be configured locally for SSH authentication")
	fs.BoolVar(&c.ignoreFlavors, "ignore-flavors", false, "ignore tests for model flavors")
	fs.IntVar(&c.splits, "splits", 0, "the number of groups to split tests into")
	fs.IntVar(&c.group, "group", 0, "the group of tests to run")
	fs.BoolVar(&c.serveWheel, "serve-wheel", distribution.IsCI(env),
		"serve a wheel for the dev version of MLflow; true by default in CI, false otherwise")
	fs.StringVar(&c.configPath, "config", "", "path to a TOML harness configuration file")
	fs.StringVar(&c.itemsPath, "items", "", "file of collected node IDs, one per line (default stdin)")
	fs.StringVar(&c.failuresPath, "failed-from", "",
		"file the runner writes failed node IDs to, used for the re-run summary")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for session setup")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	c.command = fs.Args()
	return true
}
