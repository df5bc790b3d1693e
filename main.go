package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"

	"github.com/fatih/color"

	"github.com/bascloin/mlflow/distribution"
	"github.com/bascloin/mlflow/harness"
)

func main() {
	env := distribution.OSEnv{}
	var params commandParams
	if !params.Read(os.Args, env) {
		os.Exit(2)
	}
	os.Exit(runSession(params, env))
}

func runSession(params commandParams, env distribution.Env) int {
	spec := harness.PartitionSpec{Splits: params.splits, Group: params.group}
	if err := spec.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg := harness.DefaultConfig()
	if params.configPath != "" {
		var err error
		cfg, err = harness.LoadConfig(params.configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}

	if uri := env.Getenv(distribution.TrackingURIVar); uri != "" {
		color.New(color.FgRed).Fprintf(os.Stderr,
			"Environment variable %s is set to %q, which may interfere with tests.\n",
			distribution.TrackingURIVar, uri)
	}

	items, err := collectItems(params.itemsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	opts := harness.Options{
		RequiresSSH:   params.requiresSSH,
		IgnoreFlavors: params.ignoreFlavors,
		Partition:     spec,
	}
	selected, skipped := harness.ApplyFilters(items, opts, harness.NewIgnoreFilter(cfg.FlavorPaths), params.filters)
	for _, s := range skipped {
		fmt.Printf("SKIPPED: %s (%s)\n", s.Item.NodeID, s.Reason)
	}
	harness.Prioritize(selected, cfg.FirstModule)
	selected = harness.Partition(selected, spec)

	var setupLog harness.CapturingLogger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	restoreTesting, err := distribution.SetScoped(env, distribution.TestingVar, "TRUE")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer restoreTesting()

	if params.serveWheel {
		root, cleanup, err := distribution.SessionRoot()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Distribution service error: %s\n", err)
			return 1
		}
		defer cleanup()
		service, err := distribution.Start(ctx, root, distribution.Options{
			Env:    env,
			Logger: &setupLog,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Distribution service error: %s\n", err)
			setupLog.Output().Dump(os.Stderr, "  DEBUG ")
			return 1
		}
		defer service.Close()
		fmt.Printf("Serving dev wheel at %s\n", service.URL())
	}
	if params.debug {
		setupLog.Output().Dump(os.Stdout, "  DEBUG ")
	}

	if len(params.command) == 0 {
		// No runner command: print the selection for a wrapper script to use.
		for _, item := range selected {
			fmt.Println(item.NodeID)
		}
		return 0
	}

	exitCode := runCommand(ctx, params.command, selected)

	results := harness.Results{
		Selected: selected,
		Skipped:  skipped,
		Failures: collectFailures(params.failuresPath),
	}

	status := "FAILED"
	if exitCode == 0 && results.OK() {
		status = "PASSED"
	}
	fmt.Println(harness.DecorateStatus(status))

	if !results.OK() {
		rerun := harness.CompressFailureReport(results.Failures, cfg.FailureThreshold)
		fmt.Println()
		fmt.Printf("=== %s ===\n", rerun.Section())
		fmt.Println(rerun.Command())
		if exitCode == 0 {
			exitCode = 1
		}
	}

	return exitCode
}

func runCommand(ctx context.Context, command []string, selected []harness.Item) int {
	args := append([]string(nil), command[1:]...)
	for _, item := range selected {
		args = append(args, item.NodeID)
	}
	cmd := exec.CommandContext(ctx, command[0], args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
