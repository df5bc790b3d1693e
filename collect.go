package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bascloin/mlflow/harness"
)

// collectItems reads the collected node IDs for this session, one per line,
// from the given file or from stdin. A line may carry a comma-separated tag
// list after the node ID, e.g. "tests/test_sftp.py::test_push requires_ssh".
func collectItems(path string) ([]harness.Item, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("reading collected items: %w", err)
		}
		defer f.Close()
		r = f
	}
	return readItems(r)
}

func readItems(r io.Reader) ([]harness.Item, error) {
	var items []harness.Item
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		item := harness.ParseNodeID(fields[0])
		if len(fields) > 1 {
			item.Tags = harness.NewTags(strings.Split(fields[1], ",")...)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading collected items: %w", err)
	}
	return items, nil
}

// collectFailures reads the failed node IDs the runner recorded, if any.
// The summary is best-effort: a missing or unreadable file simply omits it.
func collectFailures(path string) []harness.ItemReport {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var reports []harness.ItemReport
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		item := harness.ParseNodeID(line)
		reports = append(reports, harness.ItemReport{NodeID: item.NodeID, Path: item.Path})
	}
	return reports
}
