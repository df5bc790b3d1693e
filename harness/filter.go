package harness

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific item or not.
type Filter func(Item) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(item Item) bool {
	name := item.NodeID
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// IgnoreFilter excludes the model-flavor portion of the suite when a run
// opts out of it. Entries are repo-relative paths; an entry naming a
// directory excludes everything under it.
type IgnoreFilter struct {
	exact    map[string]struct{}
	prefixes []string
}

func NewIgnoreFilter(paths []string) *IgnoreFilter {
	f := &IgnoreFilter{exact: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		p = strings.TrimSuffix(p, "/")
		f.exact[p] = struct{}{}
		f.prefixes = append(f.prefixes, p+"/")
	}
	return f
}

// Ignore reports whether the given file path is excluded. Paths are
// normalized to forward slashes before matching so Windows-style input
// behaves the same.
func (f *IgnoreFilter) Ignore(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")
	if _, ok := f.exact[path]; ok {
		return true
	}
	for _, prefix := range f.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// ApplyFilters runs the full pre-partition pipeline over a collection:
// flavor exclusion (when opted in), regex selection, then tag-based skips.
// It returns the items to run and the skipped items with their reasons.
func ApplyFilters(items []Item, opts Options, ignore *IgnoreFilter, filters RegexFilters) (selected []Item, skipped []SkipRecord) {
	for _, item := range items {
		if opts.IgnoreFlavors && ignore != nil && ignore.Ignore(item.Path) {
			continue
		}
		if !filters.AsFilter(item) {
			skipped = append(skipped, SkipRecord{Item: item, Reason: "excluded by filter parameters"})
			continue
		}
		if reason, skip := SkipReason(item, opts); skip {
			skipped = append(skipped, SkipRecord{Item: item, Reason: reason})
			continue
		}
		selected = append(selected, item)
	}
	return selected, skipped
}
