package harness

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

const gigabyte = 1 << 30

// The readers are variables so tests can exercise the unavailable-metrics
// path.
var (
	virtualMemory = mem.VirtualMemory
	diskUsage     = disk.Usage
)

// SysMetricsSuffix returns a "MEM used/total GB | DISK used/total GB" string
// for appending to status lines, or "" if the numbers cannot be read. The
// reporter is strictly optional: failure to read metrics omits the text and
// never affects test outcomes.
func SysMetricsSuffix() string {
	vm, err := virtualMemory()
	if err != nil {
		return ""
	}
	du, err := diskUsage("/")
	if err != nil {
		return ""
	}
	return fmt.Sprintf("MEM %.1f/%.1f GB | DISK %.1f/%.1f GB",
		float64(vm.Used)/gigabyte, float64(vm.Total)/gigabyte,
		float64(du.Used)/gigabyte, float64(du.Total)/gigabyte)
}

// DecorateStatus appends the system-metrics suffix to a status word, leaving
// it unchanged when the metrics are unavailable.
func DecorateStatus(status string) string {
	suffix := SysMetricsSuffix()
	if suffix == "" {
		return status
	}
	return status + " | " + suffix
}
