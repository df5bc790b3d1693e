package harness

import (
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
)

func stubMetrics(t *testing.T, vm func() (*mem.VirtualMemoryStat, error), du func(string) (*disk.UsageStat, error)) {
	t.Helper()
	origVM, origDU := virtualMemory, diskUsage
	virtualMemory, diskUsage = vm, du
	t.Cleanup(func() { virtualMemory, diskUsage = origVM, origDU })
}

func TestSysMetricsSuffixFormat(t *testing.T) {
	stubMetrics(t,
		func() (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Used: 1 * gigabyte, Total: 2 * gigabyte}, nil
		},
		func(path string) (*disk.UsageStat, error) {
			return &disk.UsageStat{Used: 3 * gigabyte, Total: 4 * gigabyte}, nil
		})

	assert.Equal(t, "MEM 1.0/2.0 GB | DISK 3.0/4.0 GB", SysMetricsSuffix())
	assert.Equal(t, "PASSED | MEM 1.0/2.0 GB | DISK 3.0/4.0 GB", DecorateStatus("PASSED"))
}

func TestSysMetricsUnavailableOmitsSuffix(t *testing.T) {
	stubMetrics(t,
		func() (*mem.VirtualMemoryStat, error) { return nil, errors.New("no /proc here") },
		func(path string) (*disk.UsageStat, error) {
			return &disk.UsageStat{Used: 1, Total: 2}, nil
		})

	assert.Equal(t, "", SysMetricsSuffix())
	assert.Equal(t, "FAILED", DecorateStatus("FAILED"), "a failing reader must leave the status untouched")
}

func TestSysMetricsDiskFailureOmitsSuffix(t *testing.T) {
	stubMetrics(t,
		func() (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Used: 1, Total: 2}, nil
		},
		func(path string) (*disk.UsageStat, error) { return nil, errors.New("statfs failed") })

	assert.Equal(t, "PASSED", DecorateStatus("PASSED"))
}
