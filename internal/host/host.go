// Package host reports machine capabilities that drive profile selection.
// The orchestrator only consumes domain.HostCapabilities; this package is
// the default implementation behind that boundary.
package host

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/voiceflow/voiceflowd/internal/domain"
	"github.com/voiceflow/voiceflowd/internal/infra/config"
)

// Detect probes physical memory and the optional interpreter runtime.
// Config overrides win over detection so a broken probe never blocks setup.
func Detect(cfg config.HostConfig) domain.HostCapabilities {
	caps := domain.HostCapabilities{
		PhysicalMemoryGB: cfg.PhysicalMemoryGB,
	}

	if caps.PhysicalMemoryGB <= 0 {
		caps.PhysicalMemoryGB = physicalMemoryGB()
	}

	interp := cfg.OptionalRuntime
	if interp == "" {
		interp = "python3"
	}
	_, err := exec.LookPath(interp)
	caps.OptionalRuntimeAvailable = err == nil

	return caps
}

func physicalMemoryGB() int {
	switch runtime.GOOS {
	case "darwin":
		out, err := exec.Command("sysctl", "-n", "hw.memsize").Output()
		if err != nil {
			return fallbackMemoryGB
		}
		bytes, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
		if err != nil {
			return fallbackMemoryGB
		}
		return int(bytes >> 30)
	default:
		return linuxMemoryGB()
	}
}

// Assume a small machine when detection fails; auto-select then lands on
// the lowest tier, which always runs.
const fallbackMemoryGB = 8

func linuxMemoryGB() int {
	raw, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return fallbackMemoryGB
	}

	for _, line := range strings.Split(string(raw), "\n") {
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			break
		}
		return int(kb >> 20)
	}
	return fallbackMemoryGB
}
