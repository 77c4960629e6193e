package diagnostic

import (
	"strings"
	"testing"
)

func TestRecommendHighDiskUsage(t *testing.T) {
	fixes := recommend(
		DiskInfo{PercentUsed: 95},
		MemoryInfo{PercentUsed: 40},
		NetworkInfo{Interfaces: []string{"eth0"}},
	)
	if len(fixes) != 1 {
		t.Fatalf("expected 1 fix, got %d: %v", len(fixes), fixes)
	}
	if !strings.Contains(fixes[0], "Disk usage is above 90%") {
		t.Errorf("unexpected fix: %q", fixes[0])
	}
}

func TestRecommendHighMemoryUsage(t *testing.T) {
	fixes := recommend(
		DiskInfo{PercentUsed: 50},
		MemoryInfo{PercentUsed: 95},
		NetworkInfo{Interfaces: []string{"wlan0"}},
	)
	if len(fixes) != 1 {
		t.Fatalf("expected 1 fix, got %d: %v", len(fixes), fixes)
	}
	if !strings.Contains(fixes[0], "Memory usage is above 90%") {
		t.Errorf("unexpected fix: %q", fixes[0])
	}
}

func TestRecommendNoNetwork(t *testing.T) {
	fixes := recommend(DiskInfo{PercentUsed: 10}, MemoryInfo{PercentUsed: 10}, NetworkInfo{})
	if len(fixes) != 1 {
		t.Fatalf("expected 1 fix, got %d: %v", len(fixes), fixes)
	}
	if !strings.Contains(fixes[0], "No network address detected") {
		t.Errorf("unexpected fix: %q", fixes[0])
	}
}

func TestRecommendHealthyHost(t *testing.T) {
	fixes := recommend(
		DiskInfo{PercentUsed: 42},
		MemoryInfo{PercentUsed: 61},
		NetworkInfo{Interfaces: []string{"eth0", "wlan0"}},
	)
	if len(fixes) != 0 {
		t.Fatalf("expected no fixes, got %v", fixes)
	}
}

func TestRecommendCompoundProblems(t *testing.T) {
	fixes := recommend(DiskInfo{PercentUsed: 99}, MemoryInfo{PercentUsed: 99}, NetworkInfo{})
	if len(fixes) != 3 {
		t.Fatalf("expected 3 fixes, got %d: %v", len(fixes), fixes)
	}
}

func TestSummaryRendersSections(t *testing.T) {
	r := Report{
		OS:       OSInfo{System: "linux", Release: "6.8", Arch: "amd64", Hostname: "box", UptimeHr: 12.5},
		Hardware: HardwareInfo{CPUCount: 8, CPUModel: "Example CPU", CPUPercent: 23.4},
		Disk:     DiskInfo{Path: "/home/user", TotalGB: 100, UsedGB: 95, FreeGB: 5, PercentUsed: 95},
		Memory:   MemoryInfo{TotalGB: 16, AvailableGB: 8, PercentUsed: 50},
		Network:  NetworkInfo{Interfaces: []string{"eth0"}},
	}
	r.Recommendations = recommend(r.Disk, r.Memory, r.Network)

	out := r.Summary()
	for _, want := range []string{
		"Device Diagnostic Results:",
		"linux 6.8 (amd64)",
		"8 cores (Example CPU)",
		"95.0/100.0 GB used (95.0%)",
		"16.0 GB total",
		"1 active interface(s)",
		"Recommendations:",
		"Disk usage is above 90%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}
}

func TestRunProducesReport(t *testing.T) {
	r := Run()
	if r.Hardware.CPUCount < 1 {
		t.Errorf("expected at least one CPU, got %d", r.Hardware.CPUCount)
	}
	if r.OS.System == "" {
		t.Error("expected OS system to be set")
	}
	if !strings.Contains(r.Summary(), "Device Diagnostic Results:") {
		t.Error("summary missing header")
	}
}
