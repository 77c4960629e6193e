// Package diagnostic gathers host health information and turns it into
// actionable recommendations.
package diagnostic

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gopsnet "github.com/shirou/gopsutil/v4/net"
)

// Report is the outcome of one diagnostic run.
type Report struct {
	OS              OSInfo
	Hardware        HardwareInfo
	Disk            DiskInfo
	Memory          MemoryInfo
	Network         NetworkInfo
	Recommendations []string
}

type OSInfo struct {
	System   string
	Release  string
	Arch     string
	Hostname string
	UptimeHr float64
}

type HardwareInfo struct {
	CPUCount   int
	CPUModel   string
	CPUPercent float64
}

type DiskInfo struct {
	Path        string
	TotalGB     float64
	UsedGB      float64
	FreeGB      float64
	PercentUsed float64
}

type MemoryInfo struct {
	TotalGB     float64
	AvailableGB float64
	PercentUsed float64
}

type NetworkInfo struct {
	Interfaces []string // names of interfaces that carry a non-loopback address
}

// Run performs every check and derives recommendations. Individual check
// failures are reported as warnings, never aborting the run.
func Run() Report {
	var r Report
	r.OS = checkOS()
	r.Hardware = checkHardware()
	r.Disk = checkDisk()
	r.Memory = checkMemory()
	r.Network = checkNetwork()
	r.Recommendations = recommend(r.Disk, r.Memory, r.Network)
	return r
}

func checkOS() OSInfo {
	info := OSInfo{System: runtime.GOOS, Arch: runtime.GOARCH}
	if hi, err := host.Info(); err == nil {
		info.Release = hi.PlatformVersion
		info.Hostname = hi.Hostname
		info.UptimeHr = float64(hi.Uptime) / 3600
	} else {
		warn("host info", err)
	}
	return info
}

func checkHardware() HardwareInfo {
	hw := HardwareInfo{CPUCount: runtime.NumCPU()}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		hw.CPUModel = infos[0].ModelName
	} else if err != nil {
		warn("cpu info", err)
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		hw.CPUPercent = percents[0]
	}
	return hw
}

func checkDisk() DiskInfo {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/"
	}
	info := DiskInfo{Path: home}
	usage, err := disk.Usage(home)
	if err != nil {
		warn("disk usage", err)
		return info
	}
	info.TotalGB = gb(usage.Total)
	info.UsedGB = gb(usage.Used)
	info.FreeGB = gb(usage.Free)
	info.PercentUsed = usage.UsedPercent
	return info
}

func checkMemory() MemoryInfo {
	vm, err := mem.VirtualMemory()
	if err != nil {
		warn("virtual memory", err)
		return MemoryInfo{}
	}
	return MemoryInfo{
		TotalGB:     gb(vm.Total),
		AvailableGB: gb(vm.Available),
		PercentUsed: vm.UsedPercent,
	}
}

func checkNetwork() NetworkInfo {
	var info NetworkInfo
	ifaces, err := gopsnet.Interfaces()
	if err != nil {
		warn("network interfaces", err)
		return info
	}
	for _, iface := range ifaces {
		for _, addr := range iface.Addrs {
			if strings.HasPrefix(addr.Addr, "127.") || strings.HasPrefix(addr.Addr, "::1") {
				continue
			}
			info.Interfaces = append(info.Interfaces, iface.Name)
			break
		}
	}
	return info
}

// recommend derives fixes from check results. Pure so it can be tested
// without touching the host.
func recommend(d DiskInfo, m MemoryInfo, n NetworkInfo) []string {
	var fixes []string
	if d.PercentUsed > 90 {
		fixes = append(fixes, "Disk usage is above 90%. Consider freeing up space or upgrading your drive.")
	}
	if m.PercentUsed > 90 {
		fixes = append(fixes, "Memory usage is above 90%. Close unused applications or consider adding more RAM.")
	}
	if len(n.Interfaces) == 0 {
		fixes = append(fixes, "No network address detected. Check your network connection or adapter.")
	}
	return fixes
}

// Summary renders the report as a text block for chat output.
func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("Device Diagnostic Results:\n")
	fmt.Fprintf(&b, "- OS: %s %s (%s), host %s, up %.1fh\n",
		r.OS.System, r.OS.Release, r.OS.Arch, r.OS.Hostname, r.OS.UptimeHr)
	fmt.Fprintf(&b, "- CPU: %d cores", r.Hardware.CPUCount)
	if r.Hardware.CPUModel != "" {
		fmt.Fprintf(&b, " (%s)", r.Hardware.CPUModel)
	}
	fmt.Fprintf(&b, ", %.1f%% busy\n", r.Hardware.CPUPercent)
	fmt.Fprintf(&b, "- Disk (%s): %.1f/%.1f GB used (%.1f%%)\n",
		r.Disk.Path, r.Disk.UsedGB, r.Disk.TotalGB, r.Disk.PercentUsed)
	fmt.Fprintf(&b, "- Memory: %.1f GB total, %.1f GB available (%.1f%% used)\n",
		r.Memory.TotalGB, r.Memory.AvailableGB, r.Memory.PercentUsed)
	fmt.Fprintf(&b, "- Network: %d active interface(s)\n", len(r.Network.Interfaces))

	if len(r.Recommendations) > 0 {
		b.WriteString("Recommendations:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}
	return b.String()
}

func gb(v uint64) float64 {
	return float64(v) / (1 << 30)
}

func warn(what string, err error) {
	fmt.Fprintf(os.Stderr, "[augi] diagnostic %s failed: %v\n", what, err)
}
