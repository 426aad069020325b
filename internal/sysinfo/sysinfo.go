// Package sysinfo gathers host facts for the enumeration commands: OS and
// hardware identity, CPU/memory/disk/load usage, and listening sockets.
package sysinfo

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/jaypipes/ghw"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// Snapshot holds one collection pass of host facts.
type Snapshot struct {
	Hostname      string  `json:"hostname"`
	OS            string  `json:"os"`
	Platform      string  `json:"platform"`
	KernelVersion string  `json:"kernel_version"`
	UptimeSec     uint64  `json:"uptime_sec"`
	CPUModel      string  `json:"cpu_model"`
	CPUThreads    int     `json:"cpu_threads"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemTotalMB    float64 `json:"mem_total_mb"`
	MemUsedMB     float64 `json:"mem_used_mb"`
	MemPercent    float64 `json:"mem_percent"`
	DiskTotalGB   float64 `json:"disk_total_gb"`
	DiskUsedGB    float64 `json:"disk_used_gb"`
	DiskPercent   float64 `json:"disk_percent"`
	LoadAvg1      float64 `json:"load_avg_1"`
	LoadAvg5      float64 `json:"load_avg_5"`
	LoadAvg15     float64 `json:"load_avg_15"`
	BlockDevices  []Block `json:"block_devices,omitempty"`
}

// Block describes one physical storage device.
type Block struct {
	Name   string `json:"name"`
	Model  string `json:"model"`
	SizeGB uint64 `json:"size_gb"`
}

// Collect gathers a best-effort snapshot. Individual probes that fail leave
// their zero value behind rather than aborting the collection.
func Collect(ctx context.Context) Snapshot {
	var snap Snapshot

	if info, err := host.InfoWithContext(ctx); err == nil {
		snap.Hostname = info.Hostname
		snap.OS = info.OS
		snap.Platform = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
		snap.KernelVersion = info.KernelVersion
		snap.UptimeSec = info.Uptime
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		snap.CPUModel = infos[0].ModelName
	}
	snap.CPUThreads = runtime.NumCPU()
	if pcts, err := cpu.PercentWithContext(ctx, time.Second, false); err == nil && len(pcts) > 0 {
		snap.CPUPercent = pcts[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		snap.MemTotalMB = float64(vm.Total) / 1024 / 1024
		snap.MemUsedMB = float64(vm.Used) / 1024 / 1024
		snap.MemPercent = vm.UsedPercent
	}

	if du, err := disk.UsageWithContext(ctx, rootPath()); err == nil {
		snap.DiskTotalGB = float64(du.Total) / 1024 / 1024 / 1024
		snap.DiskUsedGB = float64(du.Used) / 1024 / 1024 / 1024
		snap.DiskPercent = du.UsedPercent
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		snap.LoadAvg1 = avg.Load1
		snap.LoadAvg5 = avg.Load5
		snap.LoadAvg15 = avg.Load15
	}

	if block, err := ghw.Block(); err == nil {
		for _, d := range block.Disks {
			snap.BlockDevices = append(snap.BlockDevices, Block{
				Name:   d.Name,
				Model:  d.Model,
				SizeGB: d.SizeBytes / 1024 / 1024 / 1024,
			})
		}
	}

	return snap
}

// CPUUsage returns the system-wide CPU utilisation over the sample window.
func CPUUsage(ctx context.Context, window time.Duration) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, fmt.Errorf("sampling cpu usage: %w", err)
	}
	if len(pcts) == 0 {
		return 0, fmt.Errorf("no cpu sample available")
	}
	return pcts[0], nil
}

// ListenPort describes one listening socket and its owning process.
type ListenPort struct {
	Proto   string `json:"proto"`
	Addr    string `json:"addr"`
	Port    uint32 `json:"port"`
	PID     int32  `json:"pid"`
	Process string `json:"process"`
}

// ListeningPorts lists TCP and UDP listeners sorted by port number.
func ListeningPorts(ctx context.Context) ([]ListenPort, error) {
	var ports []ListenPort

	tcp, err := gopsnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return nil, fmt.Errorf("listing tcp sockets: %w", err)
	}
	for _, c := range tcp {
		if c.Status != "LISTEN" {
			continue
		}
		ports = append(ports, toListenPort(ctx, "tcp", c))
	}

	udp, err := gopsnet.ConnectionsWithContext(ctx, "udp")
	if err != nil {
		return nil, fmt.Errorf("listing udp sockets: %w", err)
	}
	for _, c := range udp {
		ports = append(ports, toListenPort(ctx, "udp", c))
	}

	sort.Slice(ports, func(i, j int) bool {
		if ports[i].Port != ports[j].Port {
			return ports[i].Port < ports[j].Port
		}
		return ports[i].Proto < ports[j].Proto
	})
	return ports, nil
}

func toListenPort(ctx context.Context, proto string, c gopsnet.ConnectionStat) ListenPort {
	lp := ListenPort{
		Proto: proto,
		Addr:  c.Laddr.IP,
		Port:  c.Laddr.Port,
		PID:   c.Pid,
	}
	if c.Pid > 0 {
		if p, err := process.NewProcessWithContext(ctx, c.Pid); err == nil {
			if name, err := p.NameWithContext(ctx); err == nil {
				lp.Process = name
			}
		}
	}
	return lp
}

func rootPath() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}
