package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsbox/opsbox/internal/sysinfo"
)

var enumJSON bool

var enumCmd = &cobra.Command{
	Use:     "enum",
	Aliases: []string{"e"},
	Short:   "Enumerate the host",
	Long:    "Collect OS, hardware, resource usage and listening sockets in one pass.",
	RunE:    runEnum,
}

func init() {
	rootCmd.AddCommand(enumCmd)
	enumCmd.Flags().BoolVar(&enumJSON, "json", false, "output as JSON")
}

func runEnum(cmd *cobra.Command, _ []string) error {
	snap := sysinfo.Collect(cmd.Context())
	ports, err := sysinfo.ListeningPorts(cmd.Context())
	if err != nil {
		logger.Warn("could not list ports", "error", err)
	}

	if enumJSON {
		return json.NewEncoder(os.Stdout).Encode(struct {
			sysinfo.Snapshot
			Ports []sysinfo.ListenPort `json:"ports"`
		}{snap, ports})
	}

	fmt.Printf("Host:     %s (%s, kernel %s)\n", snap.Hostname, snap.Platform, snap.KernelVersion)
	fmt.Printf("Uptime:   %s\n", (time.Duration(snap.UptimeSec) * time.Second).String())
	fmt.Printf("CPU:      %s, %d threads, %.1f%% busy\n", snap.CPUModel, snap.CPUThreads, snap.CPUPercent)
	fmt.Printf("Memory:   %.0f/%.0f MB (%.1f%%)\n", snap.MemUsedMB, snap.MemTotalMB, snap.MemPercent)
	fmt.Printf("Disk:     %.1f/%.1f GB (%.1f%%)\n", snap.DiskUsedGB, snap.DiskTotalGB, snap.DiskPercent)
	fmt.Printf("Load:     %.2f %.2f %.2f\n", snap.LoadAvg1, snap.LoadAvg5, snap.LoadAvg15)

	if len(snap.BlockDevices) > 0 {
		fmt.Println("\nBlock devices:")
		for _, d := range snap.BlockDevices {
			fmt.Printf("  %-10s %4d GB  %s\n", d.Name, d.SizeGB, d.Model)
		}
	}

	if len(ports) > 0 {
		fmt.Println("\nListening sockets:")
		printPorts(ports)
	}
	return nil
}

func printPorts(ports []sysinfo.ListenPort) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROTO\tADDR\tPORT\tPID\tPROCESS")
	for _, p := range ports {
		pid := "-"
		if p.PID > 0 {
			pid = fmt.Sprint(p.PID)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", p.Proto, p.Addr, p.Port, pid, p.Process)
	}
	w.Flush()
}
