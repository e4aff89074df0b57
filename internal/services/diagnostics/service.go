// Package diagnostics checks that the tracker's backend, database and log
// directory are usable, for `etsytrack doctor`.
package diagnostics

import (
	"context"
	"fmt"
	"net"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/zavlong/etsy-task-tracker/internal/config"
	"github.com/zavlong/etsy-task-tracker/internal/services/network"
)

// HealthStatus represents the overall health state
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthDegraded HealthStatus = "degraded"
	HealthCritical HealthStatus = "critical"
)

// BackendInfo describes the API the dashboard talks to
type BackendInfo struct {
	BaseURL string
	Online  bool
	Latency time.Duration
	Error   string
}

// ListenInfo describes the address `serve` would bind
type ListenInfo struct {
	Addr      string
	Available bool
}

// FileInfo describes a path the tracker reads or writes
type FileInfo struct {
	Path   string
	Exists bool
	Size   int64
}

// SystemInfo represents overall system information
type SystemInfo struct {
	GoVersion    string
	OS           string
	Arch         string
	NumGoroutine int
	MemoryUsage  uint64 // Bytes
}

// Report contains all diagnostic information
type Report struct {
	Timestamp    time.Time
	OverallState HealthStatus
	ConfigFile   string
	Backend      BackendInfo
	Listen       ListenInfo
	Database     FileInfo
	LogDir       FileInfo
	System       SystemInfo
	Warnings     []string
	Errors       []string
}

// Service collects diagnostics for one configuration
type Service struct {
	pinger     network.Pinger
	fs         afero.Fs
	cfg        *config.Config
	configFile string
	now        func() time.Time

	// portAvailable is swapped in tests
	portAvailable func(addr string) bool
}

// NewService creates a new diagnostics service
func NewService(pinger network.Pinger, fs afero.Fs, cfg *config.Config, configFile string) *Service {
	return &Service{
		pinger:        pinger,
		fs:            fs,
		cfg:           cfg,
		configFile:    configFile,
		now:           time.Now,
		portAvailable: isPortAvailable,
	}
}

// Collect runs every check
func (s *Service) Collect(ctx context.Context) *Report {
	var warnings, errors []string

	// Backend reachability
	backend := BackendInfo{BaseURL: s.cfg.Client.BaseURL}
	start := s.now()
	if err := s.pinger.Ping(ctx); err != nil {
		backend.Error = err.Error()
		errors = append(errors, fmt.Sprintf("Backend at %s is unreachable: %v", backend.BaseURL, err))
	} else {
		backend.Online = true
		backend.Latency = s.now().Sub(start)
	}

	// A busy listen address is expected when the backend is already running here
	listen := ListenInfo{Addr: s.cfg.Server.Addr, Available: s.portAvailable(s.cfg.Server.Addr)}
	if !listen.Available && !backend.Online {
		warnings = append(warnings, fmt.Sprintf("Address %s is taken by another program", listen.Addr))
	}

	db := s.statFile(s.cfg.Server.DBPath)
	if !db.Exists {
		warnings = append(warnings, fmt.Sprintf("Database %s does not exist yet; `etsytrack serve` creates it", db.Path))
	}

	logDir := s.statFile(s.cfg.Log.Dir)
	if !logDir.Exists {
		warnings = append(warnings, fmt.Sprintf("Log directory %s does not exist yet", logDir.Path))
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	system := SystemInfo{
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
		NumGoroutine: runtime.NumGoroutine(),
		MemoryUsage:  memStats.Alloc,
	}

	overallState := HealthHealthy
	if len(errors) > 0 {
		overallState = HealthCritical
	} else if len(warnings) > 0 {
		overallState = HealthDegraded
	}

	report := &Report{
		Timestamp:    s.now(),
		OverallState: overallState,
		ConfigFile:   s.configFile,
		Backend:      backend,
		Listen:       listen,
		Database:     db,
		LogDir:       logDir,
		System:       system,
		Warnings:     warnings,
		Errors:       errors,
	}
	return report
}

func (s *Service) statFile(path string) FileInfo {
	info := FileInfo{Path: path}
	st, err := s.fs.Stat(path)
	if err != nil {
		return info
	}
	info.Exists = true
	if !st.IsDir() {
		info.Size = st.Size()
	}
	return info
}

// Format returns a human-readable report
func Format(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Status: %s\n", strings.ToUpper(string(r.OverallState)))
	fmt.Fprintf(&b, "Checked: %s\n\n", r.Timestamp.Format("15:04:05"))

	if len(r.Errors) > 0 {
		b.WriteString("ERRORS:\n")
		for _, err := range r.Errors {
			fmt.Fprintf(&b, "  ✗ %s\n", err)
		}
		b.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		b.WriteString("WARNINGS:\n")
		for _, warn := range r.Warnings {
			fmt.Fprintf(&b, "  ⚠ %s\n", warn)
		}
		b.WriteString("\n")
	}

	b.WriteString("CONFIG:\n")
	if r.ConfigFile != "" {
		fmt.Fprintf(&b, "  File: %s\n\n", r.ConfigFile)
	} else {
		b.WriteString("  File: (none, using defaults and environment)\n\n")
	}

	b.WriteString("BACKEND:\n")
	fmt.Fprintf(&b, "  URL: %s\n", r.Backend.BaseURL)
	if r.Backend.Online {
		fmt.Fprintf(&b, "  ✓ Online (%s)\n", formatLatency(r.Backend.Latency))
	} else {
		b.WriteString("  ✗ Offline\n")
	}
	listen := "free"
	if !r.Listen.Available {
		listen = "in use"
	}
	fmt.Fprintf(&b, "  Listen address: %s (%s)\n\n", r.Listen.Addr, listen)

	b.WriteString("STORAGE:\n")
	if r.Database.Exists {
		fmt.Fprintf(&b, "  Database: %s (%s)\n", r.Database.Path, formatBytes(uint64(r.Database.Size)))
	} else {
		fmt.Fprintf(&b, "  Database: %s (missing)\n", r.Database.Path)
	}
	if r.LogDir.Exists {
		fmt.Fprintf(&b, "  Logs: %s\n\n", r.LogDir.Path)
	} else {
		fmt.Fprintf(&b, "  Logs: %s (missing)\n\n", r.LogDir.Path)
	}

	b.WriteString("SYSTEM:\n")
	fmt.Fprintf(&b, "  Go: %s\n", r.System.GoVersion)
	fmt.Fprintf(&b, "  OS: %s/%s\n", r.System.OS, r.System.Arch)
	fmt.Fprintf(&b, "  Goroutines: %d\n", r.System.NumGoroutine)
	fmt.Fprintf(&b, "  Memory: %s\n", formatBytes(r.System.MemoryUsage))

	return b.String()
}

// isPortAvailable checks if an address is free by attempting to listen on it
func isPortAvailable(addr string) bool {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return false
	}
	ln.Close()
	return true
}

func formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// formatBytes formats bytes in a human-readable format
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
