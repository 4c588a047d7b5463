package metrics

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"time"
)

var started = time.Now()

// Health is a point-in-time view of the process and its data directory.
type Health struct {
	AllocMB    uint64
	SysMB      uint64
	NumGC      uint32
	Goroutines int
	Uptime     time.Duration
	DataFiles  int
	DataBytes  int64
}

// ReadHealth samples the runtime and walks dataDir. A missing or unreadable
// directory reports zero files.
func ReadHealth(dataDir string) Health {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	h := Health{
		AllocMB:    m.Alloc >> 20,
		SysMB:      m.Sys >> 20,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
		Uptime:     time.Since(started).Round(time.Second),
	}
	_ = filepath.WalkDir(dataDir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			h.DataFiles++
			h.DataBytes += info.Size()
		}
		return nil
	})
	return h
}

// DataSize renders DataBytes in binary units.
func (h Health) DataSize() string {
	return formatBytes(h.DataBytes)
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
