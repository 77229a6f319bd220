package services

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type SystemSnapshot struct {
	CapturedAt        time.Time `json:"captured_at"`
	ProcessRSSBytes   int64     `json:"process_rss_bytes"`
	ProcessCpuLoad    float64   `json:"process_cpu_load"`
	SystemCpuLoad     float64   `json:"system_cpu_load"`
	SystemMemoryTotal int64     `json:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `json:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `json:"disk_total_bytes"`
	DiskUsedBytes     int64     `json:"disk_used_bytes"`
}

// CaptureSystem samples host and process usage on demand. diskPath picks the
// volume to report; it falls back to "/" when unreadable.
func CaptureSystem(diskPath string) SystemSnapshot {
	snapshot := SystemSnapshot{CapturedAt: time.Now().UTC()}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfo(); err == nil && info != nil {
			snapshot.ProcessRSSBytes = int64(info.RSS)
		}
		if perc, err := proc.CPUPercent(); err == nil {
			snapshot.ProcessCpuLoad = perc / 100.0
		}
	}
	if sysCPU, err := cpu.Percent(0, false); err == nil && len(sysCPU) > 0 {
		snapshot.SystemCpuLoad = sysCPU[0] / 100.0
	}
	if memStat, err := mem.VirtualMemory(); err == nil {
		snapshot.SystemMemoryTotal = int64(memStat.Total)
		snapshot.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, err = disk.Usage("/")
	}
	if err == nil {
		snapshot.DiskTotalBytes = int64(diskStat.Total)
		snapshot.DiskUsedBytes = int64(diskStat.Used)
	}
	return snapshot
}
