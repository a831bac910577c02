// Package sysmon samples host and process resource usage for the explorer
// header and the benchmark report.
package sysmon

import (
	"os"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // system-wide, 0.0 .. 100.0
	MemPercent float64 // system-wide, 0.0 .. 100.0
	ProcCPU    float64 // this process; may exceed 100 on several cores
	ProcRSS    uint64  // resident bytes of this process
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Sampler adds per-process figures to Sample. The process handle is opened
// lazily and reused so that successive CPU readings are deltas.
type Sampler struct {
	once sync.Once
	proc *process.Process
}

// NewSampler returns a sampler for the current process.
func NewSampler() *Sampler {
	return &Sampler{}
}

// Sample returns system and process usage. Process fields stay zero when
// the process cannot be inspected.
func (s *Sampler) Sample() Stats {
	st := Sample()
	s.once.Do(func() {
		p, err := process.NewProcess(int32(os.Getpid()))
		if err == nil {
			s.proc = p
		}
	})
	if s.proc == nil {
		return st
	}
	if pct, err := s.proc.Percent(0); err == nil {
		st.ProcCPU = pct
	}
	if mi, err := s.proc.MemoryInfo(); err == nil && mi != nil {
		st.ProcRSS = mi.RSS
	}
	return st
}

// LogicalCores reports the number of logical CPUs, falling back to
// runtime.NumCPU when the host query fails.
func LogicalCores() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
