package quality

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/iudanet/deltasync/internal/models"
)

//go:generate moq -out runtime_mock.go . RuntimeProvider

// RuntimeProvider возвращает метрики процесса для сводки о здоровье системы.
type RuntimeProvider interface {
	Stats(ctx context.Context) (models.RuntimeStats, error)
}

// ProcessProvider собирает метрики текущего процесса через gopsutil.
type ProcessProvider struct {
	proc *process.Process
}

// NewProcessProvider creates a provider for the running process
func NewProcessProvider() (*ProcessProvider, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to open current process: %w", err)
	}
	return &ProcessProvider{proc: proc}, nil
}

// Stats returns CPU, memory, load and goroutine figures. Partial failures are
// joined into the error; the collected fields are still returned.
func (p *ProcessProvider) Stats(ctx context.Context) (models.RuntimeStats, error) {
	stats := models.RuntimeStats{Goroutines: runtime.NumGoroutine()}
	var errs []error

	if cpu, err := p.proc.CPUPercentWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("cpu: %w", err))
	} else {
		stats.CPUPercent = cpu
	}

	if info, err := p.proc.MemoryInfoWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("rss: %w", err))
	} else {
		stats.MemoryRSSBytes = info.RSS
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("host memory: %w", err))
	} else {
		stats.HostMemoryUsed = vm.UsedPercent
	}

	if avg, err := load.AvgWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("load: %w", err))
	} else {
		stats.Load1 = avg.Load1
	}

	return stats, errors.Join(errs...)
}
