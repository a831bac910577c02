package config

import "runtime"

// Worker count resolution (highest priority first):
//   1. -workers flag
//   2. FRACTAL_WORKERS
//   3. calibrate mode result, when the caller applies it
//   4. EstimateOptimalWorkers (this file)

// ApplyAdaptiveWorkers fills Workers when it is left at zero.
func ApplyAdaptiveWorkers(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers(cfg.Height)
	}
	return cfg
}

// EstimateOptimalWorkers provides a heuristic band count without running
// benchmarks. Escape-time cost is uneven across rows, so hosts with more
// than four cores get two bands per core. The result never exceeds height.
func EstimateOptimalWorkers(height int) int {
	numCPU := runtime.NumCPU()

	var workers int
	switch {
	case numCPU <= 1:
		workers = 1
	case numCPU <= 4:
		workers = numCPU
	default:
		workers = 2 * numCPU
	}
	if height > 0 && workers > height {
		workers = height
	}
	return max(workers, 1)
}
