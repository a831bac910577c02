package calibration

import (
	"runtime"
	"slices"
)

// GenerateWorkerCandidates returns the worker counts to time, based on the
// number of available CPU cores: powers of two up to the core count, the
// core count itself, and two and four bands per core for hosts with more
// than one core. Candidates never exceed height and are sorted ascending.
func GenerateWorkerCandidates(height int) []int {
	numCPU := runtime.NumCPU()

	candidates := []int{1}
	for w := 2; w < numCPU; w *= 2 {
		candidates = append(candidates, w)
	}
	if numCPU > 1 {
		candidates = append(candidates, numCPU, 2*numCPU, 4*numCPU)
	}
	return clampCandidates(candidates, height)
}

// GenerateQuickWorkerCandidates returns a reduced set for a fast pass.
func GenerateQuickWorkerCandidates(height int) []int {
	numCPU := runtime.NumCPU()
	if numCPU == 1 {
		return []int{1}
	}
	return clampCandidates([]int{1, numCPU, 2 * numCPU}, height)
}

func clampCandidates(candidates []int, height int) []int {
	out := make([]int, 0, len(candidates))
	for _, w := range candidates {
		if height > 0 {
			w = min(w, height)
		}
		out = append(out, max(w, 1))
	}
	slices.Sort(out)
	return slices.Compact(out)
}
