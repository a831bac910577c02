package simd

import "golang.org/x/sys/cpu"

// Backend names the widest vector instruction set the host offers.
// Batches are plain Go loops; the backend only tells how far the compiler's
// auto-vectorization can widen them.
type Backend int

const (
	BackendGeneric Backend = iota
	BackendNEON
	BackendAVX2
	BackendAVX512
)

func (b Backend) String() string {
	switch b {
	case BackendAVX512:
		return "AVX-512"
	case BackendAVX2:
		return "AVX2"
	case BackendNEON:
		return "NEON"
	case BackendGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// DetectBackend inspects the CPU feature flags.
func DetectBackend() Backend {
	switch {
	case cpu.X86.HasAVX512F:
		return BackendAVX512
	case cpu.X86.HasAVX2:
		return BackendAVX2
	case cpu.ARM64.HasASIMD:
		return BackendNEON
	default:
		return BackendGeneric
	}
}
