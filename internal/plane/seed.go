package plane

// Seed navigation constants.
const (
	// SeedStep is the seed nudge in plane units at scale 1.
	SeedStep = 0.001
)

// InitialSeed is the Julia constant the explorer starts with.
var InitialSeed = Complex{Re: -0.7768, Im: 0.1374}

// NudgeSeed moves seed one step in the given direction. The step is
// proportional to scale so fine adjustments remain possible when zoomed in.
func NudgeSeed(seed Complex, dir Direction, scale float64) Complex {
	return seed.Add(dir.Unit().Scale(SeedStep * scale))
}
