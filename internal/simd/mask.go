package simd

// Mask is a per-lane boolean produced by lane comparisons.
type Mask [Lanes]bool

// MaskAll returns a mask with every lane set.
func MaskAll() Mask {
	var m Mask
	for i := range m {
		m[i] = true
	}
	return m
}

// Any reports whether at least one lane is set.
func (m Mask) Any() bool {
	for _, b := range m {
		if b {
			return true
		}
	}
	return false
}

// All reports whether every lane is set.
func (m Mask) All() bool {
	for _, b := range m {
		if !b {
			return false
		}
	}
	return true
}

// Count returns the number of set lanes.
func (m Mask) Count() int {
	n := 0
	for _, b := range m {
		if b {
			n++
		}
	}
	return n
}

// And returns the lane-wise conjunction.
func (m Mask) And(other Mask) Mask {
	var result Mask
	for i := range m {
		result[i] = m[i] && other[i]
	}
	return result
}

// AndNot returns m with the lanes of other cleared.
func (m Mask) AndNot(other Mask) Mask {
	var result Mask
	for i := range m {
		result[i] = m[i] && !other[i]
	}
	return result
}

// Or returns the lane-wise disjunction.
func (m Mask) Or(other Mask) Mask {
	var result Mask
	for i := range m {
		result[i] = m[i] || other[i]
	}
	return result
}

// Not inverts every lane.
func (m Mask) Not() Mask {
	var result Mask
	for i := range m {
		result[i] = !m[i]
	}
	return result
}
