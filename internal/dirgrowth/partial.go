package dirgrowth

// Partial is the contribution of one entry, or of a group of entries, to the
// total. It is either counted with a byte size or excluded from the window.
//
// Excluded differs from Counted(0) only as a combine operand: it never adds
// anything, and the identity of the reduction is Counted(0).
type Partial struct {
	size    uint64
	counted bool
}

// Counted returns a partial contributing size bytes.
func Counted(size uint64) Partial {
	return Partial{size: size, counted: true}
}

// Excluded returns a partial that contributes nothing.
func Excluded() Partial {
	return Partial{}
}

// Identity is the neutral element of Combine.
func Identity() Partial {
	return Counted(0)
}

// IsCounted reports whether p carries a size.
func (p Partial) IsCounted() bool {
	return p.counted
}

// Combine merges two partials. It is associative and commutative.
func (p Partial) Combine(other Partial) Partial {
	switch {
	case p.counted && other.counted:
		return Counted(p.size + other.size)
	case p.counted:
		return p
	default:
		return other
	}
}

// Total collapses p into a byte count. Excluded yields 0.
func (p Partial) Total() uint64 {
	return p.size
}

// Reduce combines all partials, starting from Identity.
func Reduce(parts []Partial) Partial {
	acc := Identity()
	for _, part := range parts {
		acc = acc.Combine(part)
	}

	return acc
}
