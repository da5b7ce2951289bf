package biquad

// Chain is a cascade of biquad sections processed in series.
type Chain struct {
	sections []*Section
}

// NewChain builds a cascade from the given coefficient sets. Zero-valued
// coefficient sets (out-of-range designs) are dropped, so an entirely
// invalid design yields an empty, pass-through chain.
func NewChain(coeffs ...Coefficients) *Chain {
	sections := make([]*Section, 0, len(coeffs))
	for _, c := range coeffs {
		if c.IsZero() {
			continue
		}
		sections = append(sections, NewSection(c))
	}
	return &Chain{sections: sections}
}

// Len returns the number of active sections.
func (c *Chain) Len() int {
	return len(c.sections)
}

// ProcessBlock filters buf in-place through every section in order.
func (c *Chain) ProcessBlock(buf []float64) {
	for _, s := range c.sections {
		s.ProcessBlock(buf)
	}
}

// Reset clears the state of every section.
func (c *Chain) Reset() {
	for _, s := range c.sections {
		s.Reset()
	}
}
