package board

// prng is a xorshift64* generator. Zobrist keys and the magic search both
// draw from it so every table is reproducible from its seed.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) seed(seed uint64) {
	p.state = seed
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// sparse returns a number with roughly one bit in eight set.
func (p *prng) sparse() uint64 {
	return p.next() & p.next() & p.next()
}
