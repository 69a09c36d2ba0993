package dataflow

// NegInf and PosInf are the saturation bounds of the interval domain.
// They are deliberately small and fixed, serving as widening by
// saturation rather than a general widening operator; named constants
// per the corpus's preference for self-documenting bounds over
// scattered literals.
const (
	NegInf int64 = -1000
	PosInf int64 = 1000
)

func saturate(v int64) int64 {
	if v < NegInf {
		return NegInf
	}
	if v > PosInf {
		return PosInf
	}
	return v
}

// Interval is either Empty (⊥, no reaching value known) or a closed,
// saturated range [Lo, Hi].
type Interval struct {
	Empty bool
	Lo    int64
	Hi    int64
}

// EmptyInterval is the bottom element.
func EmptyInterval() Interval { return Interval{Empty: true} }

// Point builds the single-value interval [v, v], saturated.
func Point(v int64) Interval {
	s := saturate(v)
	return Interval{Lo: s, Hi: s}
}

// Top is the full saturated range, the value of a freshly allocated
// slot.
func Top() Interval { return Interval{Lo: NegInf, Hi: PosInf} }

// Join computes [min(a.Lo,b.Lo), max(a.Hi,b.Hi)]; Empty is the
// identity.
func (a Interval) Join(b Interval) Interval {
	if a.Empty {
		return b
	}
	if b.Empty {
		return a
	}
	lo := a.Lo
	if b.Lo < lo {
		lo = b.Lo
	}
	hi := a.Hi
	if b.Hi > hi {
		hi = b.Hi
	}
	return Interval{Lo: lo, Hi: hi}
}

func (a Interval) Equal(b Interval) bool {
	if a.Empty != b.Empty {
		return false
	}
	if a.Empty {
		return true
	}
	return a.Lo == b.Lo && a.Hi == b.Hi
}

// Contains reports whether v lies within a non-empty interval.
func (a Interval) Contains(v int64) bool {
	return !a.Empty && v >= a.Lo && v <= a.Hi
}

// Add, Sub, Mul, SDiv, SRem implement the interval arithmetic of the
// analysis's spec: any Empty operand yields Empty; all results are
// re-saturated into [NegInf, PosInf].

func (a Interval) Add(b Interval) Interval {
	if a.Empty || b.Empty {
		return EmptyInterval()
	}
	lo := NegInf
	if a.Lo != NegInf && b.Lo != NegInf {
		lo = saturate(a.Lo + b.Lo)
	}
	hi := PosInf
	if a.Hi != PosInf && b.Hi != PosInf {
		hi = saturate(a.Hi + b.Hi)
	}
	return Interval{Lo: lo, Hi: hi}
}

func (a Interval) Sub(b Interval) Interval {
	if a.Empty || b.Empty {
		return EmptyInterval()
	}
	lo := NegInf
	if a.Lo != NegInf && b.Hi != PosInf {
		lo = saturate(a.Lo - b.Hi)
	}
	hi := PosInf
	if a.Hi != PosInf && b.Lo != NegInf {
		hi = saturate(a.Hi - b.Lo)
	}
	return Interval{Lo: lo, Hi: hi}
}

func (a Interval) Mul(b Interval) Interval {
	if a.Empty || b.Empty {
		return EmptyInterval()
	}
	products := [4]int64{a.Lo * b.Lo, a.Lo * b.Hi, a.Hi * b.Lo, a.Hi * b.Hi}
	lo, hi := products[0], products[0]
	for _, p := range products[1:] {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	return Interval{Lo: saturate(lo), Hi: saturate(hi)}
}

// SDiv implements the documented source deviation: a divisor that is
// exactly [0,0] yields [NegInf, PosInf] as a single top-yielding case.
// This is deliberately preserved rather than "fixed": the original
// implementation special-cases the zero divisor and then falls
// through to the general quotient computation anyway, which can
// disagree with the special case; this port stops at the special
// case instead of also running the general path.
func (a Interval) SDiv(b Interval) Interval {
	if a.Empty || b.Empty {
		return EmptyInterval()
	}
	if b.Lo == 0 && b.Hi == 0 {
		return Top()
	}
	if b.Lo <= 0 && b.Hi >= 0 {
		// Divisor crosses zero: union the positive-half and
		// negative-half quotients, excluding zero itself.
		neg := EmptyInterval()
		if b.Lo < 0 {
			neg = a.SDiv(Interval{Lo: b.Lo, Hi: -1})
		}
		pos := EmptyInterval()
		if b.Hi > 0 {
			pos = a.SDiv(Interval{Lo: 1, Hi: b.Hi})
		}
		return neg.Join(pos)
	}
	quotients := [4]int64{
		divSaturating(a.Lo, b.Lo), divSaturating(a.Lo, b.Hi),
		divSaturating(a.Hi, b.Lo), divSaturating(a.Hi, b.Hi),
	}
	lo, hi := quotients[0], quotients[0]
	for _, q := range quotients[1:] {
		if q < lo {
			lo = q
		}
		if q > hi {
			hi = q
		}
	}
	return Interval{Lo: saturate(lo), Hi: saturate(hi)}
}

func divSaturating(l, r int64) int64 {
	if l == NegInf || l == PosInf || r == NegInf || r == PosInf {
		// Either endpoint is itself saturated/unbounded: the
		// quotient's magnitude is unbounded in the corresponding
		// direction.
		if (l >= 0) == (r > 0) {
			return PosInf
		}
		return NegInf
	}
	return l / r
}

// SRem bounds the remainder to [0, min(|dividend_hi|, |divisor_hi|-1)],
// abstracting away sign: the analysis treats the remainder as
// non-negative regardless of operand signs.
func (a Interval) SRem(b Interval) Interval {
	if a.Empty || b.Empty {
		return EmptyInterval()
	}
	dividendBound := absBound(a.Lo, a.Hi)
	divisorBound := absBound(b.Lo, b.Hi)
	hi := dividendBound
	if divisorBound-1 < hi {
		hi = divisorBound - 1
	}
	if hi < 0 {
		hi = 0
	}
	return Interval{Lo: 0, Hi: saturate(hi)}
}

func absBound(lo, hi int64) int64 {
	if lo == NegInf || hi == PosInf {
		return PosInf
	}
	m := lo
	if m < 0 {
		m = -m
	}
	if hi < 0 {
		hi = -hi
	}
	if hi > m {
		m = hi
	}
	return m
}

// IntervalMap is the per-block state for interval analysis: a mapping
// from variable name (local slot or, transiently during a block's own
// transfer, a virtual register) to Interval. A missing key denotes
// Empty.
type IntervalMap map[string]Interval

// Clone returns an independent copy.
func (m IntervalMap) Clone() IntervalMap {
	c := make(IntervalMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Get returns the interval bound to name, or Empty if unbound.
func (m IntervalMap) Get(name string) Interval {
	if v, ok := m[name]; ok {
		return v
	}
	return EmptyInterval()
}

// IntervalMapDomain implements Domain[IntervalMap].
type IntervalMapDomain struct{}

func (IntervalMapDomain) Bottom() IntervalMap { return IntervalMap{} }

func (IntervalMapDomain) Join(a, b IntervalMap) IntervalMap {
	out := make(IntervalMap, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if existing, ok := out[k]; ok {
			out[k] = existing.Join(v)
		} else {
			out[k] = v
		}
	}
	return out
}

func (IntervalMapDomain) Equal(a, b IntervalMap) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		ov, ok := b[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
