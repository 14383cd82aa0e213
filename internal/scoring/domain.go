package scoring

// Domain is a named raw-score input range with its neutral default. The
// engine itself never validates or clamps (constraining inputs to a domain
// is the caller's job) but every form and import path shares these constants
// instead of re-declaring defaults ad hoc.
type Domain struct {
	Min     float64
	Max     float64
	Default float64
}

var (
	// DomainStandard is the canonical raw-score domain for the four main
	// criterion groups. The axis transform assumes it.
	DomainStandard = Domain{Min: 0, Max: 10, Default: 5}

	// DomainCompact is the reduced input domain used for additional-criterion
	// weights.
	DomainCompact = Domain{Min: 0, Max: 3, Default: 1.5}

	// DomainSigned is the signed adjustment domain centered on zero.
	DomainSigned = Domain{Min: -1, Max: 1, Default: 0}
)

// Clamp constrains v to the domain. Provided for callers that validate before
// invoking the engine.
func (d Domain) Clamp(v float64) float64 {
	if v < d.Min {
		return d.Min
	}
	if v > d.Max {
		return d.Max
	}
	return v
}

// Contains reports whether v lies within the domain.
func (d Domain) Contains(v float64) bool {
	return v >= d.Min && v <= d.Max
}
