package matching

// Weights are the coefficients of the final weighted sum. They are fixed per
// Scorer and are not read from runtime configuration.
type Weights struct {
	Core         float64
	Price        float64
	Mood         float64
	Talk         float64
	Style        float64
	Look         float64
	Availability float64
}

// DefaultWeights sum to 1.00. Core fit dominates; the tag axes act as
// secondary tie-breakers.
var DefaultWeights = Weights{
	Core:         0.40,
	Price:        0.15,
	Mood:         0.15,
	Talk:         0.10,
	Style:        0.10,
	Look:         0.05,
	Availability: 0.05,
}

// Sum returns the total of all coefficients.
func (w Weights) Sum() float64 {
	return w.Core + w.Price + w.Mood + w.Talk + w.Style + w.Look + w.Availability
}
