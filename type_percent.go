package fundtrade

import "fmt"

// Percent is a rate expressed in percent units (1.5 means 1.5%).
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// Fraction returns the rate as a plain ratio (1.5% -> 0.015).
func (p Percent) Fraction() float64 { return float64(p) / 100 }

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
