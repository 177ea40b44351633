package ranking

// Band is a coarse match quality bucket for a similarity percentage.
type Band string

const (
	Excellent Band = "Excellent Match"
	Strong    Band = "Strong Match"
	Moderate  Band = "Moderate Match"
	Limited   Band = "Limited Match"
)

func BandFor(percentage float64) Band {
	switch {
	case percentage >= 80:
		return Excellent
	case percentage >= 60:
		return Strong
	case percentage >= 40:
		return Moderate
	default:
		return Limited
	}
}
