package dashboard

import "fmt"

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders a byte count with 1024-based units.
func FormatBytes(bytes float64) string {
	if bytes <= 0 {
		return "0 B"
	}
	for _, unit := range byteUnits {
		if bytes < 1024 || unit == byteUnits[len(byteUnits)-1] {
			return fmt.Sprintf("%.2f %s", bytes, unit)
		}
		bytes /= 1024
	}
	return ""
}

// FormatNumber renders large counts with K/M/B suffixes.
func FormatNumber(num float64) string {
	switch {
	case num >= 1e9:
		return fmt.Sprintf("%.2fB", num/1e9)
	case num >= 1e6:
		return fmt.Sprintf("%.2fM", num/1e6)
	case num >= 1e3:
		return fmt.Sprintf("%.2fK", num/1e3)
	default:
		return fmt.Sprintf("%.0f", num)
	}
}

// SafeDivide avoids division by zero, substituting def.
func SafeDivide(numerator, denominator, def float64) float64 {
	if denominator == 0 {
		return def
	}
	return numerator / denominator
}
