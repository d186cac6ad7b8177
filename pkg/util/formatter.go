package util

import "fmt"

// FormatMW prints a megawatt-scale quantity, switching to scientific
// notation outside the readable range.
func FormatMW(value float64) string {
	if value >= 10000 || (value != 0 && value < 0.001 && value > -0.001) || value <= -10000 {
		return fmt.Sprintf("%10.3e", value)
	}
	return fmt.Sprintf("%10.3f", value)
}

// FormatPU prints a per-unit quantity.
func FormatPU(value float64) string {
	return fmt.Sprintf("%8.4f", value)
}

// FormatDeg prints an angle in degrees.
func FormatDeg(value float64) string {
	return fmt.Sprintf("%8.3f", value)
}
