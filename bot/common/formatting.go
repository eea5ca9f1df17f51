package common

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount formats a monetary amount with two decimals and the
// configured currency symbol, e.g. "1234.50€".
func FormatAmount(value float64, symbol string) string {
	return fmt.Sprintf("%.2f%s", value, symbol)
}

// FormatNumberList renders the numbers extracted from one receipt for the
// acknowledgment message, e.g. "12.5, 1234.56, 3".
func FormatNumberList(numbers []float64) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}

// FormatRole renders a payroll role with its percentage, e.g. "Manager (20%)".
// A zero percentage role renders as its bare name.
func FormatRole(name string, percentage float64) string {
	if percentage <= 0 {
		return name
	}
	return fmt.Sprintf("%s (%d%%)", name, int(percentage*100))
}
