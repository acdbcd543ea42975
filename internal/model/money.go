package model

import "fmt"

// FormatCents renders an integer cent amount in major units ("149997" →
// "1499.97").  Totals are carried as cents everywhere and only formatted
// at the edge, so a 499.99 ticket times three is 1499.97 exactly.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
