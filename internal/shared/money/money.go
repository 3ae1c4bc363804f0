// Package money represents currency amounts as integer paise to avoid
// floating-point drift across repeated repayment cycles.
package money

import "fmt"

// Paise is an amount in the smallest currency unit (1/100 rupee).
type Paise int64

// FromRupees converts whole rupees to Paise.
func FromRupees(r int64) Paise {
	return Paise(r * 100)
}

// Rupees returns the whole-rupee part of the amount.
func (p Paise) Rupees() int64 {
	return int64(p) / 100
}

// String formats the amount as rupees with two decimals, e.g. "₹37500.00".
func (p Paise) String() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, v/100, v%100)
}
