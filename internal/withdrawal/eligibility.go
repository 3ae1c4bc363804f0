package withdrawal

import (
	"zestpay/internal/shared/money"
	"zestpay/internal/trust"
)

// Ceiling menghitung plafon tarik gaji bulanan: salary × score / 100,
// semua dalam paise sehingga pembagian integer membuang pecahan.
func Ceiling(monthlySalary money.Paise, score trust.SalariedScore) money.Paise {
	if monthlySalary <= 0 {
		return 0
	}
	return monthlySalary * money.Paise(trust.ClampSalaried(score)) / 100
}

// Available = plafon dikurangi yang sudah ditarik, tidak pernah negatif.
// totalWithdrawn bisa melebihi plafon kalau trust score turun setelah
// penarikan sebelumnya.
func Available(ceiling, totalWithdrawn money.Paise) money.Paise {
	if totalWithdrawn >= ceiling {
		return 0
	}
	return ceiling - totalWithdrawn
}
