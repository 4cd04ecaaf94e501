package calculator

import "math"

// LeasePayment 设备融资的等额月供
// 年利率为 0 时退化为本金均摊；本金或期数非正时返回 0
func LeasePayment(principal, annualRatePct float64, termMonths int) float64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}

	monthlyRate := annualRatePct / 100 / 12
	if monthlyRate == 0 {
		return principal / float64(termMonths)
	}

	factor := math.Pow(1+monthlyRate, float64(termMonths))
	return principal * monthlyRate * factor / (factor - 1)
}
