package booking

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotalFee prices a walk from the walker's hourly rate and the
// requested duration, rounded to the cent.
func ComputeTotalFee(hourlyRate float64, durationMin int) float64 {
	return round2(hourlyRate * float64(durationMin) / 60.0)
}

// SplitFee divides a total into the platform's cut and the walker's
// payout. The payout is computed as the remainder, never rounded
// independently, so platform + payout always equals total to the cent.
func SplitFee(total, feeRate float64) (platform, payout float64) {
	platform = round2(total * feeRate)
	payout = round2(total - platform)
	return platform, payout
}
