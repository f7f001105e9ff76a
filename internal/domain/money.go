package domain

// ApplyRate computes amount × rate, with the rate expressed in basis
// points, rounded half-up to the minor currency unit. Used for both the
// processing fee on payouts and the platform fee share on contributions.
func ApplyRate(amount int64, rateBP int64) int64 {
	return (amount*rateBP + 5000) / 10000
}
