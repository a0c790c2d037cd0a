// Package fees splits a purchase price between the vendor and the
// marketplace.
package fees

// Split divides price into the marketplace fee and the vendor proceeds.
// Integer floor division; the two amounts always sum to price. Inputs are
// pre-validated by callers: feePercentage must be 0-100.
func Split(price uint64, feePercentage uint8) (feeAmount uint64, netAmount uint64) {
	feeAmount = price * uint64(feePercentage) / 100
	netAmount = price - feeAmount
	return
}
