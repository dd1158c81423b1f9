package utils

// PairKey builds an order-independent key for a two-participant pair, used to
// match conversations regardless of which side initiated.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "#" + b
}
