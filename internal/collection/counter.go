package collection

// Increment adds one to a derived counter
func Increment(n int) int {
	return n + 1
}

// Decrement subtracts one from a derived counter, never going below zero
func Decrement(n int) int {
	return max(n-1, 0)
}
