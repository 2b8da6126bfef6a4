package utils

import "golang.org/x/exp/constraints"

// Min returns the smallest of x and y.
func Min[T constraints.Ordered](x, y T) T {
	if y < x {
		return y
	}
	return x
}

// Max returns the largest of x and y.
func Max[T constraints.Ordered](x, y T) T {
	if y > x {
		return y
	}
	return x
}

// Abs returns the absolute value of x.
func Abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp restricts x to the [lo, hi] interval. lo wins when the interval is empty.
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	return Max(lo, Min(x, hi))
}
