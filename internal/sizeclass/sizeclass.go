// Package sizeclass
// Author: momentics <momentics@gmail.com>
//
// Allocator-friendly capacity rounding for arena allocation (spec §4.1
// good_size hook), following the teacher's pool/bufferpool.go size-class
// table convention: a mutable package-level table rather than a config
// file, since this is a library with no persisted configuration (spec §6).
package sizeclass

// Classes are the power-of-two buffer size classes (bytes) that GoodSize
// rounds up to. Embedders may replace this table wholesale; it is not
// read from any file or environment variable.
var Classes = [...]int{
	64,
	128,
	256,
	1 * 1024,
	2 * 1024,
	4 * 1024,
	8 * 1024,
	16 * 1024,
	32 * 1024,
	64 * 1024,
	128 * 1024,
	256 * 1024,
	512 * 1024,
	1 * 1024 * 1024,
}

// GoodSize rounds minCapacity up to the smallest configured class that
// can hold it, falling back to the next power of two above the largest
// class for oversized requests. This is the good_size(min_cap) hook
// referenced throughout spec §4 (reserve, unshare, coalesce, gather).
func GoodSize(minCapacity int) int {
	if minCapacity <= 0 {
		return Classes[0]
	}
	for _, c := range Classes {
		if minCapacity <= c {
			return c
		}
	}
	return nextPowerOfTwo(minCapacity)
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
