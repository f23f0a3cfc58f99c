package value

import "github.com/arloliu/keyframe/format"

// Wrapping modular arithmetic on primitive bit patterns, used by the numeric
// delta compression codec. All integer widths wrap (two's-complement modular
// behavior) so results are identical on every host.

func widthMask(p format.PrimitiveType) uint64 {
	return ^uint64(0) >> (64 - 8*p.Size())
}

// SubBits returns currBits − prevBits reduced modulo 2^width of p.
func SubBits(p format.PrimitiveType, prevBits, currBits uint64) uint64 {
	return (currBits - prevBits) & widthMask(p)
}

// AddBits returns prevBits + deltaBits reduced modulo 2^width of p.
func AddBits(p format.PrimitiveType, prevBits, deltaBits uint64) uint64 {
	return (prevBits + deltaBits) & widthMask(p)
}

// Extend widens a bit pattern of p's width to int64: sign extension for
// signed primitives, zero extension otherwise.
func Extend(p format.PrimitiveType, bits uint64) int64 {
	bits &= widthMask(p)
	if !p.IsSigned() {
		return int64(bits)
	}

	shift := 64 - 8*p.Size()

	return int64(bits<<shift) >> shift
}
