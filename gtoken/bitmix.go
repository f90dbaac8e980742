package gtoken

const mask32 = 0xFFFFFFFF

// RShift is an unsigned (zero-fill) right shift of value taken modulo 2^32.
func RShift(value int64, n uint) int64 {
	return int64(uint32(value)) >> n
}

// Mix applies a shift/add/xor pattern to value. The pattern is read in
// groups of three symbols: the combining operator, the shift direction and
// the shift amount (a digit, or a lowercase letter meaning codepoint-87).
func Mix(value int64, pattern string) int64 {
	for c := 0; c+2 < len(pattern); c += 3 {
		shift := pattern[c+2]
		var n uint
		if shift >= 'a' {
			n = uint(shift) - 87
		} else {
			n = uint(shift - '0')
		}

		var d int64
		if pattern[c+1] == '+' {
			d = RShift(value, n)
		} else {
			d = value << n
		}

		if pattern[c] == '+' {
			value = (value + d) & mask32
		} else {
			value ^= d
		}
	}
	return value
}
