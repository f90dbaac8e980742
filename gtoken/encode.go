package gtoken

// CodeUnits converts text to UTF-16 code units, splitting scalars outside the
// Basic Multilingual Plane into surrogate pairs.
func CodeUnits(text string) []uint16 {
	units := make([]uint16, 0, len(text))
	for _, r := range text {
		v := int(r)
		if v < 0x10000 {
			units = append(units, uint16(v))
			continue
		}
		v -= 0x10000
		units = append(units, uint16(v/0x400+0xD800), uint16(v%0x400+0xDC00))
	}
	return units
}

// LegacyUTF8 re-encodes code units into UTF-8 bytes the way the web client
// does it: surrogate pairs are recombined into 4-byte sequences and a lone
// surrogate is emitted with the 3-byte rule.
func LegacyUTF8(units []uint16) []byte {
	out := make([]byte, 0, len(units)*3)
	for g := 0; g < len(units); g++ {
		l := int(units[g])
		switch {
		case l < 128:
			out = append(out, byte(l))
		case l < 2048:
			out = append(out, byte(l>>6|192), byte(l&63|128))
		case l&64512 == 55296 && g+1 < len(units) && int(units[g+1])&64512 == 56320:
			g++
			l = 65536 + ((l & 1023) << 10) + (int(units[g]) & 1023)
			out = append(out,
				byte(l>>18|240),
				byte(l>>12&63|128),
				byte(l>>6&63|128),
				byte(l&63|128),
			)
		default:
			out = append(out, byte(l>>12|224), byte(l>>6&63|128), byte(l&63|128))
		}
	}
	return out
}
