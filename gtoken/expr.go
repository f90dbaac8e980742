package gtoken

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Op is one of the binary operators the landing page uses to obfuscate the
// secret value.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpPow
	OpXor
)

// String returns the operator symbol.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpPow:
		return "**"
	case OpXor:
		return "^"
	default:
		return "?"
	}
}

// ParseOp maps an operator symbol to an Op. Unknown symbols map to OpAdd.
func ParseOp(sym string) Op {
	switch sym {
	case "-":
		return OpSub
	case "*":
		return OpMul
	case "**":
		return OpPow
	case "^":
		return OpXor
	default:
		return OpAdd
	}
}

// Apply evaluates a <op> b with integer semantics. A negative exponent
// truncates to zero.
func (o Op) Apply(a, b int64) int64 {
	switch o {
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpPow:
		if b < 0 {
			return 0
		}
		r := int64(1)
		for ; b > 0; b >>= 1 {
			if b&1 == 1 {
				r *= a
			}
			a *= a
		}
		return r
	case OpXor:
		return a ^ b
	default:
		return a + b
	}
}

var (
	reTKK       = regexp.MustCompile(`(?s)tkk:'(.+?)'`)
	reDotted    = regexp.MustCompile(`^-?\d+\.-?\d+$`)
	reAssign    = regexp.MustCompile(`\b([ab])\s*=\s*(-?)\s*(\d+)`)
	reOperator  = regexp.MustCompile(`\ba\s*(\*\*|[-+*^])\s*b\b`)
	reIntLit    = regexp.MustCompile(`\b\d+\b`)
	reReturnKey = regexp.MustCompile(`\breturn\b`)
)

// ExtractTKK returns the first single-quoted literal following "tkk:" in a
// landing page.
func ExtractTKK(page string) (string, bool) {
	m := reTKK.FindStringSubmatch(page)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// EvalTKK turns a captured tkk literal into a Secret. A plain "n.value"
// pair is adopted as is. Anything else is treated as the obfuscated
// snippet: the integer constants assigned to a and b, the operator that
// combines them and the first integer after "return" are extracted by
// scanning the text. Nothing is executed.
func EvalTKK(expr string) (Secret, error) {
	expr = strings.TrimSpace(expr)
	if reDotted.MatchString(expr) {
		return ParseSecret(expr)
	}

	code := unescapeJS(strings.ReplaceAll(expr, "var ", ""))

	keys := map[string]int64{"a": 0, "b": 0}
	for _, m := range reAssign.FindAllStringSubmatch(code, -1) {
		v, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			return Secret{}, fmt.Errorf("%w: constant %s=%s: %v", ErrNoTKK, m[1], m[3], err)
		}
		if m[2] == "-" {
			v = -v
		}
		keys[m[1]] = v
	}

	loc := reReturnKey.FindStringIndex(code)
	if loc == nil {
		return Secret{}, fmt.Errorf("%w: no return in %q", ErrNoTKK, truncate(code, 80))
	}
	tail := code[loc[1]:]

	var n int64
	if lit := reIntLit.FindString(tail); lit != "" {
		n, _ = strconv.ParseInt(lit, 10, 64)
	}

	op := OpAdd
	if n > 0 {
		if m := reOperator.FindStringSubmatch(tail); m != nil {
			op = ParseOp(m[1])
		}
	}

	return Secret{Epoch: n, Value: op.Apply(keys["a"], keys["b"])}, nil
}

// unescapeJS decodes the \xHH and \uHHHH escapes the page uses to hide '='
// and quote characters, plus the common single-character escapes.
func unescapeJS(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		next := s[i+1]
		switch next {
		case 'x', 'u':
			width := 2
			if next == 'u' {
				width = 4
			}
			if i+2+width <= len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+2+width], 16, 32); err == nil {
					b.WriteRune(rune(v))
					i += 1 + width
					continue
				}
			}
			b.WriteByte(c)
		case 'n':
			b.WriteByte('\n')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case '\\', '\'', '"':
			b.WriteByte(next)
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
