package gtoken

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// hourMillis is the lifetime of a secret.
const hourMillis = 3_600_000

// Secret is the rotating per-host seed (the "tkk") combined with request
// text to derive a token. Epoch doubles as the hour bucket the secret was
// minted in and as the base value of the token arithmetic.
type Secret struct {
	Epoch int64
	Value int64
}

// String returns the wire form "{Epoch}.{Value}". The zero secret is "0".
func (s Secret) String() string {
	if s == (Secret{}) {
		return "0"
	}
	return strconv.FormatInt(s.Epoch, 10) + "." + strconv.FormatInt(s.Value, 10)
}

// IsZero reports whether no secret has been acquired yet.
func (s Secret) IsZero() bool {
	return s == (Secret{})
}

// ParseSecret parses the dotted "n.value" form.
func ParseSecret(s string) (Secret, error) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return Secret{}, nil
	}
	head, tail, ok := strings.Cut(s, ".")
	if !ok {
		return Secret{}, fmt.Errorf("%w: %q has no '.'", ErrBadSecret, s)
	}
	epoch, err := strconv.ParseInt(head, 10, 64)
	if err != nil {
		return Secret{}, fmt.Errorf("%w: epoch %q: %v", ErrBadSecret, head, err)
	}
	value, err := strconv.ParseInt(tail, 10, 64)
	if err != nil {
		return Secret{}, fmt.Errorf("%w: value %q: %v", ErrBadSecret, tail, err)
	}
	return Secret{Epoch: epoch, Value: value}, nil
}

// HourBucket returns floor(unix millis / 3600000) for t.
func HourBucket(t time.Time) int64 {
	ms := t.UnixMilli()
	b := ms / hourMillis
	if ms < 0 && ms%hourMillis != 0 {
		b--
	}
	return b
}
