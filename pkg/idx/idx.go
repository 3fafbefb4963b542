// Package idx generates request identifiers. They are ULIDs, so they sort
// by creation time and can be grepped across service logs in order.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrInvalid reports a malformed request id.
var ErrInvalid = errors.New("idx: invalid request id")

// maxInboundLen caps ids accepted from callers.
const maxInboundLen = 64

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a fresh id stamped with the current UTC time.
func New() string {
	return NewAt(time.Now().UTC())
}

// NewAt returns an id stamped with t.
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Time extracts the timestamp of an id produced by New. Foreign ids give
// the zero time.
func Time(id string) time.Time {
	u, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}

// FromHeader returns the caller supplied request id when it is usable,
// otherwise a new one. Callers may use any opaque token up to 64 printable
// ASCII characters.
func FromHeader(v string) string {
	if err := Validate(v); err != nil {
		return New()
	}
	return strings.TrimSpace(v)
}

// Validate checks a caller supplied id.
func Validate(v string) error {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > maxInboundLen {
		return ErrInvalid
	}
	for i := 0; i < len(v); i++ {
		if c := v[i]; c < 0x21 || c > 0x7e {
			return ErrInvalid
		}
	}
	return nil
}
