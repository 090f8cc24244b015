// Package ordernumber generates human-readable, collision-resistant order
// identifiers of the form ORD-20260831-4R7N2K9QME: a creation-day component
// for sortability plus 50 bits of random entropy. Uniqueness is still
// enforced by the orders table constraint; callers retry on collision.
package ordernumber

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	prefix    = "ORD"
	suffixLen = 10
)

// Crockford base32, the ULID alphabet: no I, L, O, U.
const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// Generator stamps order numbers. The zero value is not usable; call New.
type Generator struct {
	entropy io.Reader
}

// New returns a Generator backed by crypto/rand.
func New() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewWithEntropy returns a Generator reading suffix bytes from r. Tests use
// this to pin the suffix.
func NewWithEntropy(r io.Reader) *Generator {
	return &Generator{entropy: r}
}

// Next produces a fresh order number for the given creation time.
func (g *Generator) Next(t time.Time) (string, error) {
	buf := make([]byte, suffixLen)
	if _, err := io.ReadFull(g.entropy, buf); err != nil {
		return "", fmt.Errorf("failed to read entropy: %w", err)
	}

	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}

	return fmt.Sprintf("%s-%s-%s", prefix, t.UTC().Format("20060102"), buf), nil
}

// NextULID produces a ULID for callers that need a sortable opaque id, such
// as notification event ids carried alongside the order number.
func (g *Generator) NextULID(t time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(t), g.entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate ulid: %w", err)
	}

	return id.String(), nil
}
