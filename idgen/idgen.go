// Package idgen generates node identifiers. The storage schema reserves a
// 25-character cuid-shaped string for ID columns; the exact generation
// scheme is pluggable, and the default follows the cuid layout: a constant
// prefix, a millisecond timestamp, a process counter, a host fingerprint
// and random entropy, all base36.
package idgen

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Length is the identifier length every Generator must produce.
const Length = 25

// Generator produces 25-character identifiers matching the cuid shape:
// a lowercase 'c' followed by 24 base36 characters.
type Generator interface {
	Generate() string
}

// blockLen is the size of the counter and fingerprint blocks.
const blockLen = 4

type cuid struct {
	mu          sync.Mutex
	counter     int64
	fingerprint string
	now         func() time.Time
}

// New returns the default cuid generator. The host fingerprint is derived
// from a random UUID once per generator, so two processes building ids at
// the same millisecond still diverge.
func New() Generator {
	return &cuid{
		fingerprint: fingerprint(uuid.NewString()),
		now:         time.Now,
	}
}

// Generate returns a fresh identifier. It is safe for concurrent use.
func (c *cuid) Generate() string {
	c.mu.Lock()
	count := c.counter
	c.counter++
	c.mu.Unlock()

	buf := make([]byte, 0, Length)
	buf = append(buf, 'c')
	buf = appendBase36(buf, c.now().UnixMilli(), 8)
	buf = appendBase36(buf, count%pow36(blockLen), blockLen)
	buf = append(buf, c.fingerprint...)
	buf = append(buf, randomBlock(8)...)
	return string(buf)
}

// fingerprint folds an arbitrary seed into a 4-character base36 block.
func fingerprint(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	n := int64(sum[0])<<24 | int64(sum[1])<<16 | int64(sum[2])<<8 | int64(sum[3])
	return string(appendBase36(nil, n%pow36(blockLen), blockLen))
}

// appendBase36 renders n in base36, zero-padded or truncated to width
// characters, least significant characters kept.
func appendBase36(buf []byte, n int64, width int) []byte {
	s := strconv.FormatInt(n, 36)
	if len(s) > width {
		s = s[len(s)-width:]
	}
	for i := len(s); i < width; i++ {
		buf = append(buf, '0')
	}
	return append(buf, s...)
}

func randomBlock(width int) []byte {
	max := big.NewInt(pow36(width))
	buf := make([]byte, 0, width)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand only fails when the platform source is broken;
		// fall back to the clock rather than emitting short ids.
		n = big.NewInt(time.Now().UnixNano())
	}
	return appendBase36(buf, n.Int64()%pow36(width), width)
}

func pow36(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 36
	}
	return p
}
