package util

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// IDGenerator produces unique identifiers
type IDGenerator interface {
	NewID() (string, error)
}

// UUIDGenerator generates random (v4) UUIDs
type UUIDGenerator struct{}

// NewID implements IDGenerator
func (UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ULIDGenerator generates ULIDs. IDs generated within the same millisecond
// stay lexicographically increasing, so the transaction log sorts by id.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewULIDGenerator creates a ULIDGenerator seeded from crypto/rand
func NewULIDGenerator() *ULIDGenerator {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
		now:     time.Now,
	}
}

// NewID implements IDGenerator
func (g *ULIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
