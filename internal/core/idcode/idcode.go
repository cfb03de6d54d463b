// Package idcode derives campaign IDs from criteria and decodes them back.
//
// An ID looks like GOO-CON-20261014093000-1a2b3c4d: platform code, objective
// code, UTC creation time and an 8 character hex suffix. The encoder holds no
// state; uniqueness against earlier IDs is enforced by the store, and callers
// retry with a higher salt when an insert collides.
package idcode

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"campaign-ids/internal/core/domain"
)

// TimestampLayout is the layout of the third ID segment.
const TimestampLayout = "20060102150405"

const suffixLen = 8

// ErrMalformedID is returned by Decode for strings that are not campaign IDs.
var ErrMalformedID = errors.New("malformed campaign id")

// Suffix selects how the last ID segment is produced.
type Suffix string

const (
	// SuffixHash derives the suffix from the normalized criteria and the salt.
	// The creation time is not hashed; it is already the third segment.
	SuffixHash Suffix = "hash"
	// SuffixRandom takes the suffix from a random UUID.
	SuffixRandom Suffix = "random"
)

// ParseSuffix validates a configured suffix strategy. Empty means hash.
func ParseSuffix(s string) (Suffix, error) {
	switch Suffix(strings.ToLower(s)) {
	case "", SuffixHash:
		return SuffixHash, nil
	case SuffixRandom:
		return SuffixRandom, nil
	}
	return "", fmt.Errorf("unknown id suffix strategy %q", s)
}

// Encoder turns criteria into IDs.
type Encoder struct {
	suffix Suffix
}

// NewEncoder returns an encoder using the given suffix strategy.
func NewEncoder(suffix Suffix) Encoder {
	if suffix == "" {
		suffix = SuffixHash
	}
	return Encoder{suffix: suffix}
}

// Encode builds the ID for already normalized criteria c created at at. A
// salt above zero is mixed into the hash so a colliding ID can be
// regenerated; the random strategy ignores it.
func (e Encoder) Encode(c domain.Criteria, at time.Time, salt int) string {
	var sfx string
	switch e.suffix {
	case SuffixRandom:
		u := uuid.New()
		sfx = hex.EncodeToString(u[:])[:suffixLen]
	default:
		sfx = Digest(c, salt)
	}
	return strings.Join([]string{
		platformCode(c.Platform),
		objectiveCode(c.Objective),
		at.UTC().Format(TimestampLayout),
		sfx,
	}, "-")
}

// Encode uses the default hash strategy.
func Encode(c domain.Criteria, at time.Time, salt int) string {
	return Encoder{suffix: SuffixHash}.Encode(c, at, salt)
}

// Digest returns the 8 hex character hash of the canonical JSON form of c.
func Digest(c domain.Criteria, salt int) string {
	// Struct fields marshal in declaration order and map keys are sorted, so
	// the encoding is stable for normalized criteria.
	b, _ := json.Marshal(c)
	if salt > 0 {
		b = fmt.Appendf(b, "#%d", salt)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:suffixLen]
}

// Parts are the human readable pieces of an ID.
type Parts struct {
	Platform  domain.Platform  `json:"platform"`
	Objective domain.Objective `json:"campaign_objective"`
	CreatedAt time.Time        `json:"creation_date"`
	Suffix    string           `json:"suffix"`
}

// Decode splits id into its parts.
func Decode(id string) (Parts, error) {
	segs := strings.Split(id, "-")
	if len(segs) != 4 {
		return Parts{}, fmt.Errorf("%w: expected 4 segments, got %d", ErrMalformedID, len(segs))
	}
	platform, ok := domain.PlatformByCode(segs[0])
	if !ok {
		return Parts{}, fmt.Errorf("%w: unknown platform code %q", ErrMalformedID, segs[0])
	}
	objective, ok := domain.ObjectiveByCode(segs[1])
	if !ok {
		return Parts{}, fmt.Errorf("%w: unknown objective code %q", ErrMalformedID, segs[1])
	}
	at, err := time.ParseInLocation(TimestampLayout, segs[2], time.UTC)
	if err != nil {
		return Parts{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedID, segs[2])
	}
	if !isHex(segs[3]) {
		return Parts{}, fmt.Errorf("%w: bad suffix %q", ErrMalformedID, segs[3])
	}
	return Parts{Platform: platform, Objective: objective, CreatedAt: at, Suffix: segs[3]}, nil
}

func platformCode(p domain.Platform) string {
	if p == "" {
		return domain.PlatformOther.Code()
	}
	return p.Code()
}

func objectiveCode(o domain.Objective) string {
	if o == "" {
		return "GEN"
	}
	return o.Code()
}

func isHex(s string) bool {
	if len(s) != suffixLen {
		return false
	}
	for _, r := range s {
		if !('0' <= r && r <= '9' || 'a' <= r && r <= 'f') {
			return false
		}
	}
	return true
}
