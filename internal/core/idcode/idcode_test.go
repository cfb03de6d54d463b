package idcode

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-ids/internal/core/domain"
)

var at = time.Date(2026, time.October, 14, 9, 30, 5, 0, time.UTC)

func criteria(p domain.Platform) domain.Criteria {
	return domain.Criteria{
		Platform:  p,
		Objective: domain.ObjectiveConversions,
		CreatedBy: "Dana",
		Targeting: domain.Targeting{Custom: map[string]string{"geo": "US"}},
	}
}

func TestEncodeFormat(t *testing.T) {
	id := Encode(criteria(domain.PlatformGoogleAds), at, 0)
	require.NotEmpty(t, id)
	assert.Regexp(t, `^GOO-CON-20261014093005-[0-9a-f]{8}$`, id)
}

func TestEncodeDistinguishesPlatforms(t *testing.T) {
	search := Encode(criteria(domain.PlatformGoogleAds), at, 0)
	social := Encode(criteria(domain.PlatformFacebook), at, 0)
	assert.NotEqual(t, search, social)
}

func TestEncodeDeterministic(t *testing.T) {
	c := criteria(domain.PlatformTikTok)
	assert.Equal(t, Encode(c, at, 0), Encode(c, at, 0))
	assert.NotEqual(t, Encode(c, at, 0), Encode(c, at, 1))
	assert.NotEqual(t, Encode(c, at, 1), Encode(c, at, 2))
}

func TestEncodeIgnoresTargetingOrder(t *testing.T) {
	a := criteria(domain.PlatformLinkedIn)
	a.Targeting.Interests = []string{"Travel", "Business"}
	b := criteria(domain.PlatformLinkedIn)
	b.Targeting.Interests = []string{"business", "Travel"}

	na, err := a.Normalize()
	require.NoError(t, err)
	nb, err := b.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Encode(na, at, 0), Encode(nb, at, 0))
}

func TestEncodeNonEmptyForAllValidCriteria(t *testing.T) {
	for _, p := range domain.Platforms {
		for _, o := range domain.Objectives {
			c := domain.Criteria{Platform: p, Objective: o, CreatedBy: "x"}
			id := Encode(c, at, 0)
			require.NotEmpty(t, id)

			parts, err := Decode(id)
			require.NoError(t, err, id)
			assert.Equal(t, p, parts.Platform)
			assert.Equal(t, o, parts.Objective)
			assert.True(t, at.Equal(parts.CreatedAt))
		}
	}
}

func TestRandomSuffix(t *testing.T) {
	enc := NewEncoder(SuffixRandom)
	c := criteria(domain.PlatformYouTube)
	a, b := enc.Encode(c, at, 0), enc.Encode(c, at, 0)
	assert.NotEqual(t, a, b)
	_, err := Decode(a)
	assert.NoError(t, err)
}

func TestDecodeRejects(t *testing.T) {
	for _, id := range []string{
		"",
		"GOO-CON-20261014093005",
		"XXX-CON-20261014093005-1a2b3c4d",
		"GOO-XXX-20261014093005-1a2b3c4d",
		"GOO-CON-2026101409300-1a2b3c4d",
		"GOO-CON-20261014093005-1A2B3C4D",
		"GOO-CON-20261014093005-1a2b3c",
	} {
		_, err := Decode(id)
		assert.True(t, errors.Is(err, ErrMalformedID), id)
	}
}

func TestParseSuffix(t *testing.T) {
	s, err := ParseSuffix("")
	require.NoError(t, err)
	assert.Equal(t, SuffixHash, s)

	s, err = ParseSuffix("RANDOM")
	require.NoError(t, err)
	assert.Equal(t, SuffixRandom, s)

	_, err = ParseSuffix("sequential")
	assert.Error(t, err)
}

func TestHashSuffixIgnoresCreationTime(t *testing.T) {
	c := criteria(domain.PlatformInstagram)
	later := at.Add(90 * time.Minute)
	a, err := Decode(Encode(c, at, 0))
	require.NoError(t, err)
	b, err := Decode(Encode(c, later, 0))
	require.NoError(t, err)
	assert.Equal(t, a.Suffix, b.Suffix)
	assert.Equal(t, Digest(c, 0), a.Suffix)
	assert.True(t, later.Equal(b.CreatedAt))
}
