package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryCode(t *testing.T) {
	code, ok := CountryCode("India")
	assert.True(t, ok)
	assert.Equal(t, "IN", code)

	code, ok = CountryCode("  united kingdom  ")
	assert.True(t, ok)
	assert.Equal(t, "GB", code)

	_, ok = CountryCode("Atlantis")
	assert.False(t, ok)
}

func TestIsCountryCode(t *testing.T) {
	assert.True(t, IsCountryCode("IN"))
	assert.True(t, IsCountryCode("in"))
	assert.True(t, IsCountryCode(" sg "))
	assert.False(t, IsCountryCode("XX"))
	assert.False(t, IsCountryCode("India"))
}

func TestCanonicalizeEntityName(t *testing.T) {
	assert.Equal(t,
		CanonicalizeEntityName("Parent Company (India)"),
		CanonicalizeEntityName("Parent Company (IN)"),
	)
	assert.Equal(t,
		CanonicalizeEntityName("Subsidiary (Singapore)"),
		CanonicalizeEntityName("subsidiary (SG)"),
	)
	assert.NotEqual(t,
		CanonicalizeEntityName("Parent Company (IN)"),
		CanonicalizeEntityName("Subsidiary (IN)"),
	)

	// Names without a parenthesized country just lowercase.
	assert.Equal(t, "parent company", CanonicalizeEntityName(" Parent Company "))
}

func TestEntityDisplayName(t *testing.T) {
	assert.Equal(t, "Parent Company (IN)", EntityDisplayName("Parent Company", "India"))
	assert.Equal(t, "Subsidiary (SG)", EntityDisplayName("Subsidiary", "sg"))
	assert.Equal(t, "International Operation (Atlantis)", EntityDisplayName("International Operation", "Atlantis"))
}
