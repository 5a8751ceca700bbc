package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeySet_CandidateFallback(t *testing.T) {
	k := NewKeySet()
	assert.Equal(t, "BL-777", k.Claim([]string{"BL-777", "CT-100", "INV-55"}, "CT-100", "SHP"))
	assert.Equal(t, "CT-101", k.Claim([]string{"", "CT-101", "INV-56"}, "CT-101", "SHP"))
	assert.Equal(t, "INV-57", k.Claim([]string{"", "", "INV-57"}, "", "SHP"))
}

func TestKeySet_GeneratedKeys(t *testing.T) {
	k := NewKeySet()
	assert.Equal(t, "SHP-001", k.Claim(nil, "", "SHP"))
	assert.Equal(t, "SHP-002", k.Claim([]string{"", " "}, "", "SHP"))
}

func TestKeySet_CollisionChain(t *testing.T) {
	k := NewKeySet()
	assert.Equal(t, "BL-1", k.Claim([]string{"BL-1"}, "CT-9", "SHP"))
	// Same raw key: contract number breaks the tie.
	assert.Equal(t, "BL-1-CT-9", k.Claim([]string{"BL-1"}, "CT-9", "SHP"))
	// Same again: numeric suffix on the contract-qualified key.
	assert.Equal(t, "BL-1-CT-9-2", k.Claim([]string{"BL-1"}, "CT-9", "SHP"))
	// No contract number to lean on: numeric suffix on the raw key.
	assert.Equal(t, "BL-1-2", k.Claim([]string{"BL-1"}, "", "SHP"))
}

func TestKeySet_AllDistinct(t *testing.T) {
	k := NewKeySet()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		key := k.Claim([]string{"DUP"}, "CT-1", "SHP")
		assert.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}
}
