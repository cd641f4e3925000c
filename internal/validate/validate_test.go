package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimit(t *testing.T) {
	cases := map[string]int{
		"":     20,
		"abc":  20,
		"0":    20,
		"-3":   20,
		"1":    1,
		" 7 ":  7,
		"100":  100,
		"5000": 100,
		"2.5":  20,
		"1e3":  20,
	}
	for in, want := range cases {
		assert.Equal(t, want, Limit(in, 20, 100), "input %q", in)
	}
	assert.Equal(t, 5000, Limit("5000", 20, 0), "no max")
}

func TestSlug(t *testing.T) {
	s, ok := Slug(" galaxy-s25-ultra ")
	assert.True(t, ok)
	assert.Equal(t, "galaxy-s25-ultra", s)

	for _, bad := range []string{"", "../etc", "Galaxy", "a b", "<script>"} {
		_, ok := Slug(bad)
		assert.False(t, ok, bad)
	}
}

func TestPostcode(t *testing.T) {
	assert.Equal(t, "3000", Postcode(" 3000 "))
	assert.Equal(t, "SW1A 1AA", Postcode("SW1A 1AA"))
	assert.Equal(t, "3000, VIC", Postcode("3000, VIC "))
	assert.Equal(t, "12345678901", Postcode("12345678901"))
	assert.Equal(t, strings.Repeat("9", 32), Postcode(strings.Repeat("9", 40)))
}

func TestMessage(t *testing.T) {
	m, ok := Message("  hi  ")
	assert.True(t, ok)
	assert.Equal(t, "hi", m)

	_, ok = Message(" \t\n")
	assert.False(t, ok)
}
