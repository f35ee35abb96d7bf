package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	cases := map[string]int64{
		"":        0,
		"42":      42,
		" 1500 ":  1500,
		"abc":     0,
		"-3":      0,
		"1.5":     0,
		"9000000": 9000000,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseCount(in), "input %q", in)
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "s3cret", BearerToken("Bearer s3cret"))
	assert.Equal(t, "s3cret", BearerToken("bearer s3cret"))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken(""))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 10, ClampLimit(0, 10, 100))
	assert.Equal(t, 10, ClampLimit(-1, 10, 100))
	assert.Equal(t, 25, ClampLimit(25, 10, 100))
	assert.Equal(t, 100, ClampLimit(500, 10, 100))
}
