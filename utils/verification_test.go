package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateVerificationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateVerificationCode()
		assert.Len(t, code, 6)
		for _, ch := range code {
			assert.True(t, ch >= '0' && ch <= '9', "code %q contains non digit", code)
		}
		seen[code] = true
	}
	// 100 draws from a million values colliding down to a handful would
	// mean the generator is broken.
	assert.Greater(t, len(seen), 90)
}
