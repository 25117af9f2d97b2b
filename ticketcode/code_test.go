package ticketcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wemender/ticketcode"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		code, err := ticketcode.Generate()
		require.NoError(t, err)

		assert.Len(t, code, 8)
		assert.Regexp(t, `^[0-9A-F]{8}$`, code)
		assert.True(t, ticketcode.Valid(code))

		seen[code] = struct{}{}
	}

	// 1000 draws from 2^32 collide with probability ~1e-4.
	assert.GreaterOrEqual(t, len(seen), 999)
}

func TestValid(t *testing.T) {
	testCases := []struct {
		code  string
		valid bool
	}{
		{"0A1B2C3D", true},
		{"FFFFFFFF", true},
		{"0a1b2c3d", false},
		{"0A1B2C3", false},
		{"0A1B2C3D4", false},
		{"0A1B2C3G", false},
		{"", false},
		{"0A1B2C3D/..", false},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.valid, ticketcode.Valid(tc.code))
		})
	}
}
