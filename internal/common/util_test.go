package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	for _, n := range []int{0, 1, 16, 32} {
		t.Run(fmt.Sprintf("size=%d", n), func(t *testing.T) {
			s, err := MakeRandHexString(n)
			require.NoError(t, err)
			assert.Len(t, s, n*2)

			_, err = hex.DecodeString(s)
			assert.NoError(t, err, "string is not valid hex")
		})
	}
}

func TestMakeRandHexString_Distinct(t *testing.T) {
	a, err := MakeRandHexString(32)
	require.NoError(t, err)
	b, err := MakeRandHexString(32)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGenerateRandByteArray(t *testing.T) {
	a := GenerateRandByteArray(24)
	b := GenerateRandByteArray(24)

	require.Len(t, a, 24)
	require.Len(t, b, 24)
	assert.NotEqual(t, a, b)
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, 6), buf)

	// nil is a no-op
	WipeByteArray(nil)
}

func TestSentinelsAreDistinct(t *testing.T) {
	errs := []error{ErrorNotFound, ErrorValidation, ErrDuplicateLogin, ErrAlreadyLocked}
	for i := range errs {
		for j := range errs {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(errs[i], errs[j]), "%v must not match %v", errs[i], errs[j])
		}
	}

	wrapped := fmt.Errorf("acquire: %w", ErrAlreadyLocked)
	assert.ErrorIs(t, wrapped, ErrAlreadyLocked)
}
