package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	for in, want := range map[string]string{"20": "20", "20.00": "20", "20,50": "20.5", " 7,5 ": "7.5", "0,01": "0.01", "20.500": "20.5"} {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}
	for _, in := range []string{"0", "-5", "abc", "", "0,00", "0,004", "20,555"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail(" a.b@mail.example.org "))
	for _, in := range []string{"user@example", "user.com", "@example.com", "a b@x.com"} {
		assert.False(t, IsValidEmail(in), in)
	}
}

func TestNormalizeGiftCode(t *testing.T) {
	assert.Equal(t, "ABC-123", NormalizeGiftCode("  abc-123  "))
}

func TestParseReferral(t *testing.T) {
	ref := ParseReferral("ref_55", 42)
	require.NotNil(t, ref)
	assert.Equal(t, int64(55), *ref)

	assert.Nil(t, ParseReferral("ref_42", 42))
	assert.Nil(t, ParseReferral("ref_abc", 42))
	assert.Nil(t, ParseReferral("promo", 42))
	assert.Equal(t, "ref_42", ReferralPayload(42))
}
