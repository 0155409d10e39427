package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTPFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		otp := GenerateOTP()
		assert.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9', "otp %q contains non-digit", otp)
		}
	}
}

func TestOTPMatches(t *testing.T) {
	future := time.Now().Add(5 * time.Minute)
	past := time.Now().Add(-time.Minute)

	assert.True(t, OTPMatches("123456", "123456", future))
	assert.False(t, OTPMatches("123456", "123457", future), "wrong code")
	assert.False(t, OTPMatches("123456", "123456", past), "expired code")
	assert.False(t, OTPMatches("", "123456", future), "cleared code is single-use")
	assert.False(t, OTPMatches("", "", future), "empty supplied against cleared")
}
