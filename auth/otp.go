package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPTTL bounds how long a one-time code stays usable.
const OTPTTL = 10 * time.Minute

// GenerateOTP returns a 6-digit numeric code from crypto/rand.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the platform RNG is broken; nothing
		// sensible to fall back to.
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// OTPMatches checks code equality and expiry together so callers cannot
// forget one half of the check.
func OTPMatches(stored, supplied string, expires time.Time) bool {
	return stored != "" && stored == supplied && time.Now().Before(expires)
}
