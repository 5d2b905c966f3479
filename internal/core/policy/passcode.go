package policy

import "crypto/subtle"

// DefaultPasscode is the shared secret used when none is configured.
const DefaultPasscode = "ENTER_THE_HEX"

// PasscodeGate is a static shared-secret check. It is NOT an authorization
// mechanism: anyone holding the string can elevate any account, and attempts
// are not rate limited.
type PasscodeGate struct {
	secret []byte
}

// NewPasscodeGate returns a gate for secret, or for DefaultPasscode when
// secret is empty.
func NewPasscodeGate(secret string) *PasscodeGate {
	if secret == "" {
		secret = DefaultPasscode
	}
	return &PasscodeGate{secret: []byte(secret)}
}

// Check reports whether passcode equals the secret exactly (case-sensitive,
// no trimming).
func (g *PasscodeGate) Check(passcode string) bool {
	return subtle.ConstantTimeCompare([]byte(passcode), g.secret) == 1
}
