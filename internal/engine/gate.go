package engine

import "os"

// DefaultPIN matches the seeded tracker; override with CHOREBOARD_PIN.
const DefaultPIN = "1234"

// Gate is the stateless PIN check in front of point edits. It is a
// deterrent against casual edits by the child, not security: a fixed
// low-entropy shared secret, no hashing, no lockout. Each gated action
// verifies again — success grants exactly one edit, never a session.
type Gate struct {
	pin string
}

func NewGate(pin string) Gate {
	if pin == "" {
		pin = DefaultPIN
	}
	return Gate{pin: pin}
}

// GateFromEnv builds the gate from CHOREBOARD_PIN, falling back to the
// default PIN.
func GateFromEnv() Gate {
	return NewGate(os.Getenv("CHOREBOARD_PIN"))
}

// Verify checks a candidate PIN. Failure is recoverable: nothing changes
// and the caller may retry indefinitely.
func (g Gate) Verify(candidate string) error {
	if candidate != g.pin {
		return AccessError{}
	}
	return nil
}

// AccessError is returned for a wrong PIN; its message is shown to the user
// as-is.
type AccessError struct{}

func (AccessError) Error() string {
	return "incorrect PIN"
}
