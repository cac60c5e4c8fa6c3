// Package vault implements the privacy gate for private bookmarks: a PIN
// record persisted locally and an unlock state that never survives a
// restart. This is a local gate, not a security boundary.
package vault

const minPINLength = 6

// Gate holds the session unlock state. The zero value is locked, which is
// also the state after every fresh load.
type Gate struct {
	unlocked bool
	pin      string
}

// NewGate creates a locked Gate with the persisted PIN record (empty when
// no PIN has been set up).
func NewGate(pin string) *Gate {
	return &Gate{pin: pin}
}

// NeedsSetup reports whether first-run PIN setup is required: no PIN
// stored, or a record shorter than the current minimum (migration from the
// old 4-digit format).
func (g *Gate) NeedsSetup() bool {
	return len(g.pin) < minPINLength
}

// SetPIN installs a new PIN record. Returns false if the candidate does
// not meet the minimum length; the old record is kept.
func (g *Gate) SetPIN(pin string) bool {
	if len(pin) < minPINLength {
		return false
	}
	g.pin = pin
	return true
}

// PIN returns the stored record for persistence.
func (g *Gate) PIN() string {
	return g.pin
}

// Unlock transitions to unlocked when the attempt matches the stored
// record. A gate without a valid record never unlocks.
func (g *Gate) Unlock(attempt string) bool {
	if g.NeedsSetup() || attempt != g.pin {
		return false
	}
	g.unlocked = true
	return true
}

// Lock re-locks the vault.
func (g *Gate) Lock() {
	g.unlocked = false
}

// Unlocked reports the current session state.
func (g *Gate) Unlocked() bool {
	return g.unlocked
}
