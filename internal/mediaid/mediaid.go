package mediaid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// ID is the 96-bit identifier baked into every blob name, rendered as 24
// lowercase hex digits. It is distinct from the descriptor row id: the row id
// is assigned by the database, the media ID is minted before any row exists.
type ID string

var idRe = regexp.MustCompile(`^[0-9a-f]{24}$`)

// New mints a random media ID.
func New() ID {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("mediaid: rand.Read: %v", err))
	}
	return ID(hex.EncodeToString(b[:]))
}

func (id ID) String() string { return string(id) }

// IsValid reports whether id is 24 lowercase hex digits.
func (id ID) IsValid() bool {
	return idRe.MatchString(string(id))
}

// Parse validates a raw string as a media ID.
func Parse(s string) (ID, error) {
	id := ID(s)
	if !id.IsValid() {
		return "", fmt.Errorf("mediaid: %q is not a valid media ID", s)
	}
	return id, nil
}
