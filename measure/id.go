package measure

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/teris-io/shortid"
)

// NewID generates a short random identifier, falling back to 16 hex characters
// when the shortid generator fails.
func NewID() string {
	if id, err := shortid.Generate(); err == nil {
		return id
	}
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "error-id"
	}
	return hex.EncodeToString(b)
}
