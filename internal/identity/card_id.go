// Package identity addresses a single platform rendering through interfaces
// that only carry one id string.
package identity

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/maheshrc27/contentflow/internal/models"
)

const separator = "__"

var ErrInvalidCardID = errors.New("invalid card id")

// CardID can only be built through New or Parse.
type CardID struct {
	entryID  string
	platform models.Platform
}

func New(entryID string, platform models.Platform) (CardID, error) {
	if !isUUID(entryID) || !platform.Valid() {
		return CardID{}, ErrInvalidCardID
	}
	return CardID{entryID: entryID, platform: platform}, nil
}

// Parse splits on the first separator.
func Parse(s string) (CardID, error) {
	entryID, platform, found := strings.Cut(s, separator)
	if !found {
		return CardID{}, ErrInvalidCardID
	}
	return New(entryID, models.Platform(platform))
}

func (c CardID) EntryID() string { return c.entryID }

func (c CardID) Platform() models.Platform { return c.platform }

func (c CardID) IsZero() bool { return c.entryID == "" }

func (c CardID) String() string {
	if c.IsZero() {
		return ""
	}
	return c.entryID + separator + string(c.platform)
}

// isUUID accepts only the canonical 8-4-4-4-12 form.
func isUUID(s string) bool {
	if len(s) != 36 || strings.Count(s, "-") != 4 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
