package app

import (
	"errors"

	"github.com/Makepad-fr/wegive/internal/catalog"
	"github.com/Makepad-fr/wegive/internal/geocode"
	"github.com/Makepad-fr/wegive/internal/nav"
	"github.com/Makepad-fr/wegive/internal/report"
)

// Notice is a message for the user. Blocking notices must be dismissed.
type Notice struct {
	Text     string
	Blocking bool
	Failure  bool
}

func info(text string) *Notice { return &Notice{Text: text} }

// NoticeFor maps an error to what the user is told. The second result is
// false for errors that are not the user's to fix.
func NoticeFor(err error) (*Notice, bool) {
	switch {
	case err == nil:
		return nil, true
	case errors.Is(err, geocode.ErrGeocodingFailed):
		return &Notice{Text: "Could not find the address. Please check and try again.", Blocking: true, Failure: true}, true
	case errors.Is(err, report.ErrEmptyReport):
		return &Notice{Text: "No data to report.", Blocking: true, Failure: true}, true
	case errors.Is(err, catalog.ErrInvalidDraft):
		return &Notice{Text: "Please fill in the item description and pickup address.", Blocking: true, Failure: true}, true
	case errors.Is(err, catalog.ErrItemNotFound):
		return &Notice{Text: "That donation no longer exists.", Failure: true}, true
	case errors.Is(err, catalog.ErrInvalidTransition):
		return &Notice{Text: "Only claimed donations can be marked as collected.", Failure: true}, true
	case errors.Is(err, nav.ErrUnknownSection):
		return &Notice{Text: "Unknown section.", Failure: true}, true
	}
	return &Notice{Text: "Something went wrong: " + err.Error(), Blocking: true, Failure: true}, false
}

// IsUserFailure reports whether err is an expected, user-facing failure.
func IsUserFailure(err error) bool {
	_, ok := NoticeFor(err)
	return err != nil && ok
}
