package tui

import (
	"github.com/agrostack/fieldsync/models"
)

// NavigateTo switches the RootModel to another page, optionally delivering a
// payload message to the target page.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginResult finishes the login/register flow. Registration signs the device
// in too, so both screens emit it.
type LoginResult struct {
	Err     error
	Session models.Session
}
