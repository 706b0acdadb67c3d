package api

import "github.com/pageza/recipebox/backend/internal/service"

// Messages shown on the register and login forms
const (
	msgMissingCredentials = "Username and password are required."
	msgUsernameTaken      = "Username already exists."
	msgInvalidCredentials = "Invalid username or password."
)

// formError maps expected service failures to the message re-rendered on
// the form. Anything else is a server error.
func formError(err error) (string, bool) {
	switch {
	case service.IsValidation(err):
		return msgMissingCredentials, true
	case service.IsConflict(err):
		return msgUsernameTaken, true
	case service.IsAuth(err):
		return msgInvalidCredentials, true
	default:
		return "", false
	}
}
