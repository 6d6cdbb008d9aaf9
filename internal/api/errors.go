package api

import (
	"strings"

	"github.com/Veraticus/veggie-board/internal/common"
)

// Fallback messages used when the server rejects a request without saying why.
const (
	MsgLoginFailed  = "Invalid email or password."
	MsgSignupFailed = "Error creating account. Please try again."
	MsgSaveFailed   = "Error saving entry."
	MsgBulkFailed   = "Error updating prices."
	MsgDeleteFailed = "Error deleting item."
)

// MsgBulkUpdated is shown when the server confirms a bulk update without a message.
const MsgBulkUpdated = "Prices updated successfully."

// Error is a request the server answered with success=false.
type Error struct {
	Endpoint string
	Message  string
	Details  []string
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap classifies the rejection so callers can use errors.Is.
func (e *Error) Unwrap() error {
	if strings.Contains(e.Message, "already registered") {
		return common.ErrAccountExists
	}
	return common.ErrAPIRejected
}

func rejected(endpoint, message, fallback string) *Error {
	if strings.TrimSpace(message) == "" {
		message = fallback
	}
	return &Error{Endpoint: endpoint, Message: message}
}
