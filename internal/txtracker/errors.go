package txtracker

import (
	"errors"
	"fmt"
)

var (
	// ErrNilHandle is reported as a rejection when an action succeeds without a handle.
	ErrNilHandle = errors.New("action returned no transaction handle")

	// ErrMissingHash is reported as a rejection when the returned handle has an empty hash.
	ErrMissingHash = errors.New("transaction handle has no hash")
)

// providerMessager is implemented by errors that carry a message supplied by
// the wallet or node in addition to their generic message.
type providerMessager interface {
	ProviderMessage() (string, bool)
}

// ProviderError is a wallet/provider failure with an optional nested
// message, the shape EIP-1193 providers use ({code, message, data: {message}}).
type ProviderError struct {
	Code        int
	Message     string
	DataMessage string // Empty when the provider did not attach data.message
}

// Error implements error.
func (e *ProviderError) Error() string {
	if e.Code == 0 {
		return e.Message
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// ProviderMessage returns the nested data message when present.
func (e *ProviderError) ProviderMessage() (string, bool) {
	return e.DataMessage, e.DataMessage != ""
}

// warningMessage picks the text shown for a rejected submission: the first
// provider-supplied message found in the error chain, else the error text.
func warningMessage(err error) string {
	var pm providerMessager
	if errors.As(err, &pm) {
		if msg, ok := pm.ProviderMessage(); ok {
			return msg
		}
	}

	var pe *ProviderError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}

	return err.Error()
}
