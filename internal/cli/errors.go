package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/pinely/internal/domain"
)

// userMessage strips sentinel prefixes so the user sees the explanation
// rather than "invalid input: ...".
func userMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrInvalidInput, domain.ErrInvalidTransition} {
		if errors.Is(err, sentinel) {
			msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
		}
	}
	return msg
}
