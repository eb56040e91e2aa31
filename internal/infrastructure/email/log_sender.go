// Package email delivers confirmation codes to users. The only shipped
// implementation writes the code to the structured log, which is what
// development and CI environments run with; a real mail transport slots in
// behind the same interface.
package email

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender emits confirmation codes to the log instead of sending mail.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

// Send logs the code for the given recipient.
func (s *LogSender) Send(ctx context.Context, email, username, code string) error {
	s.log.Info().
		Str("email", email).
		Str("username", username).
		Str("code", code).
		Msg("confirmation code issued")
	return nil
}
