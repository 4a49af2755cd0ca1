package credential

import (
	"bytes"

	"github.com/sirupsen/logrus"
)

const redactedPlaceholder = "[REDACTED]"

// RedactingFormatter wraps a logrus.Formatter and strips the guarded secret
// from every log line. Installed on the global logger as soon as a credential
// is held, so no log sink can ever receive the token.
type RedactingFormatter struct {
	Inner logrus.Formatter
	guard *Guard
}

// NewRedactingFormatter creates a formatter that redacts the guard's secret
func NewRedactingFormatter(inner logrus.Formatter, guard *Guard) *RedactingFormatter {
	if inner == nil {
		inner = &logrus.TextFormatter{}
	}
	return &RedactingFormatter{Inner: inner, guard: guard}
}

// Format implements logrus.Formatter
func (f *RedactingFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	out, err := f.Inner.Format(entry)
	if err != nil {
		return nil, err
	}

	secret, tokenErr := f.guard.Token()
	if tokenErr != nil || secret == "" {
		return out, nil
	}

	return bytes.ReplaceAll(out, []byte(secret), []byte(redactedPlaceholder)), nil
}
