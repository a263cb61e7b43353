package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
)

// AccessLog writes one combined-log-format line per request to the logger.
// The writer is shared: mux applies middleware per request.
func AccessLog(log *logrus.Logger) func(http.Handler) http.Handler {
	writer := log.WriterLevel(logrus.InfoLevel)
	return func(next http.Handler) http.Handler {
		return handlers.CombinedLoggingHandler(writer, next)
	}
}

// Recover turns handler panics into 500 responses and logs the stack.
func Recover(log *logrus.Logger) func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(log),
		handlers.PrintRecoveryStack(true),
	)
}
