package errors

import (
	"errors"

	"go.uber.org/zap"
)

// ErrorHandler classifies errors and logs them with structured fields
type ErrorHandler struct {
	logger *zap.Logger
	debug  bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger, debug bool) *ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorHandler{
		logger: logger,
		debug:  debug,
	}
}

// Handle logs err at a level matching its class and returns it unchanged.
// Expected outcomes (validation, not found, precondition) are logged at warn;
// anything else at error.
func (h *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}

	fields := append([]zap.Field{zap.String("operation", operation)}, Fields(err)...)
	if h.debug {
		if appErr := GetAppError(err); appErr != nil && appErr.StackTrace != "" {
			fields = append(fields, zap.String("stack", appErr.StackTrace))
		}
	}

	switch {
	case IsValidation(err), IsNotFound(err), IsPrecondition(err), IsConflict(err):
		h.logger.Warn("Operation rejected", fields...)
	default:
		h.logger.Error("Operation failed", fields...)
	}
	return err
}

// Fields extracts structured log fields from an error chain
func Fields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		fields = append(fields,
			zap.String("error_type", string(domainErr.Type)),
			zap.String("error_code", domainErr.Code),
		)
		if field := domainErr.Field(); field != "" {
			fields = append(fields, zap.String("field", field))
		}
		return fields
	}

	if appErr := GetAppError(err); appErr != nil {
		fields = append(fields, zap.String("error_type", string(appErr.Type)))
	}
	return fields
}
