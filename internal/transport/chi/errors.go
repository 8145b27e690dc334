package chi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/advsearch/internal/domain"
	"github.com/kailas-cloud/advsearch/internal/logger"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		badParamHandler,
		sentinelHandler(domain.ErrOutOfRange, http.StatusBadRequest, ErrorCodeOutOfRange),
		sentinelHandler(domain.ErrUnknownField, http.StatusNotFound, ErrorCodeUnknownField),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
	}
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	for _, s := range []error{domain.ErrOutOfRange, domain.ErrUnknownField, domain.ErrNotFound} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// badParamHandler answers unparsable request parameters with 400.
func badParamHandler(w http.ResponseWriter, err error, _ string) bool {
	var bp *badParamError
	if !errors.As(err, &bp) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, bp.Error())
	return true
}

// handleDomainError maps err to a response. Unmatched errors, ErrLogic
// included, are logged at error level and answered with 500.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err), zap.Bool("logic", errors.Is(err, domain.ErrLogic)))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternal, msg)
}
