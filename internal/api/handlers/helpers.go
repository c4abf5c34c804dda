package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"nyc-route-optimizer/internal/domain"
	"nyc-route-optimizer/internal/platform/obs"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// domainStatus maps the error taxonomy onto an HTTP status and a caller-safe
// message. Only messages built by input validation are echoed.
func domainStatus(err error) (int, string) {
	var ve *domain.ValidationError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Msg
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "the request was rejected as invalid"
	case errors.Is(err, domain.ErrOutsideServiceArea):
		return http.StatusUnprocessableEntity, "address is outside the NYC service area"
	case errors.Is(err, domain.ErrAddressNotFound):
		return http.StatusUnprocessableEntity, "address could not be found"
	case errors.Is(err, domain.ErrNoRoutesAvailable):
		return http.StatusNotFound, "no routes found between the specified locations"
	case errors.Is(err, domain.ErrProviderQuota):
		return http.StatusServiceUnavailable, "upstream quota exceeded, try again later"
	case errors.Is(err, domain.ErrProviderDenied):
		return http.StatusBadGateway, "upstream provider rejected the request"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream timed out"
	}
	return http.StatusInternalServerError, "internal server error"
}

func logDomainError(r *http.Request, op string, status int, err error) {
	switch {
	case status >= http.StatusInternalServerError:
		zap.L().Error(op+" failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
	case status == http.StatusBadRequest:
		zap.L().Debug(op+" rejected", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
	}
}

func writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := domainStatus(err)
	logDomainError(r, op, status, err)
	writeError(w, r, status, msg)
}
