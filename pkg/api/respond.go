package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kerbaras/guya/pkg/data"
	"github.com/kerbaras/guya/pkg/services"
	"github.com/kerbaras/guya/pkg/sources"
)

type successEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// apiError is an error with a status and a stable code for clients.
type apiError struct {
	status  int
	code    string
	message string
}

func (e *apiError) Error() string { return e.message }

func badRequest(message string) error {
	return &apiError{status: http.StatusBadRequest, code: "bad_request", message: message}
}

func notFound(code, message string) error {
	return &apiError{status: http.StatusNotFound, code: code, message: message}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func ok(w http.ResponseWriter, payload any) {
	writeJSON(w, http.StatusOK, successEnvelope{Data: payload})
}

// fail maps err onto a status code. Unknown errors are logged and hidden.
func fail(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	var ae *apiError
	var fe *sources.FetchError
	switch {
	case errors.As(err, &ae):
	case errors.Is(err, services.ErrBookNotFound):
		ae = &apiError{status: http.StatusNotFound, code: "book_not_found", message: err.Error()}
	case errors.Is(err, sources.ErrRequestInFlight):
		ae = &apiError{status: http.StatusServiceUnavailable, code: "catalogue_busy", message: "catalogue is being fetched, try again shortly"}
	case errors.As(err, &fe):
		ae = &apiError{status: http.StatusBadGateway, code: "upstream_" + codeFor(fe.Kind), message: err.Error()}
	case errors.Is(err, data.ErrInvalidCatalog):
		ae = &apiError{status: http.StatusBadGateway, code: "invalid_catalogue", message: err.Error()}
	default:
		log.Errorw("unhandled error", "error", err)
		ae = &apiError{status: http.StatusInternalServerError, code: "internal", message: "internal error"}
	}
	writeJSON(w, ae.status, errorEnvelope{Error: ae.message, Code: ae.code})
}

func codeFor(k sources.Kind) string {
	switch k {
	case sources.KindTransport:
		return "transport"
	case sources.KindNotHTTP:
		return "not_http"
	case sources.KindStatus:
		return "status"
	case sources.KindMalformed:
		return "malformed"
	}
	return "unknown"
}
