package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/chess-ratings/internal/platform/resilience"
	"github.com/riskibarqy/chess-ratings/internal/platform/rowspan"
	"github.com/riskibarqy/chess-ratings/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "chess-ratings"
	// retryAfterSeconds matches the default FIDE breaker open timeout.
	retryAfterSeconds = "30"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	// Hide replaces the error text with a generic message so internals
	// never reach the client.
	Hide bool
	// RetryAfter, in seconds, is sent as a Retry-After header when set.
	RetryAfter string
}

var internalError = mappedError{
	HTTPStatus: http.StatusInternalServerError,
	Reason:     "internalError",
	Status:     "INTERNAL",
	Hide:       true,
}

// errorRules is matched in order. Specific sentinels sit above the
// generic ones they wrap: a miss for a known resource reports its own
// reason, and a rejected FIDE call is reported as an open breaker
// rather than a generic data source failure.
var errorRules = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrInvalidInput, mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}},
	{usecase.ErrTournamentNotFound, mappedError{HTTPStatus: http.StatusNotFound, Reason: "tournamentNotFound", Status: "NOT_FOUND"}},
	{usecase.ErrPlayerNotFound, mappedError{HTTPStatus: http.StatusNotFound, Reason: "playerNotFound", Status: "NOT_FOUND"}},
	{usecase.ErrNotFound, mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}},
	{usecase.ErrUnauthorized, mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}},
	{resilience.ErrCircuitOpen, mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "fideCircuitOpen", Status: "UNAVAILABLE", RetryAfter: retryAfterSeconds}},
	{usecase.ErrDependencyUnavailable, mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}},
	{usecase.ErrDataSource, mappedError{HTTPStatus: http.StatusBadGateway, Reason: "dataSourceError", Status: "BAD_GATEWAY"}},
	{rowspan.ErrPrecondition, mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "rowSpanPrecondition", Status: "INTERNAL", Hide: true}},
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	writeMappedError(ctx, w, mapError(ctx, err), err.Error())
}

// writeInternalError answers for failures that never produced an error
// value, such as a recovered panic.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeMappedError(ctx, w, internalError, "")
}

func writeMappedError(ctx context.Context, w http.ResponseWriter, mapped mappedError, msg string) {
	if mapped.RetryAfter != "" {
		w.Header().Set("Retry-After", mapped.RetryAfter)
	}
	if mapped.Hide || msg == "" {
		msg = "internal server error"
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: msg,
			Status:  mapped.Status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: msg}},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, rule := range errorRules {
		// Marks added with crerr.Mark are only visible to crerr.Is.
		if errors.Is(err, rule.target) || crerr.Is(err, rule.target) {
			return rule.mapped
		}
	}
	return internalError
}
