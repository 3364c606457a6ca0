// Package responses writes the service's JSON envelopes. Success bodies are
// {"data": ...}; errors are {"error": {code, message, details?}} with the
// status resolved from the error's code.
package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/chexseeds/chexseeds-backend/pkg/errors"
	"github.com/chexseeds/chexseeds-backend/pkg/logger"
	"github.com/chexseeds/chexseeds-backend/pkg/types"
)

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.SuccessEnvelope{Data: data})
}

// WriteError renders err through its code's metadata and logs the full
// chain. Non-coded errors are treated as internal.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	coded := pkgerrors.As(err)
	if coded == nil {
		coded = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(coded.Code())

	body := types.ErrorEnvelope{Error: types.APIError{
		Code:    string(coded.Code()),
		Message: publicMessage(coded, meta),
	}}
	if meta.DetailsAllowed {
		details := coded.Details()
		if details == nil {
			if cause := coded.Unwrap(); cause != nil {
				details = map[string]string{"cause": cause.Error()}
			}
		}
		body.Error.Details = details
	}

	logError(ctx, logg, err)
	writeJSON(w, meta.HTTPStatus, body)
}

// publicMessage lets client-addressable failures keep their specific text;
// everything else falls back to the code's generic message so internals
// never leak.
func publicMessage(coded *pkgerrors.Error, meta pkgerrors.Metadata) string {
	switch coded.Code() {
	case pkgerrors.CodeValidation, pkgerrors.CodeNotFound, pkgerrors.CodeConflict:
		if msg := coded.Message(); msg != "" {
			return msg
		}
	}
	return meta.PublicMessage
}

func logError(ctx context.Context, logg *logger.Logger, err error) {
	if logg == nil {
		return
	}
	dump := pkgerrors.Dump(err)
	ctx = logg.WithFields(ctx, map[string]any{
		"error":         dump.TopMessage,
		"error_code":    dump.Code,
		"error_chain":   dump.Chain,
		"pg_code":       dump.PGCode,
		"pg_detail":     dump.PGDetail,
		"pg_message":    dump.PGMessage,
		"pg_table":      dump.PGTable,
		"pg_column":     dump.PGColumn,
		"pg_constraint": dump.PGConstraint,
	})
	logg.Error(ctx, "request.error", err)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
