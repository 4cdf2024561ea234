// Provides middleware for standardizing HTTP handlers.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/sekolahkita/sipinjam/internal/server/dto"
	"github.com/sekolahkita/sipinjam/internal/storage"
)

// Wrap adapts a typed handler func into an http.Handler: it decodes
// the JSON body into In, fills `path`-tagged fields from the route
// pattern, runs validation, then encodes the output or the mapped
// error envelope.
func Wrap[In any, PtrIn interface {
	*In
	dto.Validatable
}, Out any](fn func(context.Context, PtrIn) (Out, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		input := new(In)
		if !readAndDecodeBody(ctx, w, r, input) {
			return
		}
		populatePathParams(r, input)

		if err := PtrIn(input).Validate(); err != nil {
			writeError(ctx, w, err)
			return
		}

		output, err := fn(ctx, PtrIn(input))
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(output); err != nil {
			slog.ErrorContext(ctx, "Failed to encode response", "err", err)
		}
	})
}

// readAndDecodeBody reads the request body and decodes JSON into input.
// Returns false if an error occurred and was written to the response.
func readAndDecodeBody[In any](ctx context.Context, w http.ResponseWriter, r *http.Request, input *In) bool {
	body, err := io.ReadAll(r.Body)
	if err2 := r.Body.Close(); err == nil {
		err = err2
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read request body", "err", err)
		writeError(ctx, w, dto.BadRequest("failed to read request body"))
		return false
	}
	if len(body) > 0 {
		d := json.NewDecoder(bytes.NewReader(body))
		d.DisallowUnknownFields()
		if err := d.Decode(input); err != nil {
			slog.ErrorContext(ctx, "Failed to decode request body", "err", err)
			writeError(ctx, w, dto.BadRequest("invalid request body"))
			return false
		}
	}
	return true
}

// populatePathParams fills string fields tagged `path:"name"` from the
// request's route parameters.
func populatePathParams(r *http.Request, input any) {
	v := reflect.ValueOf(input).Elem()
	t := v.Type()
	if t.Kind() != reflect.Struct {
		return
	}
	for i := range t.NumField() {
		name := t.Field(i).Tag.Get("path")
		if name == "" {
			continue
		}
		if value := r.PathValue(name); value != "" && v.Field(i).Kind() == reflect.String {
			v.Field(i).SetString(value)
		}
	}
}

// writeError maps an error to the JSON error envelope. Storage's typed
// errors get their canonical status codes; anything unrecognized is a
// 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	apiErr := mapError(err)
	if apiErr.StatusCode() >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "Handler error", "err", err, "statusCode", apiErr.StatusCode())
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetails{
			Code:    apiErr.Code(),
			Message: apiErr.Error(),
		},
	}
	if d := apiErr.Details(); len(d) > 0 {
		resp.Details = d
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode())
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		slog.ErrorContext(ctx, "Failed to encode error response", "err", err)
	}
}

func mapError(err error) dto.ErrorWithStatus {
	var ews dto.ErrorWithStatus
	if errors.As(err, &ews) {
		return ews
	}
	var dup *storage.DuplicateError
	if errors.As(err, &dup) {
		return dto.Duplicate(dup.Field, dup.Value)
	}
	var nf *storage.NotFoundError
	if errors.As(err, &nf) {
		return dto.NotFound(nf.Resource).WithDetail("id", nf.ID)
	}
	var conflict *storage.ConflictError
	if errors.As(err, &conflict) {
		return dto.Conflict(conflict.Reason)
	}
	return dto.Internal("internal error").Wrap(err)
}
