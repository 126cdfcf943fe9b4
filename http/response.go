package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"mortgage-risk/logger"
)

const maxBodyBytes = 64 << 10

var ErrUnsupportedMediaType = errors.New("content type must be application/json")

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// decodeJSON enforces the content type and body limit, then decodes into v.
// Unknown fields are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return ErrUnsupportedMediaType
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.Decode(&struct{}{}) != io.EOF {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written response.
func writeJSON(w http.ResponseWriter, log logger.Logger, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.WithError(err).Error("error encoding response", nil)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).Warn("error writing response", nil)
	}
}

func writeError(w http.ResponseWriter, log logger.Logger, status int, msg string, fields []FieldError) {
	writeJSON(w, log, status, errorResponse{Error: msg, Fields: fields})
}

func writeDecodeError(w http.ResponseWriter, log logger.Logger, err error) {
	if errors.Is(err, ErrUnsupportedMediaType) {
		writeError(w, log, http.StatusUnsupportedMediaType, err.Error(), nil)
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, log, http.StatusRequestEntityTooLarge, "request body too large", nil)
		return
	}

	log.Debug("rejected request body", map[string]interface{}{"error": err.Error()})
	writeError(w, log, http.StatusBadRequest, "invalid request body", nil)
}
