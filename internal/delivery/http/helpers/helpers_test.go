package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevent/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		want     string
	}{
		{fmt.Errorf("title %w", domain.ErrRequiredField), http.StatusBadRequest, ErrCodeBadRequest},
		{domain.ErrSlugGeneration, http.StatusBadRequest, ErrCodeBadRequest},
		{fmt.Errorf("x: %w", domain.ErrInvalidDate), http.StatusBadRequest, ErrCodeBadRequest},
		{domain.ErrInvalidTime, http.StatusBadRequest, ErrCodeBadRequest},
		{domain.ErrEmptyCollection, http.StatusBadRequest, ErrCodeBadRequest},
		{domain.ErrInvalidEmail, http.StatusBadRequest, ErrCodeBadRequest},
		{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{fmt.Errorf("event id: %w", domain.ErrDanglingReference), http.StatusNotFound, ErrCodeNotFound},
		{fmt.Errorf("create event: %w", domain.ErrDuplicateSlug), http.StatusConflict, ErrCodeConflict},
		{domain.ErrUpload, http.StatusBadGateway, ErrCodeUploadFailed},
		{fmt.Errorf("%w: refused", domain.ErrConnection), http.StatusServiceUnavailable, ErrCodeUnavailable},
		{errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, code := StatusFor(tt.err)
			assert.Equal(t, tt.wantCode, status)
			assert.Equal(t, tt.want, code)
		})
	}
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestWriteServiceError_HidesInternalMessages(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)

	rr := httptest.NewRecorder()
	WriteServiceError(rr, req, logger, errors.New("pq: password authentication failed"), "Failed to list events")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	resp := decodeEnvelope(t, rr)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Failed to list events", resp.Error.Message)
	assert.Nil(t, resp.Data)

	rr = httptest.NewRecorder()
	WriteServiceError(rr, req, logger, fmt.Errorf("venue %w", domain.ErrRequiredField), "unused")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp = decodeEnvelope(t, rr)
	assert.Equal(t, "venue is required and cannot be empty", resp.Error.Message)
}

type sampleRequest struct {
	Name string `json:"name"`
}

func (s sampleRequest) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required.Error("name is required")),
	)
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantText string
	}{
		{"valid", `{"name":"x"}`, true, ""},
		{"validation failure", `{"name":""}`, false, "name is required"},
		{"unknown field", `{"name":"x","extra":1}`, false, "invalid JSON body"},
		{"malformed", `{`, false, "invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dest sampleRequest

			ok := DecodeAndValidate(rr, req, &dest)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "x", dest.Name)
				return
			}
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			resp := decodeEnvelope(t, rr)
			assert.Equal(t, ErrCodeBadRequest, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.wantText)
		})
	}
}
