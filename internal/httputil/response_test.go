package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSONSetsContentTypeHeader(t *testing.T) {
	recorder := httptest.NewRecorder()

	WriteJSON(recorder, http.StatusOK, map[string]string{"key": "value"})

	contentType := recorder.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}
}

func TestWriteJSONSetsStatusCode(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"OK", http.StatusOK},
		{"Created", http.StatusCreated},
		{"BadRequest", http.StatusBadRequest},
		{"InternalServerError", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			WriteJSON(recorder, tt.statusCode, map[string]string{"key": "value"})

			if recorder.Code != tt.statusCode {
				t.Errorf("expected status %d, got %d", tt.statusCode, recorder.Code)
			}
		})
	}
}

func TestWriteJSONEncodesBody(t *testing.T) {
	recorder := httptest.NewRecorder()
	payload := map[string]string{"name": "chromamind", "type": "booth"}

	WriteJSON(recorder, http.StatusOK, payload)

	var decoded map[string]string
	err := json.NewDecoder(recorder.Body).Decode(&decoded)
	if err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if decoded["name"] != "chromamind" {
		t.Errorf("expected name=chromamind, got %s", decoded["name"])
	}
	if decoded["type"] != "booth" {
		t.Errorf("expected type=booth, got %s", decoded["type"])
	}
}

func TestWriteErrorProducesCorrectJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	WriteError(recorder, http.StatusBadRequest, "invalid input")

	var decoded ErrorBody
	err := json.NewDecoder(recorder.Body).Decode(&decoded)
	if err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if decoded.Error != "invalid input" {
		t.Errorf("expected error=invalid input, got %s", decoded.Error)
	}
}

func TestWriteErrorSetsStatusCode(t *testing.T) {
	recorder := httptest.NewRecorder()

	WriteError(recorder, http.StatusForbidden, "forbidden")

	if recorder.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, recorder.Code)
	}
}

func TestWriteErrorSetsContentType(t *testing.T) {
	recorder := httptest.NewRecorder()

	WriteError(recorder, http.StatusInternalServerError, "something broke")

	contentType := recorder.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}
}

func TestWriteErrorWithVariousMessages(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		message    string
	}{
		{"NotFound", http.StatusNotFound, "resource not found"},
		{"Unauthorized", http.StatusUnauthorized, "authentication required"},
		{"Conflict", http.StatusConflict, "duplicate entry"},
		{"InternalError", http.StatusInternalServerError, "unexpected server error"},
		{"EmptyMessage", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			WriteError(recorder, tt.statusCode, tt.message)

			if recorder.Code != tt.statusCode {
				t.Errorf("expected status %d, got %d", tt.statusCode, recorder.Code)
			}

			var decoded ErrorBody
			err := json.NewDecoder(recorder.Body).Decode(&decoded)
			if err != nil {
				t.Fatalf("failed to decode response body: %v", err)
			}
			if decoded.Error != tt.message {
				t.Errorf("expected error=%q, got %q", tt.message, decoded.Error)
			}
		})
	}
}

func TestDecodeJSONReadsBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(`{"name":"Ada","email":"ada@example.com"}`))

	var got struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := DecodeJSON(req, 1024, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ada" || got.Email != "ada@example.com" {
		t.Errorf("unexpected decode result: %+v", got)
	}
}

func TestDecodeJSONRejectsOversizedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(`{"name":"`+strings.Repeat("a", 64)+`"}`))

	var got map[string]string
	err := DecodeJSON(req, 16, &got)
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Errorf("expected ErrBodyTooLarge, got %v", err)
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(`{"a":"b"} {"c":"d"}`))

	var got map[string]string
	if err := DecodeJSON(req, 1024, &got); err == nil {
		t.Error("expected error for trailing data")
	}
}

func TestIsJSON(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"Application/JSON", true},
		{"application/x-www-form-urlencoded", false},
		{"", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Content-Type", tt.contentType)
		if got := IsJSON(req); got != tt.want {
			t.Errorf("IsJSON(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}
