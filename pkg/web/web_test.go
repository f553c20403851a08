package web

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func Test_ParseID(t *testing.T) {
	testCases := []struct {
		name         string
		pathValue    string
		expectedID   int64
		expectedOK   bool
		expectedCode int
		expectedBody string
	}{
		{name: "valid", pathValue: "42", expectedID: 42, expectedOK: true, expectedCode: http.StatusOK},
		{name: "not a number", pathValue: "abc", expectedCode: http.StatusBadRequest, expectedBody: `{"error":"Invalid ID: abc"}`},
		{name: "empty", pathValue: "", expectedCode: http.StatusBadRequest, expectedBody: `{"error":"Invalid ID: "}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.SetPathValue("id", tc.pathValue)
			rr := httptest.NewRecorder()

			// when
			id, ok := ParseID(rr, req, discardLogger())

			// then
			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedID, id)
			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func Test_OptionalID(t *testing.T) {
	testCases := []struct {
		name      string
		pathValue string
		expected  *int64
	}{
		{name: "present", pathValue: "7", expected: ptr(int64(7))},
		{name: "absent", pathValue: "", expected: nil},
		{name: "malformed", pathValue: "x7", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.SetPathValue("id", tc.pathValue)
			assert.Equal(t, tc.expected, OptionalID(req))
		})
	}
}

func Test_RespondJSON_NilPayload(t *testing.T) {
	rr := httptest.NewRecorder()

	RespondJSON(rr, discardLogger(), http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Empty(t, rr.Header().Get("Content-Type"))
}

func Test_RequestIDInjector(t *testing.T) {
	testCases := []struct {
		name     string
		incoming string
	}{
		{name: "reuses incoming header", incoming: "abc-123"},
		{name: "generates new id", incoming: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var seen string
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = middleware.GetReqID(r.Context())
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.incoming != "" {
				req.Header.Set(RequestIDHeader, tc.incoming)
			}
			rr := httptest.NewRecorder()

			// when
			RequestIDInjector(next).ServeHTTP(rr, req)

			// then
			require.NotEmpty(t, seen)
			if tc.incoming != "" {
				assert.Equal(t, tc.incoming, seen)
			}
			assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
		})
	}
}

func Test_Recoverer(t *testing.T) {
	// given
	panicking := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("boom")
	})
	rr := httptest.NewRecorder()

	// when
	Recoverer(discardLogger())(panicking).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	// then
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func Test_StructuredLogger(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "success", status: http.StatusOK, wantLevel: "INFO"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "WARN"},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			r := chi.NewRouter()
			r.Use(StructuredLogger(logger))
			r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			})
			rr := httptest.NewRecorder()

			// when
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/items/7", nil))

			// then
			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tc.wantLevel, entry["level"])
			assert.Equal(t, "/items/{id}", entry["route"])
			assert.Equal(t, "/items/7", entry["path"])
			assert.EqualValues(t, tc.status, entry["status"])
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
