package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"filedrop/internal/service"
	serviceMocks "filedrop/internal/service/mocks"
	"filedrop/internal/validate"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fiberApp() *fiber.App {
	return fiber.New()
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiberApp()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiberApp()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := fiberApp()
	app.Post("/api/upload", UploadFile(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Issue", mock.Anything, []byte("ciphertext"), "application/pdf", "my report.pdf").
			Return(&service.IssueResult{
				Token:       "fixedtoken12",
				DownloadURL: "http://localhost:8080/download/fixedtoken12",
			}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("ciphertext"))
		req.Header.Set("X-Mime", "application/pdf")
		req.Header.Set("X-Filename", "my%20report.pdf")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.IssueResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "fixedtoken12", result.Token)
		assert.Contains(t, result.DownloadURL, "/download/fixedtoken12")
		mockSvc.AssertExpectations(t)
	})

	t.Run("each validation failure maps to its own code", func(t *testing.T) {
		cases := []struct {
			err  error
			code string
		}{
			{validate.ErrEmptyPayload, "EMPTY_PAYLOAD"},
			{validate.ErrPayloadTooBig, "PAYLOAD_TOO_LARGE"},
			{validate.ErrMimeNotAllowed, "MIME_NOT_ALLOWED"},
			{validate.ErrNameRequired, "FILENAME_REQUIRED"},
			{validate.ErrNameIllegal, "FILENAME_ILLEGAL"},
			{validate.ErrExtNotAllowed, "EXTENSION_NOT_ALLOWED"},
		}
		for _, tc := range cases {
			mockSvc.On("Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tc.err).Once()

			req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("x"))
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body errorPayload
			json.NewDecoder(resp.Body).Decode(&body)
			assert.Equal(t, tc.code, body.Error.Code)
		}
		mockSvc.AssertExpectations(t)
	})

	t.Run("undecodable filename header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("x"))
		req.Header.Set("X-Filename", "bad%zz.pdf")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "FILENAME_ILLEGAL", body.Error.Code)
	})

	t.Run("service error does not leak internals", func(t *testing.T) {
		mockSvc.On("Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("minio exploded at 10.0.0.5")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("x"))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.NotContains(t, body.Error.Message, "10.0.0.5")
		mockSvc.AssertExpectations(t)
	})
}

func TestFileMetadata(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := fiberApp()
	app.Get("/api/meta/:token", FileMetadata(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Metadata", mock.Anything, "fixedtoken12").
			Return(&service.Metadata{OriginalName: "report.pdf", Mime: "application/pdf"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/meta/fixedtoken12", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var meta service.Metadata
		json.NewDecoder(resp.Body).Decode(&meta)
		assert.Equal(t, "report.pdf", meta.OriginalName)
		assert.Equal(t, "application/pdf", meta.Mime)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Metadata", mock.Anything, "missing").
			Return(nil, service.ErrTokenNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/meta/missing", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "TOKEN_NOT_FOUND", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDownloadFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := fiberApp()
	app.Get("/download/:token", DownloadFile(mockSvc))

	t.Run("redirects to the locator", func(t *testing.T) {
		mockSvc.On("Redeem", mock.Anything, "fixedtoken12").
			Return("http://minio/signed", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/download/fixedtoken12", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "http://minio/signed", resp.Header.Get("Location"))
		mockSvc.AssertExpectations(t)
	})

	t.Run("redeem failures stay distinguishable", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{service.ErrTokenNotFound, http.StatusNotFound, "TOKEN_NOT_FOUND"},
			{service.ErrTokenUsed, http.StatusGone, "TOKEN_USED"},
			{service.ErrTokenExpired, http.StatusGone, "TOKEN_EXPIRED"},
			{errors.New("presign fail"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		}
		for _, tc := range cases {
			mockSvc.On("Redeem", mock.Anything, "fixedtoken12").
				Return("", tc.err).Once()

			req := httptest.NewRequest(http.MethodGet, "/download/fixedtoken12", nil)
			resp, _ := app.Test(req)

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Empty(t, resp.Header.Get("Location"))
			var body errorPayload
			json.NewDecoder(resp.Body).Decode(&body)
			assert.Equal(t, tc.code, body.Error.Code)
		}
		mockSvc.AssertExpectations(t)
	})
}
