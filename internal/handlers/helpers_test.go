package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"bankledger/internal/config"
	"bankledger/internal/services"

	"github.com/labstack/echo/v4"
)

func testImportConfig() *config.ImportConfig {
	return &config.ImportConfig{
		TransferMatchWindowDays: 3,
		BalanceEpsilonCents:     1,
		MaxUploadBytes:          1 << 20,
	}
}

func quietImportLogger() services.ImportLoggerInterface {
	return services.NewImportLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// stubMetrics keeps handler tests away from the global Prometheus registry,
// which only accepts each collector once per process.
type stubMetrics struct{}

func (stubMetrics) IncrementCounter(name string, tags map[string]string)           {}
func (stubMetrics) RecordProcessingTime(name string, duration time.Duration)       {}
func (stubMetrics) RecordGauge(name string, value float64, tags map[string]string) {}

// newUploadRequest builds a multipart POST carrying a statement file and an
// optional forced format, the way the import endpoints expect uploads.
func newUploadRequest(target, content, format string) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, _ := writer.CreateFormFile("file", "statement.qif")
	part.Write([]byte(content))
	if format != "" {
		writer.WriteField("format", format)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}
