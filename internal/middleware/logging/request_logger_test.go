package loggingmw

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/cartshop/internal/logging"
)

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestRequestLoggerLogsSuccess(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter(&buf, "info")))
	e.GET("/cart", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside")
		return c.JSON(http.StatusOK, []int{})
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, buf.String(), `"msg":"inside"`)

	entry := lastEntry(t, &buf)
	require.Equal(t, "INFO", entry["level"])
	require.Equal(t, "request completed", entry["msg"])
	require.Equal(t, "/cart", entry["path"])
	require.Equal(t, "rid-1", entry["request_id"])
	require.EqualValues(t, 200, entry["status"])
}

func TestRequestLoggerRendersHandlerErrors(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter(&buf, "info")))
	e.GET("/products/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/9", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"Product not found"}`, rec.Body.String())

	entry := lastEntry(t, &buf)
	require.Equal(t, "WARN", entry["level"])
	require.EqualValues(t, 404, entry["status"])
}
