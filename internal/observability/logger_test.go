package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLoggerFromZap(zap.New(core)), logs
}

func TestWithFields(t *testing.T) {
	ctx := WithFields(context.Background(), Field{"campaign_id", "c1"})
	ctx = WithFields(ctx, Field{"ad_id", "a1"}, Field{"campaign_id", "c2"})

	fields := FieldsFromContext(ctx)
	require.Len(t, fields, 3)
	assert.Equal(t, "a1", fields[1].Value)

	logger, logs := newObservedLogger()
	logger.Info(ctx, "publish started", Field{"attempt", 1})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0].ContextMap()
	assert.Equal(t, "c2", entry["campaign_id"])
	assert.Equal(t, "a1", entry["ad_id"])
	assert.EqualValues(t, 1, entry["attempt"])
}

func TestWithFields_DoesNotMutateParent(t *testing.T) {
	parent := WithFields(context.Background(), Field{"a", 1})
	_ = WithFields(parent, Field{"b", 2})

	assert.Len(t, FieldsFromContext(parent), 1)
}

func TestLoggerError(t *testing.T) {
	logger, logs := newObservedLogger()
	ctx := WithFields(context.Background(), Field{"ad_id", "a1"})

	logger.Error(ctx, "failed to publish ad", errors.New("boom"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "boom", entry.ContextMap()["error"])
	assert.Equal(t, "a1", entry.ContextMap()["ad_id"])
}

func TestGetRealClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		viewerAddr string
		remoteAddr string
		want       string
	}{
		{
			name:       "CloudFront IPv4 with port",
			viewerAddr: "203.0.113.7:46532",
			remoteAddr: "10.0.0.1:1234",
			want:       "203.0.113.7",
		},
		{
			name:       "CloudFront IPv6 with port",
			viewerAddr: "2001:db8::1:46532",
			remoteAddr: "10.0.0.1:1234",
			want:       "2001:db8::1",
		},
		{
			name:       "falls back to remote address",
			remoteAddr: "192.0.2.10:1234",
			want:       "192.0.2.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remoteAddr
			if tt.viewerAddr != "" {
				c.Request.Header.Set("CloudFront-Viewer-Address", tt.viewerAddr)
			}

			assert.Equal(t, tt.want, GetRealClientIP(c))
		})
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("generates request id and adds route params", func(t *testing.T) {
		logger, logs := newObservedLogger()
		r := gin.New()
		r.Use(Middleware(logger))

		var seen []Field
		r.GET("/campaigns/:campaign_id/ads/:ad_id", func(c *gin.Context) {
			seen = FieldsFromContext(c.Request.Context())
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/campaigns/c1/ads/a1", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("X-Request-ID"), "req-")

		keys := map[string]interface{}{}
		for _, f := range seen {
			keys[f.Key] = f.Value
		}
		assert.Equal(t, "c1", keys["campaign_id"])
		assert.Equal(t, "a1", keys["ad_id"])

		require.Equal(t, 1, logs.FilterMessage("Metrics").Len())
		metrics := logs.FilterMessage("Metrics").All()[0].ContextMap()
		assert.EqualValues(t, http.StatusOK, metrics["status"])
	})

	t.Run("keeps caller request id", func(t *testing.T) {
		logger, _ := newObservedLogger()
		r := gin.New()
		r.Use(Middleware(logger))
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
	})

	t.Run("recovers from panic", func(t *testing.T) {
		logger, logs := newObservedLogger()
		r := gin.New()
		r.Use(Middleware(logger))
		r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, 1, logs.FilterMessage("Recovered from panic").Len())
	})

	t.Run("skips metrics for health", func(t *testing.T) {
		logger, logs := newObservedLogger()
		r := gin.New()
		r.Use(Middleware(logger))
		r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, 0, logs.FilterMessage("Metrics").Len())
	})
}
