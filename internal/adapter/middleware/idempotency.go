package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// HeaderIdempotencyKey identifies a mutating request across retries.
	HeaderIdempotencyKey = "X-Idempotency-Key"

	// How long the in-progress lock is held before a crashed handler
	// releases the key for retry.
	provisionalLockTTL = 60 * time.Second

	redisOpTimeout = 2 * time.Second
)

type idempRecord struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	BodySHA256 string    `json:"body_sha256"`
	CreatedAt  time.Time `json:"created_at"`
}

type responseRecorder struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// Idempotency makes POST requests safe to retry. A first request under a
// given X-Idempotency-Key takes a provisional lock, runs the handler, and
// stores the final response for ttl. Retries with the same key and body
// replay the stored response; the same key with a different body is a 409.
// Requests without the header pass through untouched.
func Idempotency(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodPost {
				return next(c)
			}
			key := strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey))
			if key == "" {
				return next(c)
			}
			if !validKey(key) {
				return c.JSON(http.StatusBadRequest, map[string]string{
					"error": "invalid " + HeaderIdempotencyKey,
				})
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			bhash := bodyHash(body)

			storeKey := buildKey(req.Method, c.Path(), key)
			ctx, cancel := context.WithTimeout(req.Context(), redisOpTimeout)
			defer cancel()

			ok, err := provisionalSet(ctx, rdb, storeKey, idempRecord{
				InProgress: true,
				BodySHA256: bhash,
				CreatedAt:  time.Now().UTC(),
			})
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"error": "idempotency store unavailable",
				})
			}
			if !ok {
				cur, err := loadRecord(ctx, rdb, storeKey)
				if err != nil {
					log.Warn().Err(err).Str("key", storeKey).Msg("idempotency record load failed")
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return c.JSON(http.StatusConflict, map[string]string{
						"error": HeaderIdempotencyKey + " reused with different body",
					})
				}
				if !cur.InProgress && cur.Code != 0 {
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return c.JSON(http.StatusConflict, map[string]string{
					"error": "request is already in progress",
				})
			}

			rec := &responseRecorder{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			final := idempRecord{
				Code:       rec.code,
				Body:       rec.buf.Bytes(),
				BodySHA256: bhash,
				CreatedAt:  time.Now().UTC(),
			}
			if err := saveFinal(context.Background(), rdb, storeKey, final, ttl); err != nil {
				log.Warn().Err(err).Str("key", storeKey).Msg("idempotency record save failed")
			}
			return nil
		}
	}
}
