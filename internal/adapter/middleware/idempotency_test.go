package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/snehaa0-0/Loan-portfolio-management/pkg/logger"
)

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func setupEcho(rdb *redis.Client, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(Idempotency(rdb, 30*time.Second, logger.Nop()))
	e.POST("/loans/:loan_number/payments", handler)
	e.GET("/loans", handler)
	return e
}

func doReq(e *echo.Echo, method, path string, body []byte, key string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const testKey = "3b1f8a2d-aaaa-bbbb-cccc-000000000001"

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	var calls int32
	e := setupEcho(rdb, func(c echo.Context) error {
		n := atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusCreated, map[string]any{"call": n})
	})
	body := []byte(`{"principal_amount":100}`)

	first := doReq(e, http.MethodPost, "/loans/LN-1/payments", body, testKey)
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d", first.Code)
	}

	second := doReq(e, http.MethodPost, "/loans/LN-1/payments", body, testKey)
	if second.Code != http.StatusCreated {
		t.Fatalf("replay status = %d", second.Code)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if !bytes.Equal(bytes.TrimSpace(first.Body.Bytes()), bytes.TrimSpace(second.Body.Bytes())) {
		t.Fatalf("replayed body differs: %s vs %s", first.Body.String(), second.Body.String())
	}
}

func TestIdempotency_SameKeyDifferentBodyConflicts(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]bool{"ok": true})
	})

	if rec := doReq(e, http.MethodPost, "/loans/LN-1/payments", []byte(`{"a":1}`), testKey); rec.Code != http.StatusCreated {
		t.Fatalf("first status = %d", rec.Code)
	}
	rec := doReq(e, http.MethodPost, "/loans/LN-1/payments", []byte(`{"a":2}`), testKey)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestIdempotency_DistinctKeysRunIndependently(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	var calls int32
	e := setupEcho(rdb, func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusCreated, map[string]bool{"ok": true})
	})
	body := []byte(`{"a":1}`)

	doReq(e, http.MethodPost, "/loans/LN-1/payments", body, "key-aaaa-0001")
	doReq(e, http.MethodPost, "/loans/LN-1/payments", body, "key-aaaa-0002")
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("handler ran %d times, want 2", calls)
	}
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	var calls int32
	e := setupEcho(rdb, func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusCreated, map[string]bool{"ok": true})
	})
	body := []byte(`{"a":1}`)

	doReq(e, http.MethodPost, "/loans/LN-1/payments", body, "")
	doReq(e, http.MethodPost, "/loans/LN-1/payments", body, "")
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("handler ran %d times, want 2", calls)
	}
}

func TestIdempotency_GETBypassed(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	var calls int32
	e := setupEcho(rdb, func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	doReq(e, http.MethodGet, "/loans", nil, testKey)
	doReq(e, http.MethodGet, "/loans", nil, testKey)
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("handler ran %d times, want 2", calls)
	}
}

func TestIdempotency_InvalidKeyRejected(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})

	rec := doReq(e, http.MethodPost, "/loans/LN-1/payments", []byte(`{}`), "bad key!")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestIdempotency_InProgressConflicts(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	e := setupEcho(rdb, func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]bool{"ok": true})
	})
	body := []byte(`{"a":1}`)

	// Simulate a crashed first request: provisional lock present, no final
	// response stored yet.
	rec := idempRecord{InProgress: true, BodySHA256: bodyHash(body), CreatedAt: time.Now().UTC()}
	payload, _ := json.Marshal(rec)
	if err := rdb.Set(context.Background(), buildKey("POST", "/loans/:loan_number/payments", testKey), payload, time.Minute).Err(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got := doReq(e, http.MethodPost, "/loans/LN-1/payments", body, testKey)
	if got.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", got.Code)
	}
}
