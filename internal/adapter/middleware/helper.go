package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var reKey = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// validKey accepts opaque client tokens: UUIDs, hex digests, or anything
// URL-safe between 8 and 128 characters.
func validKey(k string) bool { return reKey.MatchString(k) }

func bodyHash(b []byte) string {
	s := sha256.Sum256(b)
	return hex.EncodeToString(s[:])
}

func buildKey(method, path, key string) string {
	return "idemp:" + strings.ToLower(method) + ":" + path + ":" + key
}

func provisionalSet(ctx context.Context, rdb *redis.Client, key string, rec idempRecord) (bool, error) {
	payload, _ := json.Marshal(rec)
	return rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func loadRecord(ctx context.Context, rdb *redis.Client, key string) (idempRecord, error) {
	var rec idempRecord
	v, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return rec, err
	}
	err = json.Unmarshal(v, &rec)
	return rec, err
}

func saveFinal(ctx context.Context, rdb *redis.Client, key string, rec idempRecord, ttl time.Duration) error {
	payload, _ := json.Marshal(rec)
	return rdb.Set(ctx, key, payload, ttl).Err()
}
