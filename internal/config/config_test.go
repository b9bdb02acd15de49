package config

import "testing"

func setAll(t *testing.T) {
	t.Helper()
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("MYSQL_DB", "loans")
	t.Setenv("MYSQL_USER", "svc")
	t.Setenv("MYSQL_PASS", "secret")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "120")
}

func TestLoad_ReadsEnv(t *testing.T) {
	setAll(t)
	c := Load()
	if c.AppPort != "9090" || c.MySQLHost != "db.internal" {
		t.Fatalf("cfg = %+v", c)
	}
	if c.RedisDB != 2 || c.IdempTTLSecs != 120 {
		t.Fatalf("redis/ttl = %d/%d", c.RedisDB, c.IdempTTLSecs)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "MYSQL_HOST", "MYSQL_PORT", "MYSQL_DB", "MYSQL_USER",
		"MYSQL_PASS", "REDIS_ADDR", "REDIS_DB", "IDEMPOTENCY_TTL_SECONDS"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("default port = %q", c.AppPort)
	}
	if c.RedisAddr != "" {
		t.Fatalf("redis addr should default empty, got %q", c.RedisAddr)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("default ttl = %d", c.IdempTTLSecs)
	}
}

func TestValidate_BadPort(t *testing.T) {
	setAll(t)
	t.Setenv("MYSQL_PORT", "not-a-port")
	if err := Load().Validate(); err == nil {
		t.Fatal("Validate accepted bad port")
	}
}

func TestMySQLDSN(t *testing.T) {
	setAll(t)
	dsn := Load().MySQLDSN()
	want := "svc:secret@tcp(db.internal:3307)/loans?multiStatements=true&parseTime=true&charset=utf8mb4,utf8"
	if dsn != want {
		t.Fatalf("dsn = %q", dsn)
	}
}
