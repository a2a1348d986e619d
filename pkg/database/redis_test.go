package database

import (
	"lexi_backend/internal/config"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestInitRedisDisabled(t *testing.T) {
	rdb, err := InitRedis(&config.RedisConfig{Enabled: false})
	if err != nil || rdb != nil {
		t.Fatalf("expected no client, got %v, %v", rdb, err)
	}
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, _ := strconv.Atoi(mr.Port())
	cfg := &config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port}

	rdb, err := InitRedis(cfg)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer rdb.Close()

	mr.Close()
	if _, err := InitRedis(cfg); err == nil {
		t.Fatal("expected an error once the server is gone")
	}
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	cases := map[string]string{
		"lexi.db":                         "lexi.db?_pragma=foreign_keys(1)",
		"file:x?mode=memory&cache=shared": "file:x?mode=memory&cache=shared&_pragma=foreign_keys(1)",
	}
	for in, want := range cases {
		if got := sqliteDSN(in); got != want {
			t.Fatalf("sqliteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	if _, err := Dialector(&config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected an error")
	}
}
