package app_test

import (
	"testing"

	"github.com/saadjs/dietgoals/internal/app"
)

func TestReadEnv(t *testing.T) {
	t.Setenv(app.EnvDB, " /tmp/goals.db ")
	t.Setenv(app.EnvDebug, "true")
	t.Setenv(app.EnvLogDir, "/tmp/logs")

	env, err := app.ReadEnv()
	if err != nil {
		t.Fatalf("read env: %v", err)
	}
	if env.DBPath != "/tmp/goals.db" || !env.Debug || env.LogDir != "/tmp/logs" {
		t.Fatalf("unexpected env %+v", env)
	}
}

func TestReadEnvRejectsBadDebug(t *testing.T) {
	t.Setenv(app.EnvDebug, "sometimes")
	if _, err := app.ReadEnv(); err == nil {
		t.Fatalf("expected invalid debug flag to fail")
	}
}

func TestDefaultBackupDir(t *testing.T) {
	t.Parallel()
	if got := app.DefaultBackupDir("/data/dietgoals.db"); got != "/data/backups" {
		t.Fatalf("expected /data/backups, got %s", got)
	}
}
