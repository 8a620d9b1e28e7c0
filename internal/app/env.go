package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDB     = "DIETGOALS_DB"
	EnvDebug  = "DIETGOALS_DEBUG"
	EnvLogDir = "DIETGOALS_LOG_DIR"
)

// Env is the process configuration read from the environment.
type Env struct {
	DBPath string
	Debug  bool
	LogDir string
}

// LoadEnv reads an optional .env file from the working directory and then
// the DIETGOALS_* variables. Variables already set in the process win over
// the file.
func LoadEnv() (Env, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Env{}, fmt.Errorf("load .env: %w", err)
	}
	return ReadEnv()
}

func ReadEnv() (Env, error) {
	env := Env{
		DBPath: strings.TrimSpace(os.Getenv(EnvDB)),
		LogDir: strings.TrimSpace(os.Getenv(EnvLogDir)),
	}
	if raw := strings.TrimSpace(os.Getenv(EnvDebug)); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return Env{}, fmt.Errorf("invalid %s %q (expected true or false)", EnvDebug, raw)
		}
		env.Debug = debug
	}
	return env, nil
}
