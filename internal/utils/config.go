package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/joho/godotenv"
)

const (
	CookieEnv    = "BING_COOKIE"
	BridgeURLEnv = "BINGJSON_BRIDGE_URL"
	TimeoutEnv   = "BINGJSON_TIMEOUT"

	DefaultBridgeURL = "http://localhost:8765/conversation"
	DefaultTimeout   = 2 * time.Minute
	DefaultEnvFile   = ".env"
)

type Config struct {
	// Cookie is passed through to the remote service as is. It's never
	// validated here, a bad cookie shows up as a failed remote call.
	Cookie    string
	BridgeURL string
	Timeout   time.Duration
}

// LoadEnv loads the dotenv file at path into the process environment.
// Variables which are already set are not overwritten. A missing file is fine.
func LoadEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if misc.Truthy(os.Getenv("DEBUG")) {
				ancli.PrintWarn(fmt.Sprintf("no env file found at: '%v', using environment only\n", path))
			}
			return nil
		}
		return fmt.Errorf("failed to load env file '%v': %w", path, err)
	}
	return nil
}

func ConfigFromEnv() (Config, error) {
	conf := Config{
		Cookie:    os.Getenv(CookieEnv),
		BridgeURL: DefaultBridgeURL,
		Timeout:   DefaultTimeout,
	}
	if u := os.Getenv(BridgeURLEnv); u != "" {
		conf.BridgeURL = u
	}
	if t := os.Getenv(TimeoutEnv); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse %v: %w", TimeoutEnv, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("%v must be positive, got: %v", TimeoutEnv, d)
		}
		conf.Timeout = d
	}
	return conf, nil
}

func ReturnNonDefault[T comparable](a, b, defaultVal T) (T, error) {
	if a != defaultVal && b != defaultVal {
		return defaultVal, fmt.Errorf("values are mutually exclusive")
	}
	if a != defaultVal {
		return a, nil
	}
	if b != defaultVal {
		return b, nil
	}
	return defaultVal, nil
}
