package config_test

import (
	"os"
	"strings"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/preparedness/pkg/cli/config"
	"github.com/secmon-lab/preparedness/pkg/utils/logging"
)

func TestLogger_Configure(t *testing.T) {
	before := logging.Default()
	t.Cleanup(func() { logging.SetDefault(before) })

	t.Run("json output to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		closer, err := config.NewLoggerForTest("debug", "json", path).Configure()
		gt.NoError(t, err).Required()

		type credential struct {
			User  string
			Token string `masq:"secret"`
		}
		logging.Default().Debug("scored", "hazard", "flood", "credential", credential{User: "alice", Token: "abc123"})
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains(`"hazard":"flood"`)
		gt.String(t, string(data)).Contains("alice")
		gt.Bool(t, strings.Contains(string(data), "abc123")).False()
	})

	t.Run("console output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "console.log")
		closer, err := config.NewLoggerForTest("info", "console", path).Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("verbose", "json", "stderr").Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogLevel)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "stderr").Configure()
		gt.Error(t, err).Is(config.ErrInvalidFormat)
	})
}
