package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"dubmux/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config with its log directory in a per-test temp dir.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.Format = "json"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return builder.cfg
}

// WithMuxerBinary points the muxer at binary.
func WithMuxerBinary(binary string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Muxer.Binary = binary
	}
}

// WithStubFFmpeg writes script as an executable named ffmpeg in the test's
// temp dir and configures it as the muxer binary.
func WithStubFFmpeg(script string) ConfigOption {
	return func(b *configBuilder) {
		b.t.Helper()
		path := filepath.Join(b.baseDir, "bin", "ffmpeg")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			b.t.Fatalf("mkdir stub bin: %v", err)
		}
		if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write stub ffmpeg: %v", err)
		}
		b.cfg.Muxer.Binary = path
	}
}

// WriteConfigFile serializes cfg as TOML at path.
func WriteConfigFile(t testing.TB, cfg *config.Config, path string) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
