package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/onemillion/internal/config"
	"github.com/KirkDiggler/onemillion/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigTestSuite) write(content string) string {
	path := filepath.Join(s.dir, "onemillion.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *ConfigTestSuite) TestDefaultsAreValid() {
	cfg, err := config.Load("")
	s.Require().NoError(err)
	s.NoError(cfg.Validate())
	s.Equal(8080, cfg.HTTPPort)
	s.Equal("defense", cfg.Mitigation)
	s.Equal(2*time.Second, cfg.WaitPeriod)
	s.Empty(cfg.RedisAddr)
	s.Empty(cfg.Database)
	s.Equal(".", cfg.AssetDir)
}

func (s *ConfigTestSuite) TestLoadFile() {
	path := s.write(`
http_port: 9090
redis_addr: localhost:6379
database: games.db
mitigation: halve
image_timeout: 750ms
wait_period: 0s
`)

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.NoError(cfg.Validate())
	s.Equal(9090, cfg.HTTPPort)
	s.Equal(50051, cfg.GRPCPort)
	s.Equal("localhost:6379", cfg.RedisAddr)
	s.Equal("games.db", cfg.Database)
	s.Equal("halve", cfg.Mitigation)
	s.Equal(750*time.Millisecond, cfg.ImageTimeout)
	s.Equal(time.Duration(0), cfg.WaitPeriod)
	s.Equal("imgs/dragon.png", cfg.FallbackImage)
}

func (s *ConfigTestSuite) TestLoadErrors() {
	_, err := config.Load(filepath.Join(s.dir, "missing.yaml"))
	s.True(errors.IsInvalidArgument(err))

	_, err = config.Load(s.write("http_port: [nope"))
	s.True(errors.IsInvalidArgument(err))
}

func (s *ConfigTestSuite) TestFlagsOverrideFile() {
	cfg, err := config.Load(s.write("http_port: 9090\nmitigation: halve\n"))
	s.Require().NoError(err)

	flags := config.Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.RegisterFlags(fs)
	s.Require().NoError(fs.Parse([]string{"--mitigation=defense", "--wait-period=500ms", "--asset-dir=/srv/assets"}))

	cfg.Merge(fs, flags)
	s.Equal(9090, cfg.HTTPPort)
	s.Equal("defense", cfg.Mitigation)
	s.Equal(500*time.Millisecond, cfg.WaitPeriod)
	s.Equal("/srv/assets", cfg.AssetDir)
}

func (s *ConfigTestSuite) TestValidate() {
	cfg := config.Default()
	cfg.HTTPPort = 70000
	cfg.GRPCPort = 70000
	cfg.Mitigation = "quarter"
	cfg.ImageURL = "/relative"
	cfg.ImageTimeout = 0
	cfg.FallbackImage = " "
	cfg.WaitPeriod = -time.Second
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	fields := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	for _, field := range []string{
		"http_port", "grpc_port", "mitigation", "image_url",
		"image_timeout", "fallback_image", "wait_period", "log_level",
	} {
		s.Contains(fields, field)
	}
}
