package config

import (
	"time"

	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/stack-sync/internal/adapters/template"
	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/service"
	"github.com/olusolaa/stack-sync/internal/log"
	"github.com/olusolaa/stack-sync/internal/reporting/json"
	"github.com/olusolaa/stack-sync/internal/reporting/text"
)

type Config struct {
	Settings SettingsConfig  `mapstructure:"settings"`
	Template template.Config `mapstructure:"template"`
	Deploy   DeployConfig    `mapstructure:"deploy"`
	Build    BuildConfig     `mapstructure:"build"`

	// ResourceIDs limits the sync to these resources. Empty means every
	// syncable resource.
	ResourceIDs []string `mapstructure:"resource_ids"`
}

type SettingsConfig struct {
	LogLevel     log.Level       `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat    log.Format      `mapstructure:"log_format" validate:"omitempty,oneof=text json"`
	Concurrency  int             `mapstructure:"concurrency" validate:"gte=1,lte=64"`
	RateLimitRPS int             `mapstructure:"rate_limit_rps" validate:"gte=1,lte=100"`
	ReporterType string          `mapstructure:"reporter" validate:"oneof=text json"`
	Reporter     ReporterConfigs `mapstructure:"reporter_config"`

	// Timeout bounds the whole run; zero means no limit.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type DeployConfig struct {
	StackName       string            `mapstructure:"stack_name" validate:"required"`
	Region          string            `mapstructure:"region"`
	Profile         string            `mapstructure:"profile"`
	S3Bucket        string            `mapstructure:"s3_bucket"`
	S3Prefix        string            `mapstructure:"s3_prefix"`
	ImageRepository string            `mapstructure:"image_repository"`
	Tags            map[string]string `mapstructure:"tags"`
}

type BuildConfig struct {
	BuildDir string `mapstructure:"build_dir"`
	BaseDir  string `mapstructure:"base_dir"`
}

type ReporterConfigs struct {
	Text *text.Config `mapstructure:"text"`
	JSON *json.Config `mapstructure:"json"`
}

func (c *Config) BuildContext() domain.BuildContext {
	return domain.BuildContext{BuildDir: c.Build.BuildDir, BaseDir: c.Build.BaseDir}
}

func (c *Config) DeployContext() domain.DeployContext {
	return domain.DeployContext{
		StackName:       c.Deploy.StackName,
		Region:          c.Deploy.Region,
		Profile:         c.Deploy.Profile,
		S3Bucket:        c.Deploy.S3Bucket,
		S3Prefix:        c.Deploy.S3Prefix,
		ImageRepository: c.Deploy.ImageRepository,
		Tags:            c.Deploy.Tags,
	}
}

// Targets parses ResourceIDs, dropping blanks.
func (c *Config) Targets() []domain.ResourceIdentifier {
	var ids []domain.ResourceIdentifier
	for _, raw := range c.ResourceIDs {
		if id := domain.ParseResourceIdentifier(raw); !id.IsZero() {
			ids = append(ids, id)
		}
	}
	return ids
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			Concurrency:  service.DefaultConcurrency,
			RateLimitRPS: limiter.DefaultRateLimitRPS,
			ReporterType: text.ReporterTypeText,
			Reporter: ReporterConfigs{
				Text: &text.Config{NoColor: false},
				JSON: &json.Config{},
			},
		},
		Template: template.Config{TemplatePath: "template.yaml"},
		Build:    BuildConfig{BuildDir: domain.DefaultBuildDir},
	}
}
