package config

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/errors"
)

func TestDefaultConfig_NeedsStackName(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))
	msg, _, ok := errors.GetUserFacingMessage(err)
	assert.True(t, ok)
	assert.Contains(t, msg, "Config.Deploy.StackName")

	cfg.Deploy.StackName = "app"
	assert.NoError(t, cfg.Validate(context.Background()))
}

func TestValidate_Settings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Deploy.StackName = "app"
	cfg.Settings.ReporterType = "xml"
	cfg.Settings.Concurrency = 0

	err := cfg.Validate(context.Background())
	require.Error(t, err)
	msg, _, _ := errors.GetUserFacingMessage(err)
	assert.Contains(t, msg, "ReporterType")
	assert.Contains(t, msg, "Concurrency")
}

func TestUnmarshalWithHooks(t *testing.T) {
	v := viper.New()
	v.Set("deploy.stack_name", "app")
	v.Set("template.path", "sam/template.yaml")
	v.Set("template.parameter_overrides", "Stage=prod ParameterKey=Retries,ParameterValue=3")
	v.Set("resource_ids", "HelloFunction,Child/Layer")
	v.Set("settings.timeout", "2m")

	cfg := DefaultConfig()
	require.NoError(t, v.Unmarshal(cfg, viper.DecodeHook(DecodeHook())))

	assert.Equal(t, "sam/template.yaml", cfg.Template.TemplatePath)
	assert.Equal(t, map[string]string{"Stage": "prod", "Retries": "3"}, cfg.Template.ParameterOverrides)
	assert.Equal(t, []domain.ResourceIdentifier{
		{LogicalID: "HelloFunction"},
		{StackPath: "Child", LogicalID: "Layer"},
	}, cfg.Targets())
	assert.Equal(t, domain.DefaultBuildDir, cfg.BuildContext().BuildDir)
	assert.Equal(t, "app", cfg.DeployContext().StackName)
	assert.NotNil(t, cfg.Settings.Reporter.Text)
	assert.Equal(t, 2*time.Minute, cfg.Settings.Timeout)
}

func TestParseParameterOverrides(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]string
		wantErr bool
	}{
		{name: "empty", raw: "", want: map[string]string{}},
		{name: "short form", raw: "Stage=prod Env=", want: map[string]string{"Stage": "prod", "Env": ""}},
		{name: "long form", raw: "ParameterKey=Stage,ParameterValue=dev", want: map[string]string{"Stage": "dev"}},
		{name: "value with equals", raw: "Query=a=b", want: map[string]string{"Query": "a=b"}},
		{name: "missing equals", raw: "Stage", wantErr: true},
		{name: "long form without value", raw: "ParameterKey=Stage", wantErr: true},
		{name: "long form empty key", raw: "ParameterKey=,ParameterValue=x", wantErr: true},
		{
			name: "long form keeps commas in value",
			raw:  "ParameterKey=Subnets,ParameterValue=subnet-a,subnet-b Name=hello",
			want: map[string]string{"Subnets": "subnet-a,subnet-b", "Name": "hello"},
		},
		{name: "quoted short form", raw: `Greeting="hello world"`, want: map[string]string{"Greeting": "hello world"}},
		{
			name: "quoted long form",
			raw:  `ParameterKey=Greeting,ParameterValue='hello world' Stage=dev`,
			want: map[string]string{"Greeting": "hello world", "Stage": "dev"},
		},
		{name: "unterminated quote", raw: `Greeting="hello`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParameterOverrides(tt.raw)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.CodeConfigParseError))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
