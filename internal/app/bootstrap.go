package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws"
	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/cloudformation"
	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/ecr"
	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/s3"
	"github.com/olusolaa/stack-sync/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/stack-sync/internal/adapters/syncflow"
	"github.com/olusolaa/stack-sync/internal/adapters/template"
	"github.com/olusolaa/stack-sync/internal/config"
	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
	"github.com/olusolaa/stack-sync/internal/core/service"
	"github.com/olusolaa/stack-sync/internal/errors"
	"github.com/olusolaa/stack-sync/internal/log"
	"github.com/olusolaa/stack-sync/internal/reporting/json"
	"github.com/olusolaa/stack-sync/internal/reporting/text"
)

// LoadConfig decodes v over the defaults, applies derived settings and
// validates the result.
func LoadConfig(ctx context.Context, v *viper.Viper) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if err := v.Unmarshal(cfg, viper.DecodeHook(config.DecodeHook())); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigParseError, "failed to decode configuration",
			"Check the config file and flag values.")
	}
	applyOverrides(cfg)
	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}

func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg, err := LoadConfig(ctx, v)
	if err != nil {
		return nil, err
	}

	logger, err := log.NewLogger(log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, err
	}
	logger.Debugf(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	}

	tmplLog := logger.WithFields(map[string]any{"component": "template", "type": template.ProviderTypeSAMTemplate})
	templates, err := template.NewProvider(cfg.Template, tmplLog)
	if err != nil {
		return nil, err
	}
	stacks, err := loadStacks(ctx, templates, tmplLog)
	if err != nil {
		return nil, err
	}

	awsLog := logger.WithFields(map[string]any{"provider": shared.ProviderTypeAWS})
	clients, err := aws.NewClientProvider(ctx, cfg.Deploy.Region, cfg.Deploy.Profile, awsLog,
		aws.WithRateLimiter(limiter.New(cfg.Settings.RateLimitRPS, awsLog)))
	if err != nil {
		return nil, err
	}
	if cfg.Deploy.Region == "" {
		cfg.Deploy.Region = clients.Region()
	}
	awsLog.Infof(ctx, "Using AWS region %s", clients.Region())

	physicalIDs, err := cloudformation.NewPhysicalIDProvider(clients.CloudFormation(), clients.Limiter(), clients.ErrorHandler(),
		awsLog.WithFields(map[string]any{"component": "physical-ids"}))
	if err != nil {
		return nil, err
	}

	deps := syncflow.Dependencies{
		Lambda:       clients.Lambda(),
		APIGateway:   clients.APIGateway(),
		APIGatewayV2: clients.APIGatewayV2(),
		Uploader: s3.NewUploader(clients.S3(),
			s3.WithRateLimiter(clients.Limiter()), s3.WithErrorHandler(clients.ErrorHandler())),
		Registry:     ecr.NewAuthenticator(clients.ECR(), clients.Limiter(), clients.ErrorHandler()),
		Limiter:      clients.Limiter(),
		ErrorHandler: clients.ErrorHandler(),
		Docker:       clients.Docker,
	}

	factory, err := service.NewSyncFlowFactory(cfg.BuildContext(), cfg.DeployContext(), stacks, physicalIDs,
		syncflow.DefaultConstructors(deps), logger.WithFields(map[string]any{"component": "factory"}))
	if err != nil {
		return nil, err
	}

	executor, err := service.NewSyncFlowExecutor(cfg.Settings.Concurrency, logger.WithFields(map[string]any{"component": "executor"}))
	if err != nil {
		return nil, err
	}

	reporter, err := newReporter(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Debugf(ctx, "Application bootstrap complete")
	return NewApplication(factory, executor, reporter, logger,
		WithTargets(cfg.Targets()),
		WithResourceLister(factory.SyncableResources),
		WithAccountResolver(clients.AccountID),
	), nil
}

// loadStacks reads every stack the template provider knows about. A template
// set without a root stack is rejected.
func loadStacks(ctx context.Context, templates ports.TemplateProvider, logger ports.Logger) ([]domain.Stack, error) {
	stacks, err := templates.LoadStacks(ctx)
	if err != nil {
		return nil, err
	}
	if len(stacks) == 0 {
		return nil, errors.NewUserFacing(errors.CodeTemplateParseError,
			fmt.Sprintf("%s provider returned no stacks", templates.Type()),
			"Check that --template points at a SAM or CloudFormation template.")
	}
	logger.Infof(ctx, "Loaded %d stack(s) with the %s provider", len(stacks), templates.Type())
	return stacks, nil
}

func newReporter(ctx context.Context, cfg *config.Config, logger ports.Logger) (ports.Reporter, error) {
	reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": cfg.Settings.ReporterType})
	switch cfg.Settings.ReporterType {
	case text.ReporterTypeText:
		textCfg := cfg.Settings.Reporter.Text
		if textCfg == nil {
			textCfg = &text.Config{}
		}
		reportLog.Debugf(ctx, "Using Text reporter (Color: %t)", !textCfg.NoColor)
		return text.NewReporter(*textCfg, reportLog)
	case json.ReporterTypeJSON:
		jsonCfg := cfg.Settings.Reporter.JSON
		if jsonCfg == nil {
			jsonCfg = &json.Config{}
		}
		return json.NewReporter(*jsonCfg, reportLog)
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json")
	}
}
