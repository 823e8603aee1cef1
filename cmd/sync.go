package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/stack-sync/internal/app"
)

// syncFlagKeys maps sync flags to config keys.
var syncFlagKeys = map[string]string{
	"template":            "template.path",
	"stack-name":          "deploy.stack_name",
	"resource-id":         "resource_ids",
	"parameter-overrides": "template.parameter_overrides",
	"build-dir":           "build.build_dir",
	"base-dir":            "build.base_dir",
	"s3-bucket":           "deploy.s3_bucket",
	"s3-prefix":           "deploy.s3_prefix",
	"image-repository":    "deploy.image_repository",
	"region":              "deploy.region",
	"profile":             "deploy.profile",
	"concurrency":         "settings.concurrency",
	"timeout":             "settings.timeout",
}

func newSyncCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync local build output to the deployed stack.",
		Long: `sync resolves the physical ids of the deployed stack, then updates each
selected resource in place. Resources that need a full deploy are reported
as skipped.`,
		Example: `  stack-sync sync --stack-name app
  stack-sync sync --stack-name app --resource-id HelloFunction --resource-id Child/SharedLayer
  stack-sync sync --stack-name app --parameter-overrides "Stage=dev Retries=3"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(v, cmd.Flags(), syncFlagKeys)
			ctx, cancel := runContext(cmd.Context(), v)
			defer cancel()

			application, err := app.BuildApplicationFromViper(ctx, v)
			if err != nil {
				return err
			}
			return application.Run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.StringP("template", "t", "", "Path to the SAM template (default template.yaml)")
	flags.String("stack-name", "", "Name of the deployed root stack")
	flags.StringSlice("resource-id", nil, "Resource to sync, as LogicalId or StackPath/LogicalId; repeatable")
	flags.String("parameter-overrides", "", "Template parameters as 'Key=Value Key2=Value2'")
	flags.String("build-dir", "", "Build output directory (default .aws-sam/build)")
	flags.String("base-dir", "", "Directory relative template paths resolve against")
	flags.String("s3-bucket", "", "Bucket for archives over the inline upload limit")
	flags.String("s3-prefix", "", "Key prefix for uploaded archives")
	flags.String("image-repository", "", "ECR repository URI for function images")
	flags.String("region", "", "AWS region")
	flags.String("profile", "", "AWS shared config profile")
	flags.Int("concurrency", 0, "Flows to run at once")
	flags.Duration("timeout", 0, "Abort the run after this long")

	return cmd
}

// runContext bounds the whole command, bootstrap included, by settings.timeout.
func runContext(parent context.Context, v *viper.Viper) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout := v.GetDuration("settings.timeout"); timeout > 0 {
		return context.WithTimeout(parent, timeout)
	}
	return context.WithCancel(parent)
}
