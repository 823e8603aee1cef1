package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "github.com/olusolaa/stack-sync/internal/errors"
)

// rootFlagKeys maps persistent flags to config keys.
var rootFlagKeys = map[string]string{
	"log-level":  "settings.log_level",
	"log-format": "settings.log_format",
	"output":     "settings.reporter",
	"no-color":   "settings.reporter_config.text.no_color",
}

// envOnlyKeys have no flag but can still be set through STACKSYNC_*.
var envOnlyKeys = []string{
	"settings.rate_limit_rps",
	"settings.reporter_config.json.compact",
	"deploy.tags",
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "stack-sync",
		Short: "Pushes local code changes straight to a deployed SAM stack.",
		Long: `stack-sync updates the deployed resources of a SAM/CloudFormation stack from
local build output without a full deploy: function code and images, layers,
and REST or HTTP API definitions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(v, cmd.Flags(), rootFlagKeys)
			return initializeConfig(v, cfgFile, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .stack-sync.yaml in the working or home directory)")
	rootCmd.PersistentFlags().String("log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Override log format (text, json)")
	rootCmd.PersistentFlags().String("output", "", "Report format (text, json)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored text output")

	v.SetEnvPrefix("STACKSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envOnlyKeys {
		_ = v.BindEnv(key)
	}

	rootCmd.AddCommand(newSyncCmd(v))
	return rootCmd
}

func Execute(ctx context.Context) {
	rootCmd := newRootCmd(viper.New())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	userMsg, suggestion, ok := apperrors.GetUserFacingMessage(err)
	if !ok {
		fmt.Fprintf(w, "ERROR: %v\n", err)
		return
	}
	fmt.Fprintf(w, "ERROR: %s\n", userMsg)
	if suggestion != "" {
		fmt.Fprintf(w, "Suggestion: %s\n", suggestion)
	}
}

func initializeConfig(v *viper.Viper, cfgFile string, stderr io.Writer) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".stack-sync")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return apperrors.WrapUserFacing(err, apperrors.CodeConfigReadError, "failed to read config file",
			"Check the --config path and its YAML syntax.")
	}
	fmt.Fprintln(stderr, "Using configuration file:", v.ConfigFileUsed())
	return nil
}

// bindFlags registers every key for env lookup, then binds only the flags the
// user set so unset flag defaults never shadow the config file or defaults.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
	flags.Visit(func(f *pflag.Flag) {
		if key, ok := keys[f.Name]; ok {
			_ = v.BindPFlag(key, f)
		}
	})
}
