package app

import (
	"strings"

	"github.com/olusolaa/stack-sync/internal/config"
)

// applyOverrides fills settings derived from others and normalises values
// that may arrive as flags or environment variables.
func applyOverrides(cfg *config.Config) {
	if cfg.Template.StackName == "" {
		cfg.Template.StackName = cfg.Deploy.StackName
	}
	cfg.Deploy.S3Prefix = strings.Trim(cfg.Deploy.S3Prefix, "/")
	cfg.Settings.ReporterType = strings.ToLower(strings.TrimSpace(cfg.Settings.ReporterType))

	// a single flag value may still carry a comma list
	var ids []string
	for _, raw := range cfg.ResourceIDs {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	cfg.ResourceIDs = ids
}
