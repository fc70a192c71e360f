package preflight

import (
	"context"

	"marquee/internal/config"
	"marquee/internal/stage"
)

// RunAll executes every applicable preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []stage.Health {
	if cfg == nil {
		return nil
	}

	var results []stage.Health

	results = append(results, CheckConfig(cfg))
	results = append(results, CheckDirectoryAccess("Report directory", cfg.Paths.ReportDir))
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	for _, root := range cfg.Paths.RootDirs {
		results = append(results, CheckDirectoryAccess("Library root", root))
	}
	results = append(results, CheckFFprobe(cfg))
	results = append(results, CheckTMDB(ctx, cfg))

	return results
}

// Passed reports whether every check is ready.
func Passed(results []stage.Health) bool {
	for _, result := range results {
		if !result.Ready {
			return false
		}
	}
	return true
}
