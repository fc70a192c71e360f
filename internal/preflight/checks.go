package preflight

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"marquee/internal/config"
	"marquee/internal/deps"
	"marquee/internal/stage"
)

// CheckConfig validates the loaded configuration.
func CheckConfig(cfg *config.Config) stage.Health {
	const name = "Configuration"
	if err := cfg.Validate(); err != nil {
		return stage.Unhealthy(name, err.Error())
	}
	return stage.Healthy(name)
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) stage.Health {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return stage.Unhealthy(name, fmt.Sprintf("%s (error: does not exist)", path))
		}
		return stage.Unhealthy(name, fmt.Sprintf("%s (error: stat: %v)", path, err))
	}
	if !info.IsDir() {
		return stage.Unhealthy(name, fmt.Sprintf("%s (error: is not a directory)", path))
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err))
	}
	return stage.Health{Name: name, Ready: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFFprobe verifies the ffprobe binary is resolvable.
func CheckFFprobe(cfg *config.Config) stage.Health {
	const name = "FFprobe"
	statuses := deps.CheckBinaries([]deps.Requirement{{
		Name:    name,
		Command: cfg.FFprobeBinary(),
	}})
	status := statuses[0]
	if !status.Available {
		return stage.Unhealthy(name, status.Detail)
	}
	return stage.Health{Name: name, Ready: true, Detail: status.Detail}
}

// CheckTMDB verifies the API key is present and accepted.
func CheckTMDB(ctx context.Context, cfg *config.Config) stage.Health {
	const name = "TMDB"

	key := strings.TrimSpace(cfg.TMDB.APIKey)
	if key == "" {
		return stage.Unhealthy(name, "API key missing")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.TMDB.BaseURL), "/")
	if base == "" {
		return stage.Unhealthy(name, "base URL missing")
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	endpoint := fmt.Sprintf("%s/configuration?api_key=%s", base, url.QueryEscape(key))
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("auth check failed (%v)", err))
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return stage.Unhealthy(name, fmt.Sprintf("auth check failed (%v)", err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return stage.Health{Name: name, Ready: true, Detail: "API reachable"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return stage.Unhealthy(name, "auth failed (invalid api key)")
	default:
		return stage.Unhealthy(name, fmt.Sprintf("auth check failed (%d)", resp.StatusCode))
	}
}
