// Package probe derives a resolution token for a movie directory when the
// directory name itself carries none.
//
// The prober lists the directory non-recursively, sorted for determinism,
// and consults only the first video file it finds: the filename pattern
// first, then ffprobe's first video stream height. Every failure degrades to
// "no resolution"; the prober never reports an error to the rename loop.
package probe

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"marquee/internal/logging"
	"marquee/internal/media/ffprobe"
	"marquee/internal/naming"
)

// Prober inspects directories for a usable resolution token.
type Prober struct {
	binary     string
	extensions map[string]struct{}
	logger     *slog.Logger
}

// New builds a Prober. binary is the ffprobe executable to invoke;
// extensions is the set of video file extensions to consider, dot-prefixed
// and lowercase. A nil logger disables logging.
func New(binary string, extensions []string, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = logging.NewNop()
	}
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(strings.TrimSpace(ext))] = struct{}{}
	}
	return &Prober{binary: binary, extensions: exts, logger: logger}
}

// Resolution returns the resolution token for the first video file in dir,
// or "" when none can be determined. Filename tokens keep their original
// casing; probed heights map to canonical tokens.
func (p *Prober) Resolution(ctx context.Context, dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		p.logger.Debug("cannot read directory", logging.String("directory", dir), logging.Error(err))
		return ""
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := p.extensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}

		if token := naming.FindResolution(name); token != "" {
			return token
		}

		result, err := ffprobe.Inspect(ctx, p.binary, filepath.Join(dir, name))
		if err != nil {
			p.logger.Debug("ffprobe failed", logging.String("file", name), logging.Error(err))
			return ""
		}
		// Only the first video file is consulted, found or not.
		return naming.ResolutionForHeight(result.FirstVideoHeight())
	}

	return ""
}
