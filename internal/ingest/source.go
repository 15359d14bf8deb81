package ingest

import (
	"context"
	"fmt"
	"strings"

	"jobradar/internal/config"
	"jobradar/internal/domain/job"
	"jobradar/internal/logger"
)

const (
	SourceSimulated = "simulated"
	SourceRemoteOK  = "remoteok"
)

// Source is one upstream job feed.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]job.RawJob, error)
}

// NewSources builds the configured sources in order. Unknown names are an
// error; an empty list falls back to the simulated feed.
func NewSources(cfg config.IngestConfig, log logger.Logger) ([]Source, error) {
	names := cfg.Sources
	if len(names) == 0 {
		names = []string{SourceSimulated}
	}

	out := make([]Source, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}

		switch n {
		case SourceSimulated:
			out = append(out, NewSimulatedSource())
		case SourceRemoteOK:
			out = append(out, NewRemoteOKSource(cfg.RemoteOKURL, cfg.Timeout, log))
		default:
			return nil, fmt.Errorf("unknown ingest source %q", n)
		}
	}
	return out, nil
}
