package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"propertyfinder/internal/config"
	"propertyfinder/internal/presentation"
	"propertyfinder/internal/render"
	"propertyfinder/internal/search"
	"propertyfinder/internal/session"
	"propertyfinder/internal/shortlist"
	"propertyfinder/internal/zoning"
)

// app holds the collaborators shared by the TUI and the line-mode commands.
type app struct {
	client    *search.Client
	session   *session.Session
	store     shortlist.Store
	enrichers []render.Enricher
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, surface presentation.Surface) (*app, error) {
	client, err := search.NewClient(cfg.API.BaseURL,
		search.WithTimeout(cfg.API.Timeout),
		search.WithLogger(log),
	)
	if err != nil {
		return nil, errors.Wrap(err, "search client")
	}

	a := &app{client: client}

	sessOpts := []session.Option{session.WithLogger(log)}
	if surface != nil {
		sessOpts = append(sessOpts, session.WithSurface(surface))
	}
	a.session = session.New(client, sessOpts...)

	if ix := loadZoning(cfg, log); ix != nil {
		a.enrichers = append(a.enrichers, ix.Enricher())
	}

	// The shortlist is optional; searching works without it.
	if store, err := shortlist.Open(ctx, cfg.Shortlist); err != nil {
		log.Warn().Err(err).Msg("shortlist unavailable")
	} else {
		a.store = store
	}
	return a, nil
}

// loadZoning returns nil when no layers are configured or loading fails.
func loadZoning(cfg *config.Config, log zerolog.Logger) *zoning.Index {
	if len(cfg.Zoning.Layers) == 0 {
		return nil
	}
	ix, err := zoning.Load(cfg.Zoning.Layers, cfg.Zoning.Projection)
	if err != nil {
		log.Warn().Err(err).Msg("zoning enrichment disabled")
		return nil
	}
	log.Info().Int("polygons", ix.Len()).Strs("layers", cfg.Zoning.Layers).Msg("zoning loaded")
	return ix
}

func (a *app) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
