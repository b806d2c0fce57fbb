package presentation

import (
	"context"
	"time"

	"baldr/internal/logging"
	"baldr/internal/master"
	"baldr/internal/resolver"
	"baldr/internal/services"
)

// Resolve fetches the media of every slide, required URIs strictly and
// optional URIs leniently, then runs the post-resolution hooks slide by slide
// in document order. Calling Resolve again re-runs the hooks on the fields
// and steps from parsing; cached assets are not fetched again.
func (p *Presentation) Resolve(ctx context.Context, r *resolver.Resolver) error {
	if r == nil {
		return services.Wrap(services.ErrProgramming, "resolve", "presentation", "nil resolver", nil)
	}
	ctx = services.WithPhase(services.WithPresentation(ctx, p.Meta.Ref), "resolve")
	logger := logging.WithContext(ctx, p.logger)
	started := time.Now()

	required := p.MediaURIs()
	if err := r.ResolveAll(ctx, required, false); err != nil {
		return err
	}
	optional := p.OptionalMediaURIs()
	if err := r.ResolveAll(ctx, optional, true); err != nil {
		return err
	}

	for _, s := range p.flat {
		if !master.HasResolutionHooks(s.master) {
			continue
		}
		s.steps.Truncate(s.instSteps)
		fields, err := master.Finalize(s.master, s.instFields, &s.steps, r)
		if err != nil {
			logging.WarnWithContext(logger, "slide enrichment failed", "slide_resolve_failed",
				logging.Int(logging.FieldSlideNo, s.No),
				logging.String(logging.FieldMaster, s.MasterName),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the media URIs of the slide"),
				logging.String(logging.FieldImpact, "presentation cannot be shown"))
			return slideError(s, "resolve", err)
		}
		s.Fields = fields
	}

	logger.Info("presentation resolved",
		logging.Int("slides", len(p.flat)),
		logging.Int("media_uris", len(required)),
		logging.Int("optional_media_uris", len(optional)),
		logging.Int("fetches", r.FetchCount()),
		logging.Duration(logging.FieldElapsed, time.Since(started)))
	return nil
}
