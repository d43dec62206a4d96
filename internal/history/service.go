package history

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is the operation surface used by the HTTP layer. The shortcut
// ranges all end today and delegate to BuildHistoryInRange.
type Service struct {
	agg    *Aggregator
	strict bool
}

// NewService wraps agg. When strict is true every build runs in strict mode
// regardless of the per-call options.
func NewService(agg *Aggregator, strict bool) *Service {
	return &Service{agg: agg, strict: strict}
}

func (s *Service) options(opts Options) Options {
	opts.Strict = opts.Strict || s.strict
	return opts
}

// BuildFullHistory builds the dossier over the member's whole history.
func (s *Service) BuildFullHistory(ctx context.Context, memberID primitive.ObjectID, opts Options) (*Dossier, error) {
	return s.agg.Build(ctx, memberID, nil, s.options(opts))
}

// BuildHistoryInRange builds the dossier for the inclusive day range [start, end].
func (s *Service) BuildHistoryInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time, opts Options) (*Dossier, error) {
	p := Period{Start: Day(start), End: Day(end)}
	return s.agg.Build(ctx, memberID, &p, s.options(opts))
}

// BuildLastMonth covers the last 30 days up to and including today.
func (s *Service) BuildLastMonth(ctx context.Context, memberID primitive.ObjectID, opts Options) (*Dossier, error) {
	today := s.agg.Today()
	return s.BuildHistoryInRange(ctx, memberID, today.AddDate(0, 0, -30), today, opts)
}

// BuildLastThreeMonths covers the three calendar months up to today.
func (s *Service) BuildLastThreeMonths(ctx context.Context, memberID primitive.ObjectID, opts Options) (*Dossier, error) {
	today := s.agg.Today()
	return s.BuildHistoryInRange(ctx, memberID, today.AddDate(0, -3, 0), today, opts)
}

// BuildCurrentYear covers January 1st of the current year up to today.
func (s *Service) BuildCurrentYear(ctx context.Context, memberID primitive.ObjectID, opts Options) (*Dossier, error) {
	today := s.agg.Today()
	return s.BuildHistoryInRange(ctx, memberID, time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), today, opts)
}
