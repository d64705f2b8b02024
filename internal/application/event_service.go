package application

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/internal/domain/entity"
	repo "github.com/oksasatya/event-portal/internal/domain/repository"
	"github.com/oksasatya/event-portal/pkg/helpers"
)

const (
	EventPageSize = 10
	// currentEventsKey caches the public upcoming-events list.
	currentEventsKey = "events:current"
)

type EventService struct {
	Repo     repo.EventRepository
	Cache    redis.Cmdable // optional
	CacheTTL time.Duration
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewEventService(r repo.EventRepository, cache redis.Cmdable, ttl time.Duration, logger *logrus.Logger) *EventService {
	return &EventService{Repo: r, Cache: cache, CacheTTL: ttl, Logger: logger, Now: time.Now}
}

func (s *EventService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create stores a new event. Layout, date and title are mandatory.
func (s *EventService) Create(ctx context.Context, e *entity.Event) (*entity.Event, error) {
	e.Layout = strings.TrimSpace(e.Layout)
	e.Title = strings.TrimSpace(e.Title)
	if e.Layout == "" || e.Title == "" || e.Date.IsZero() {
		return nil, Validation("Invalid Event Details")
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, s.dependency("create event failed", err, e.Title)
	}
	s.invalidate(ctx)
	return e, nil
}

// Update applies only the fields set in p.
func (s *EventService) Update(ctx context.Context, id string, p repo.EventPatch) (*entity.Event, error) {
	if (p.Layout != nil && strings.TrimSpace(*p.Layout) == "") ||
		(p.Title != nil && strings.TrimSpace(*p.Title) == "") ||
		(p.Date != nil && p.Date.IsZero()) {
		return nil, Validation("Invalid Event Details")
	}
	e, err := s.Repo.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, s.dependency("update event failed", err, id)
	}
	s.invalidate(ctx)
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id string) (*entity.Event, error) {
	e, err := s.Repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, s.dependency("delete event failed", err, id)
	}
	s.invalidate(ctx)
	return e, nil
}

// Current returns events dated after now, soonest first. The list is served
// from cache when present; cached entries that have since passed are dropped.
func (s *EventService) Current(ctx context.Context) ([]*entity.Event, error) {
	now := s.now()
	if s.Cache != nil {
		var cached []*entity.Event
		ok, err := helpers.RedisGetJSON(ctx, s.Cache, currentEventsKey, &cached)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("read events cache failed")
		}
		if ok {
			return upcomingOnly(cached, now), nil
		}
	}

	events, err := s.Repo.Upcoming(ctx, now)
	if err != nil {
		return nil, s.dependency("list upcoming events failed", err, "")
	}
	if s.Cache != nil {
		if err := helpers.RedisSetJSON(ctx, s.Cache, currentEventsKey, events, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("write events cache failed")
		}
	}
	return events, nil
}

type EventPage struct {
	Events     []*entity.Event `json:"events"`
	Pagination Pagination      `json:"pagination"`
}

type Pagination struct {
	TotalEvents int `json:"totalEvents"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// List returns page (1-based) of all events, past ones included, by date.
func (s *EventService) List(ctx context.Context, page int) (EventPage, error) {
	if page < 1 {
		page = 1
	}
	if page > math.MaxInt/EventPageSize {
		page = math.MaxInt / EventPageSize
	}
	events, total, err := s.Repo.List(ctx, (page-1)*EventPageSize, EventPageSize)
	if err != nil {
		return EventPage{}, s.dependency("list events failed", err, "")
	}
	return EventPage{
		Events: events,
		Pagination: Pagination{
			TotalEvents: total,
			TotalPages:  TotalPages(total, EventPageSize),
			CurrentPage: page,
			Limit:       EventPageSize,
		},
	}, nil
}

func (s *EventService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Cache, currentEventsKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("drop events cache failed")
	}
}

func (s *EventService) dependency(msg string, err error, subject string) error {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("subject", subject).Error(msg)
	}
	return Dependency("internal server error", err)
}

func upcomingOnly(events []*entity.Event, now time.Time) []*entity.Event {
	out := make([]*entity.Event, 0, len(events))
	for _, e := range events {
		if e.Date.After(now) {
			out = append(out, e)
		}
	}
	return out
}
