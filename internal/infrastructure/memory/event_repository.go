package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/event-portal/internal/domain/entity"
	"github.com/oksasatya/event-portal/internal/domain/repository"
)

type EventRepository struct {
	mu   sync.RWMutex
	rows map[string]entity.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{rows: map[string]entity.Event{}}
}

func (r *EventRepository) Create(_ context.Context, e *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.rows[e.ID] = *e
	return nil
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFlag(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func (r *EventRepository) Update(_ context.Context, id string, p repository.EventPatch) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	setStr(&e.Layout, p.Layout)
	if p.Date != nil {
		e.Date = *p.Date
	}
	setStr(&e.Title, p.Title)
	setStr(&e.BGImage, p.BGImage)
	setFlag(&e.BGImageCheck, p.BGImageCheck)
	setStr(&e.FGImage1, p.FGImage1)
	setFlag(&e.FGImage1Check, p.FGImage1Check)
	setStr(&e.FGImage2, p.FGImage2)
	setFlag(&e.FGImage2Check, p.FGImage2Check)
	setStr(&e.Heading1, p.Heading1)
	setFlag(&e.Heading1Check, p.Heading1Check)
	setStr(&e.Heading2, p.Heading2)
	setFlag(&e.Heading2Check, p.Heading2Check)
	setStr(&e.Paragraph, p.Paragraph)
	setFlag(&e.ParagraphCheck, p.ParagraphCheck)
	setStr(&e.CTAText, p.CTAText)
	setFlag(&e.CTATextCheck, p.CTATextCheck)
	setStr(&e.RegistrationLink, p.RegistrationLink)
	e.UpdatedAt = time.Now()
	r.rows[id] = e
	return &e, nil
}

func (r *EventRepository) Delete(_ context.Context, id string) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.rows, id)
	return &e, nil
}

func (r *EventRepository) byDate() []*entity.Event {
	out := make([]*entity.Event, 0, len(r.rows))
	for _, e := range r.rows {
		cp := e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func (r *EventRepository) Upcoming(_ context.Context, now time.Time) ([]*entity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*entity.Event{}
	for _, e := range r.byDate() {
		if e.Date.After(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EventRepository) List(_ context.Context, offset, limit int) ([]*entity.Event, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.byDate()
	return page(all, offset, limit), len(all), nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
