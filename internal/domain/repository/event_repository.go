package repository

import (
	"context"
	"time"

	"github.com/oksasatya/event-portal/internal/domain/entity"
)

// EventPatch lists the event fields an edit may change. A nil field is left unchanged.
type EventPatch struct {
	Layout           *string
	Date             *time.Time
	Title            *string
	BGImage          *string
	BGImageCheck     *bool
	FGImage1         *string
	FGImage1Check    *bool
	FGImage2         *string
	FGImage2Check    *bool
	Heading1         *string
	Heading1Check    *bool
	Heading2         *string
	Heading2Check    *bool
	Paragraph        *string
	ParagraphCheck   *bool
	CTAText          *string
	CTATextCheck     *bool
	RegistrationLink *string
}

type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	Update(ctx context.Context, id string, p EventPatch) (*entity.Event, error)
	Delete(ctx context.Context, id string) (*entity.Event, error)
	// Upcoming returns events dated strictly after now, soonest first.
	Upcoming(ctx context.Context, now time.Time) ([]*entity.Event, error)
	// List returns a page of all events ordered by date ascending and the total count.
	List(ctx context.Context, offset, limit int) ([]*entity.Event, int, error)
}
