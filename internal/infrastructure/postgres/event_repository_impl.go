package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/event-portal/internal/domain/entity"
	"github.com/oksasatya/event-portal/internal/domain/repository"
)

const eventColumns = `id, layout, date, title, bg_image, bg_image_check, fg_image1, fg_image1_check,
	fg_image2, fg_image2_check, heading1, heading1_check, heading2, heading2_check,
	paragraph, paragraph_check, cta_text, cta_text_check, registration_link, created_at, updated_at`

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	e := &entity.Event{}
	if err := row.Scan(&e.ID, &e.Layout, &e.Date, &e.Title,
		&e.BGImage, &e.BGImageCheck, &e.FGImage1, &e.FGImage1Check,
		&e.FGImage2, &e.FGImage2Check, &e.Heading1, &e.Heading1Check,
		&e.Heading2, &e.Heading2Check, &e.Paragraph, &e.ParagraphCheck,
		&e.CTAText, &e.CTATextCheck, &e.RegistrationLink, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (layout, date, title, bg_image, bg_image_check, fg_image1, fg_image1_check,
			fg_image2, fg_image2_check, heading1, heading1_check, heading2, heading2_check,
			paragraph, paragraph_check, cta_text, cta_text_check, registration_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at
	`, e.Layout, e.Date, e.Title, e.BGImage, e.BGImageCheck, e.FGImage1, e.FGImage1Check,
		e.FGImage2, e.FGImage2Check, e.Heading1, e.Heading1Check, e.Heading2, e.Heading2Check,
		e.Paragraph, e.ParagraphCheck, e.CTAText, e.CTATextCheck, e.RegistrationLink)

	return row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// eventAssignments renders the SET list for p with placeholders starting at $1.
func eventAssignments(p repository.EventPatch) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	str := func(col string, v *string) {
		if v != nil {
			args = append(args, *v)
			sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
		}
	}
	flag := func(col string, v *bool) {
		if v != nil {
			args = append(args, *v)
			sets = append(sets, col+" = $"+strconv.Itoa(len(args)))
		}
	}
	str("layout", p.Layout)
	if p.Date != nil {
		args = append(args, *p.Date)
		sets = append(sets, "date = $"+strconv.Itoa(len(args)))
	}
	str("title", p.Title)
	str("bg_image", p.BGImage)
	flag("bg_image_check", p.BGImageCheck)
	str("fg_image1", p.FGImage1)
	flag("fg_image1_check", p.FGImage1Check)
	str("fg_image2", p.FGImage2)
	flag("fg_image2_check", p.FGImage2Check)
	str("heading1", p.Heading1)
	flag("heading1_check", p.Heading1Check)
	str("heading2", p.Heading2)
	flag("heading2_check", p.Heading2Check)
	str("paragraph", p.Paragraph)
	flag("paragraph_check", p.ParagraphCheck)
	str("cta_text", p.CTAText)
	flag("cta_text_check", p.CTATextCheck)
	str("registration_link", p.RegistrationLink)
	return sets, args
}

func (r *EventRepository) Update(ctx context.Context, id string, p repository.EventPatch) (*entity.Event, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	sets, args := eventAssignments(p)
	if len(sets) == 0 {
		return scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	q := `UPDATE events SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + eventColumns
	return scanEvent(r.pool.QueryRow(ctx, q, args...))
}

func (r *EventRepository) Delete(ctx context.Context, id string) (*entity.Event, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanEvent(r.pool.QueryRow(ctx, `DELETE FROM events WHERE id = $1 RETURNING `+eventColumns, id))
}

func (r *EventRepository) collect(rows pgx.Rows) ([]*entity.Event, error) {
	defer rows.Close()
	out := []*entity.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventRepository) Upcoming(ctx context.Context, now time.Time) ([]*entity.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE date > $1 ORDER BY date ASC, id ASC`, now)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *EventRepository) List(ctx context.Context, offset, limit int) ([]*entity.Event, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date ASC, id ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	events, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
