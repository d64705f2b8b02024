package application

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/event-portal/internal/domain/entity"
	repo "github.com/oksasatya/event-portal/internal/domain/repository"
)

var eventsNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newEvents(t *testing.T) (*EventService, *memEvents, *memCache) {
	t.Helper()
	events := newMemEvents()
	cache := newMemCache()
	svc := NewEventService(events, cache, time.Minute, nil)
	svc.Now = func() time.Time { return eventsNow }
	return svc, events, cache
}

func TestEventCreate_RequiresLayoutDateTitle(t *testing.T) {
	svc, _, _ := newEvents(t)

	_, err := svc.Create(context.Background(), &entity.Event{Layout: "layout1", Title: "Meetup"})
	assert.Equal(t, KindValidation, KindOf(err))

	e, err := svc.Create(context.Background(), &entity.Event{Layout: "layout1", Title: "Meetup", Date: eventsNow.Add(time.Hour)})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
}

func TestEventCurrent_CachedAndInvalidated(t *testing.T) {
	svc, events, cache := newEvents(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &entity.Event{Layout: "l", Title: "past", Date: eventsNow.Add(-time.Hour)})
	require.NoError(t, err)
	soon, err := svc.Create(ctx, &entity.Event{Layout: "l", Title: "soon", Date: eventsNow.Add(time.Hour)})
	require.NoError(t, err)

	got, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "soon", got[0].Title)
	assert.Contains(t, cache.data, currentEventsKey)

	_, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, events.upcoming)

	_, err = svc.Delete(ctx, soon.ID)
	require.NoError(t, err)
	assert.NotContains(t, cache.data, currentEventsKey)

	got, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, events.upcoming)
}

func TestEventCurrent_DropsCachedEntriesThatPassed(t *testing.T) {
	svc, _, _ := newEvents(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, &entity.Event{Layout: "l", Title: "soon", Date: eventsNow.Add(time.Minute)})
	require.NoError(t, err)

	got, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	svc.Now = func() time.Time { return eventsNow.Add(2 * time.Minute) }
	got, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEventCurrent_WithoutCache(t *testing.T) {
	events := newMemEvents()
	svc := NewEventService(events, nil, time.Minute, nil)
	_, err := svc.Create(context.Background(), &entity.Event{Layout: "l", Title: "t", Date: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	got, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestEventUpdate(t *testing.T) {
	svc, _, _ := newEvents(t)
	ctx := context.Background()
	e, err := svc.Create(ctx, &entity.Event{Layout: "l", Title: "old", Date: eventsNow.Add(time.Hour)})
	require.NoError(t, err)

	title := "new"
	got, err := svc.Update(ctx, e.ID, repo.EventPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, "l", got.Layout)

	empty := " "
	_, err = svc.Update(ctx, e.ID, repo.EventPatch{Title: &empty})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Update(ctx, "missing", repo.EventPatch{Title: &title})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventList_Paginates(t *testing.T) {
	svc, _, _ := newEvents(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		_, err := svc.Create(ctx, &entity.Event{Layout: "l", Title: "e", Date: eventsNow.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, page.Events, 2)
	assert.Equal(t, Pagination{TotalEvents: 12, TotalPages: 2, CurrentPage: 2, Limit: EventPageSize}, page.Pagination)

	page, err = svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.Len(t, page.Events, EventPageSize)

	page, err = svc.List(ctx, math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, page.Events)
	assert.Equal(t, 12, page.Pagination.TotalEvents)
}
