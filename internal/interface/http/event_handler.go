package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/internal/application"
	"github.com/oksasatya/event-portal/internal/domain/entity"
	repo "github.com/oksasatya/event-portal/internal/domain/repository"
	"github.com/oksasatya/event-portal/pkg/response"
	"github.com/oksasatya/event-portal/pkg/validation"
)

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

// eventRequest mirrors entity.Event on the wire. Every field is optional so the
// same shape serves create and partial edit.
type eventRequest struct {
	Layout           *string `json:"layoutSelected"`
	Date             *string `json:"date"`
	Title            *string `json:"title"`
	BGImage          *string `json:"BGImage" binding:"omitempty,url"`
	BGImageCheck     *bool   `json:"BGImageCheck"`
	FGImage1         *string `json:"FGImage1" binding:"omitempty,url"`
	FGImage1Check    *bool   `json:"FGImage1Check"`
	FGImage2         *string `json:"FGImage2" binding:"omitempty,url"`
	FGImage2Check    *bool   `json:"FGImage2Check"`
	Heading1         *string `json:"Heading1"`
	Heading1Check    *bool   `json:"Heading1Check"`
	Heading2         *string `json:"Heading2"`
	Heading2Check    *bool   `json:"Heading2Check"`
	Paragraph        *string `json:"Paragraph"`
	ParagraphCheck   *bool   `json:"ParagraphCheck"`
	CTAText          *string `json:"ctaText"`
	CTATextCheck     *bool   `json:"ctaTextCheck"`
	RegistrationLink *string `json:"registrationLink" binding:"omitempty,url"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (r eventRequest) patch() (repo.EventPatch, bool) {
	p := repo.EventPatch{
		Layout:           r.Layout,
		Title:            r.Title,
		BGImage:          r.BGImage,
		BGImageCheck:     r.BGImageCheck,
		FGImage1:         r.FGImage1,
		FGImage1Check:    r.FGImage1Check,
		FGImage2:         r.FGImage2,
		FGImage2Check:    r.FGImage2Check,
		Heading1:         r.Heading1,
		Heading1Check:    r.Heading1Check,
		Heading2:         r.Heading2,
		Heading2Check:    r.Heading2Check,
		Paragraph:        r.Paragraph,
		ParagraphCheck:   r.ParagraphCheck,
		CTAText:          r.CTAText,
		CTATextCheck:     r.CTATextCheck,
		RegistrationLink: r.RegistrationLink,
	}
	if r.Date != nil {
		d, ok := parseDate(*r.Date)
		if !ok {
			return p, false
		}
		p.Date = &d
	}
	return p, true
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func flag(p *bool) bool { return p != nil && *p }

func (r eventRequest) event() (*entity.Event, bool) {
	p, ok := r.patch()
	if !ok {
		return nil, false
	}
	e := &entity.Event{
		Layout:           str(p.Layout),
		Title:            str(p.Title),
		BGImage:          str(p.BGImage),
		BGImageCheck:     flag(p.BGImageCheck),
		FGImage1:         str(p.FGImage1),
		FGImage1Check:    flag(p.FGImage1Check),
		FGImage2:         str(p.FGImage2),
		FGImage2Check:    flag(p.FGImage2Check),
		Heading1:         str(p.Heading1),
		Heading1Check:    flag(p.Heading1Check),
		Heading2:         str(p.Heading2),
		Heading2Check:    flag(p.Heading2Check),
		Paragraph:        str(p.Paragraph),
		ParagraphCheck:   flag(p.ParagraphCheck),
		CTAText:          str(p.CTAText),
		CTATextCheck:     flag(p.CTATextCheck),
		RegistrationLink: str(p.RegistrationLink),
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	return e, true
}

func (h *EventHandler) bind(c *gin.Context) (eventRequest, bool) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return req, false
	}
	return req, true
}

func invalidDate(c *gin.Context) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"date": "must be a valid date"})
}

// Create POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	e, ok := req.event()
	if !ok {
		invalidDate(c)
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), e)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, created, "New Event Created", nil)
}

// Update PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	p, ok := req.patch()
	if !ok {
		invalidDate(c)
		return
	}
	updated, err := h.Svc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, updated, "event updated", nil)
}

// Current GET /api/events/current
func (h *EventHandler) Current(c *gin.Context) {
	events, err := h.Svc.Current(c.Request.Context())
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"currEvents": events}, "current events", nil)
}

// List GET /api/events?page=
func (h *EventHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	res, err := h.Svc.List(c.Request.Context(), page)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res.Events, "events", res.Pagination)
}

// Delete DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	e, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": e}, "Event deleted successfully", nil)
}
