package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
	"eventregistration/internal/services"
)

// EventListResponse is the data of GET /events.
type EventListResponse struct {
	Status         domain.LoadStatus `json:"status"`
	Events         []*EventView      `json:"events"`
	DefaultEventID *string           `json:"default_event_id"`
}

// CurrentEventResponse is the data of GET /events/current.
type CurrentEventResponse struct {
	Status domain.LoadStatus `json:"status"`
	Event  *EventView        `json:"event"`
}

type EventController struct {
	Logger  *slog.Logger
	Catalog domain.EventCatalog
	Locale  services.Locale
}

func NewEventController(logger *slog.Logger, catalog domain.EventCatalog, locale services.Locale) *EventController {
	return &EventController{
		Logger:  logger,
		Catalog: catalog,
		Locale:  locale,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Events ordered by date, undated events last. The first event is the default selection.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is EventListResponse"
// @Failure 503 {object} controllers.Envelope "error.code: persistence_failed"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	res := c.Catalog.Load(r.Context())
	if res.Status == domain.LoadStatusError {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", res.Err)
		helpers.WriteJSON(w, http.StatusServiceUnavailable, Envelope{
			Error:  &helpers.APIError{Code: helpers.ErrCodePersistenceFailed, Message: "could not load events"},
			Notice: &noticeFailure,
		})
		return
	}
	out := EventListResponse{Status: res.Status, Events: make([]*EventView, 0, len(res.Selection.Events))}
	for _, e := range res.Selection.Events {
		out.Events = append(out.Events, newEventView(e, c.Locale))
	}
	if res.Selection.Default != nil {
		id := res.Selection.Default.ID
		out.DefaultEventID = &id
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// GetCurrentEvent godoc
// @Summary Current event
// @Description The most recently updated event, or status "empty" when none exists.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is CurrentEventResponse"
// @Failure 503 {object} controllers.Envelope "error.code: persistence_failed"
// @Router /events/current [get]
func (c *EventController) GetCurrentEvent(w http.ResponseWriter, r *http.Request) {
	event, ok, err := c.Catalog.Current(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSON(w, http.StatusServiceUnavailable, Envelope{
			Error:  &helpers.APIError{Code: helpers.ErrCodePersistenceFailed, Message: "could not load event"},
			Notice: &noticeFailure,
		})
		return
	}
	if !ok {
		helpers.WriteJSONSuccess(w, http.StatusOK, CurrentEventResponse{Status: domain.LoadStatusEmpty})
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CurrentEventResponse{
		Status: domain.LoadStatusLoaded,
		Event:  newEventView(event, c.Locale),
	})
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Event detail. Unknown ids answer 404 with navigation "redirect_event_list".
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data is EventView"
// @Failure 404 {object} controllers.Envelope "error.code: not_found"
// @Failure 503 {object} controllers.Envelope "error.code: persistence_failed"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("eventID")
	event, err := c.Catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSON(w, http.StatusNotFound, Envelope{
				Error:      &helpers.APIError{Code: helpers.ErrCodeNotFound, Message: "event not found"},
				Navigation: NavigationRedirectEventList,
			})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSON(w, http.StatusServiceUnavailable, Envelope{
			Error:  &helpers.APIError{Code: helpers.ErrCodePersistenceFailed, Message: "could not load event"},
			Notice: &noticeFailure,
		})
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newEventView(event, c.Locale))
}
