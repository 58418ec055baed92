package controllers

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/core/sessions"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// EventController relays the appointment change broadcast to dashboards over
// server-sent events. Each connection runs through a sync session, so the
// stream carries de-duplicated change events plus periodic "sync" hints on
// the configured poll cadence; a dashboard that missed or was damped out of
// a broadcast refetches on the next hint.
type EventController struct {
	Log            *zap.Logger
	Broadcaster    contracts.Broadcaster
	InternalConfig *config.InternalConfig
}

func NewEventController(logger *zap.Logger, broadcaster contracts.Broadcaster, internalConfig *config.InternalConfig) *EventController {
	return &EventController{
		Log:            logger,
		Broadcaster:    broadcaster,
		InternalConfig: internalConfig,
	}
}

func (ctrl *EventController) StreamAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.BuildNewCustomError(nil,
			constvars.StatusInternalServerError,
			constvars.ErrClientSomethingWrongWithApplication,
			"response writer does not support streaming"))
		return
	}

	// The session goroutine and this handler both write to the stream;
	// writes are serialized.
	var writeMu sync.Mutex
	writeEvent := func(event *models.AppointmentEvent) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		if event == nil {
			// Poll tick: refetch hint and keepalive in one.
			_, err := fmt.Fprint(w, "event: sync\ndata: {}\n\n")
			flusher.Flush()
			return err
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", constvars.AppointmentEventType, payload)
		flusher.Flush()
		return err
	}

	session, err := sessions.New(r.Context(), ctrl.InternalConfig, ctrl.Broadcaster,
		func(_ context.Context, event *models.AppointmentEvent) error {
			return writeEvent(event)
		}, ctrl.Log)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	defer session.Close()

	w.Header().Set(constvars.HeaderContentType, constvars.MIMETextEventStream)
	w.Header().Set(constvars.HeaderCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// EventSource reconnect delay tracks the poll cadence.
	writeMu.Lock()
	fmt.Fprintf(w, "retry: %d\n\n", sessions.PollInterval(ctrl.InternalConfig).Milliseconds())
	flusher.Flush()
	writeMu.Unlock()

	ctrl.Log.Info("EventController.StreamAppointments stream opened",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	<-r.Context().Done()

	ctrl.Log.Info("EventController.StreamAppointments stream closed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
}
