package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	shipQueries "github.com/andrescamacho/starfleet-go/internal/application/ship/queries"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

type voyageEvent struct {
	ID string `json:"id"`
}

// handleStarfieldStream runs one voyage for the lifetime of the connection
// and streams its frames as server-sent events.
func (s *Server) handleStarfieldStream(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if _, err := common.SendTyped[*shipQueries.GetShipResponse](r.Context(), s.mediator,
		&shipQueries.GetShipQuery{OwnerID: u.ID, ShipID: r.PathValue("id")}); err != nil {
		s.handleError(w, r, nil, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.serverError(w, r, fmt.Errorf("response writer does not support streaming"))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	logger := common.LoggerFromContext(ctx)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	handle := s.navigator.Launch(ctx, u.ID)
	if err := writeEvent(w, "voyage", voyageEvent{ID: handle.ID()}); err != nil {
		return
	}
	flusher.Flush()

	for frame := range handle.Frames() {
		if err := writeEvent(w, "frame", frame); err != nil {
			logger.Debug("starfield stream closed", zap.String("voyage_id", handle.ID()), zap.Error(err))
			break
		}
		flusher.Flush()
	}

	cancel()
	<-handle.Done()
}

func writeEvent(w http.ResponseWriter, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}

// handleVoyageControl applies a manual start or stop to a live voyage
func (s *Server) handleVoyageControl(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	event, known := starfield.ParseEvent(r.PathValue("action"))
	if !known || event == starfield.EventAdvance {
		http.NotFound(w, r)
		return
	}

	if err := s.navigator.Control(r.Context(), u.ID, r.PathValue("voyage"), event); err != nil {
		if shared.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		s.handleError(w, r, nil, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
