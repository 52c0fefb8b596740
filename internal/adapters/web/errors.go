package web

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// handleError maps a domain error onto a response. Validation errors are
// rendered inline by the handlers that expect them, so here they are a 400.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, data *pageData, err error) {
	var notFound *shared.NotFoundError
	switch {
	case errors.As(err, &notFound):
		s.renderMessage(w, r, http.StatusNotFound, data, notFoundMessage(notFound.Resource))
	case shared.IsUnauthenticated(err):
		redirectToLogin(w, r)
	default:
		if v, ok := shared.AsValidation(err); ok {
			s.renderMessage(w, r, http.StatusBadRequest, data, v.Message)
			return
		}
		s.serverError(w, r, err)
	}
}

func (s *Server) renderMessage(w http.ResponseWriter, r *http.Request, status int, data *pageData, message string) {
	if data == nil {
		data = &pageData{}
	}
	data.Title = http.StatusText(status)
	data.Message = message
	s.render(w, r, status, "error", data)
}

// serverError logs err and writes a bare 500. It never renders a template.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	common.LoggerFromContext(r.Context()).Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	http.Error(w, unexpectedErrorMessage, http.StatusInternalServerError)
}

func notFoundMessage(resource string) string {
	if resource == "" {
		return "Not found"
	}
	return strings.ToUpper(resource[:1]) + resource[1:] + " not found"
}
