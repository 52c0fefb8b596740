package web

import (
	"net/http"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	shipCommands "github.com/andrescamacho/starfleet-go/internal/application/ship/commands"
	shipQueries "github.com/andrescamacho/starfleet-go/internal/application/ship/queries"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// shipsPage loads the sidebar listing shared by every ships page
func (s *Server) shipsPage(r *http.Request, u *user.User, title string) (*pageData, error) {
	resp, err := common.SendTyped[*shipQueries.ListShipsResponse](r.Context(), s.mediator,
		&shipQueries.ListShipsQuery{OwnerID: u.ID})
	if err != nil {
		return nil, err
	}
	return &pageData{Title: title, User: u, Ships: resp.Ships}, nil
}

func (s *Server) handleShipsIndex(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	data, err := s.shipsPage(r, u, "Ships")
	if err != nil {
		s.handleError(w, r, nil, err)
		return
	}
	s.render(w, r, http.StatusOK, "ships_index", data)
}

func (s *Server) handleNewShipForm(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	data, err := s.shipsPage(r, u, "New ship")
	if err != nil {
		s.handleError(w, r, nil, err)
		return
	}
	s.render(w, r, http.StatusOK, "ship_new", data)
}

func (s *Server) handleCreateShip(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	name := r.PostFormValue("name")
	resp, err := common.SendTyped[*shipCommands.CreateShipResponse](r.Context(), s.mediator,
		&shipCommands.CreateShipCommand{OwnerID: u.ID, Name: name})
	if err != nil {
		v, isValidation := shared.AsValidation(err)
		if !isValidation {
			s.handleError(w, r, nil, err)
			return
		}

		data, listErr := s.shipsPage(r, u, "New ship")
		if listErr != nil {
			s.handleError(w, r, nil, listErr)
			return
		}
		data.Form = formData{Name: name, Errors: map[string]string{v.Field: v.Message}}
		s.render(w, r, http.StatusBadRequest, "ship_new", data)
		return
	}

	http.Redirect(w, r, "/ships/"+resp.Ship.ID(), http.StatusSeeOther)
}

func (s *Server) handleShipDetail(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	shipID := r.PathValue("id")
	data, err := s.shipsPage(r, u, "Ship")
	if err != nil {
		s.handleError(w, r, nil, err)
		return
	}
	data.ActiveShipID = shipID

	resp, err := common.SendTyped[*shipQueries.GetShipResponse](r.Context(), s.mediator,
		&shipQueries.GetShipQuery{OwnerID: u.ID, ShipID: shipID})
	if err != nil {
		s.handleError(w, r, data, err)
		return
	}

	data.Title = resp.Ship.Name()
	data.Ship = resp.Ship
	data.Frame = s.navigator.InitialFrame()
	s.render(w, r, http.StatusOK, "ship_detail", data)
}

// handleDeleteShip removes the ship if the user owns it. A missing ship is not an error.
func (s *Server) handleDeleteShip(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if _, err := s.mediator.Send(r.Context(), &shipCommands.DeleteShipCommand{
		OwnerID: u.ID,
		ShipID:  r.PathValue("id"),
	}); err != nil {
		s.handleError(w, r, nil, err)
		return
	}

	http.Redirect(w, r, "/ships", http.StatusSeeOther)
}
