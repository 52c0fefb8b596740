package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	authCommands "github.com/andrescamacho/starfleet-go/internal/application/auth/commands"
	authQueries "github.com/andrescamacho/starfleet-go/internal/application/auth/queries"
	"github.com/andrescamacho/starfleet-go/internal/application/common"
	shipCommands "github.com/andrescamacho/starfleet-go/internal/application/ship/commands"
	shipQueries "github.com/andrescamacho/starfleet-go/internal/application/ship/queries"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
	"github.com/andrescamacho/starfleet-go/test/helpers"
)

const pilotPassword = "password1"

type fleetContext struct {
	clock    *shared.MockClock
	repos    *helpers.TestRepositories
	mediator common.Mediator

	pilots  map[string]*user.User
	ships   map[string]*ship.Ship // key: ship name
	listed  []*ship.Ship
	deleted int64
	session *user.Session
	err     error
}

func (fc *fleetContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	fc.clock = shared.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	fc.repos = helpers.NewTestRepositories()
	m, err := fc.repos.NewMediator(fc.clock)
	if err != nil {
		return err
	}
	fc.mediator = m
	fc.pilots = make(map[string]*user.User)
	fc.ships = make(map[string]*ship.Ship)
	fc.listed = nil
	fc.deleted = 0
	fc.session = nil
	fc.err = nil
	return nil
}

func (fc *fleetContext) pilot(email string) (*user.User, error) {
	u, ok := fc.pilots[email]
	if !ok {
		return nil, fmt.Errorf("pilot %s was not registered", email)
	}
	return u, nil
}

func (fc *fleetContext) shipID(name string) string {
	if s, ok := fc.ships[name]; ok {
		return s.ID()
	}
	// Unknown names map to an id no record has
	return "00000000-0000-0000-0000-000000000000"
}

// Given steps

func (fc *fleetContext) aRegisteredPilot(email string) error {
	resp, err := common.SendTyped[*authCommands.AuthResponse](context.Background(), fc.mediator,
		&authCommands.RegisterUserCommand{Email: email, Password: pilotPassword})
	if err != nil {
		return err
	}
	fc.pilots[email] = resp.User
	return nil
}

func (fc *fleetContext) createdAShipNamed(email, name string) error {
	if err := fc.createsAShipNamed(email, name); err != nil {
		return err
	}
	return fc.err
}

func (fc *fleetContext) thePilotsOwnTheseShips(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		owner := getCellValueFromTable(table, row, "owner")
		name := getCellValueFromTable(table, row, "name")
		if err := fc.createdAShipNamed(owner, name); err != nil {
			return fmt.Errorf("failed to create %q for %s: %w", name, owner, err)
		}
	}
	return nil
}

func (fc *fleetContext) minutesPass(minutes int) error {
	fc.clock.Advance(time.Duration(minutes) * time.Minute)
	return nil
}

func (fc *fleetContext) hoursPass(hours int) error {
	fc.clock.Advance(time.Duration(hours) * time.Hour)
	return nil
}

func (fc *fleetContext) logsInWithPassword(email, password string) error {
	resp, err := common.SendTyped[*authCommands.AuthResponse](context.Background(), fc.mediator,
		&authCommands.LoginCommand{Email: email, Password: password})
	if err != nil {
		return err
	}
	fc.session = resp.Session
	return nil
}

// When steps

func (fc *fleetContext) createsAShipNamed(email, name string) error {
	u, err := fc.pilot(email)
	if err != nil {
		return err
	}
	resp, err := common.SendTyped[*shipCommands.CreateShipResponse](context.Background(), fc.mediator,
		&shipCommands.CreateShipCommand{OwnerID: u.ID, Name: name})
	fc.err = err
	if err == nil {
		fc.ships[resp.Ship.Name()] = resp.Ship
	}
	return nil
}

func (fc *fleetContext) listsTheirShips(email string) error {
	u, err := fc.pilot(email)
	if err != nil {
		return err
	}
	resp, err := common.SendTyped[*shipQueries.ListShipsResponse](context.Background(), fc.mediator,
		&shipQueries.ListShipsQuery{OwnerID: u.ID})
	if err != nil {
		return err
	}
	fc.listed = resp.Ships
	return nil
}

func (fc *fleetContext) looksUpTheShip(email, name string) error {
	u, err := fc.pilot(email)
	if err != nil {
		return err
	}
	_, fc.err = fc.mediator.Send(context.Background(), &shipQueries.GetShipQuery{OwnerID: u.ID, ShipID: fc.shipID(name)})
	return nil
}

func (fc *fleetContext) deletesTheShip(email, name string) error {
	u, err := fc.pilot(email)
	if err != nil {
		return err
	}
	resp, err := common.SendTyped[*shipCommands.DeleteShipResponse](context.Background(), fc.mediator,
		&shipCommands.DeleteShipCommand{OwnerID: u.ID, ShipID: fc.shipID(name)})
	if err != nil {
		return err
	}
	fc.deleted = resp.Deleted
	return nil
}

// Then steps

func (fc *fleetContext) theShipListShouldBe(names string) error {
	var got []string
	for _, s := range fc.listed {
		got = append(got, s.Name())
	}
	if strings.Join(got, ", ") != names {
		return fmt.Errorf("expected ships %q, got %q", names, strings.Join(got, ", "))
	}
	return nil
}

func (fc *fleetContext) theShipListShouldBeEmpty() error {
	if len(fc.listed) != 0 {
		return fmt.Errorf("expected no ships, got %d", len(fc.listed))
	}
	return nil
}

func (fc *fleetContext) theRequestShouldFailAsNotFound() error {
	if !shared.IsNotFound(fc.err) {
		return fmt.Errorf("expected a not found error, got %v", fc.err)
	}
	return nil
}

func (fc *fleetContext) theRequestShouldFailOnWith(field, message string) error {
	v, ok := shared.AsValidation(fc.err)
	if !ok {
		return fmt.Errorf("expected a validation error, got %v", fc.err)
	}
	if v.Field != field || v.Message != message {
		return fmt.Errorf("expected %s: %s, got %s: %s", field, message, v.Field, v.Message)
	}
	return nil
}

func (fc *fleetContext) shipsShouldHaveBeenDeleted(n int) error {
	if fc.deleted != int64(n) {
		return fmt.Errorf("expected %d deleted, got %d", n, fc.deleted)
	}
	return nil
}

func (fc *fleetContext) shouldStillOwn(email, name string) error {
	u, err := fc.pilot(email)
	if err != nil {
		return err
	}
	s, err := fc.repos.ShipRepo.FindByID(context.Background(), fc.shipID(name), u.ID)
	if err != nil {
		return err
	}
	if s.Name() != name {
		return fmt.Errorf("expected %q, got %q", name, s.Name())
	}
	return nil
}

func (fc *fleetContext) shouldOwnShips(email string, n int) error {
	u, err := fc.pilot(email)
	if err != nil {
		return err
	}
	owned, err := fc.repos.ShipRepo.ListByOwner(context.Background(), u.ID)
	if err != nil {
		return err
	}
	if len(owned) != n {
		return fmt.Errorf("expected %s to own %d ships, got %d", email, n, len(owned))
	}
	return nil
}

func (fc *fleetContext) theSessionShouldResolveTo(email string) error {
	if fc.session == nil {
		return fmt.Errorf("no session available")
	}
	resp, err := common.SendTyped[*authQueries.ResolveSessionResponse](context.Background(), fc.mediator,
		&authQueries.ResolveSessionQuery{SessionID: fc.session.ID})
	if err != nil {
		return err
	}
	if resp.User.Email != email {
		return fmt.Errorf("expected session for %s, got %s", email, resp.User.Email)
	}
	return nil
}

func (fc *fleetContext) theSessionShouldBeRejected() error {
	if fc.session == nil {
		return fmt.Errorf("no session available")
	}
	_, err := fc.mediator.Send(context.Background(), &authQueries.ResolveSessionQuery{SessionID: fc.session.ID})
	if !shared.IsUnauthenticated(err) {
		return fmt.Errorf("expected the session to be rejected, got %v", err)
	}
	return nil
}

// getCellValueFromTable gets a cell value from a table row by column name,
// using the first row as the header
func getCellValueFromTable(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}

	return ""
}

// InitializeFleetScenario registers ship and session steps backed by GORM repositories
func InitializeFleetScenario(ctx *godog.ScenarioContext) {
	fc := &fleetContext{}

	ctx.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		return c, fc.reset()
	})

	ctx.Step(`^a registered pilot "([^"]*)"$`, fc.aRegisteredPilot)
	ctx.Step(`^"([^"]*)" created a ship named "([^"]*)"$`, fc.createdAShipNamed)
	ctx.Step(`^the pilots own these ships:$`, fc.thePilotsOwnTheseShips)
	ctx.Step(`^(\d+) minutes? passe?s?$`, fc.minutesPass)
	ctx.Step(`^(\d+) hours? passe?s?$`, fc.hoursPass)
	ctx.Step(`^"([^"]*)" logs in with password "([^"]*)"$`, fc.logsInWithPassword)

	ctx.Step(`^"([^"]*)" creates a ship named "([^"]*)"$`, fc.createsAShipNamed)
	ctx.Step(`^"([^"]*)" lists their ships$`, fc.listsTheirShips)
	ctx.Step(`^"([^"]*)" looks up the ship "([^"]*)"$`, fc.looksUpTheShip)
	ctx.Step(`^"([^"]*)" deletes the ship "([^"]*)"$`, fc.deletesTheShip)

	ctx.Step(`^the ship list should be "([^"]*)"$`, fc.theShipListShouldBe)
	ctx.Step(`^the ship list should be empty$`, fc.theShipListShouldBeEmpty)
	ctx.Step(`^the request should fail as not found$`, fc.theRequestShouldFailAsNotFound)
	ctx.Step(`^the request should fail on "([^"]*)" with "([^"]*)"$`, fc.theRequestShouldFailOnWith)
	ctx.Step(`^(\d+) ships? should have been deleted$`, fc.shipsShouldHaveBeenDeleted)
	ctx.Step(`^"([^"]*)" should still own "([^"]*)"$`, fc.shouldStillOwn)
	ctx.Step(`^"([^"]*)" should own (\d+) ships?$`, fc.shouldOwnShips)
	ctx.Step(`^the session should resolve to "([^"]*)"$`, fc.theSessionShouldResolveTo)
	ctx.Step(`^the session should be rejected$`, fc.theSessionShouldBeRejected)
}
