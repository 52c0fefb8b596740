package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	authCommands "github.com/andrescamacho/starfleet-go/internal/application/auth/commands"
	"github.com/andrescamacho/starfleet-go/internal/application/common"
	shipCommands "github.com/andrescamacho/starfleet-go/internal/application/ship/commands"
	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
)

// MockMediator is a test double for the Mediator interface.
// By default it answers RegisterUserCommand and CreateShipCommand without
// touching storage and records every request it sees.
type MockMediator struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, request common.Request) (common.Response, error)
	callLog  []string // Track which commands were called
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{
		callLog: []string{},
	}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request common.Request) (common.Response, error) {
	m.mu.Lock()
	fn := m.sendFunc
	switch req := request.(type) {
	case *authCommands.RegisterUserCommand:
		m.callLog = append(m.callLog, fmt.Sprintf("RegisterUser:%s", req.Email))
	case *shipCommands.CreateShipCommand:
		m.callLog = append(m.callLog, fmt.Sprintf("CreateShip:%s", req.Name))
	default:
		m.callLog = append(m.callLog, common.RequestName(request))
	}
	m.mu.Unlock()

	// Use custom function if provided
	if fn != nil {
		return fn(ctx, request)
	}

	// Default behaviors based on request type
	switch req := request.(type) {
	case *authCommands.RegisterUserCommand:
		return &authCommands.AuthResponse{User: user.NewUser(req.Email, "plain:"+req.Password, nil)}, nil

	case *shipCommands.CreateShipCommand:
		s, err := ship.NewShip(req.Name, req.OwnerID, nil)
		if err != nil {
			return nil, err
		}
		return &shipCommands.CreateShipResponse{Ship: s}, nil

	default:
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request common.Request) (common.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// GetCallLog returns the list of commands that were called
func (m *MockMediator) GetCallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.callLog...)
}

// ClearCallLog clears the call log
func (m *MockMediator) ClearCallLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callLog = []string{}
}

// HasCreateShipCall checks if a ship with the given name was requested
func (m *MockMediator) HasCreateShipCall(name string) bool {
	for _, call := range m.GetCallLog() {
		if call == fmt.Sprintf("CreateShip:%s", name) {
			return true
		}
	}
	return false
}

// Register implements the Mediator interface (no-op for tests)
func (m *MockMediator) Register(requestType reflect.Type, handler common.RequestHandler) error {
	return nil // No-op for tests
}

// RegisterMiddleware implements the Mediator interface (no-op for tests)
func (m *MockMediator) RegisterMiddleware(middleware common.Middleware) {
	// No-op for tests
}

// Ensure MockMediator implements the common.Mediator interface
var _ common.Mediator = (*MockMediator)(nil)
