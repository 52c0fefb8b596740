package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/andrescamacho/starfleet-go/internal/application/setup"
	appstarfield "github.com/andrescamacho/starfleet-go/internal/application/starfield"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
	"github.com/andrescamacho/starfleet-go/internal/domain/user"
	"github.com/andrescamacho/starfleet-go/test/helpers"
)

type daemonFixture struct {
	client    *DaemonClient
	navigator *appstarfield.Navigator
	users     *helpers.MockUserRepository
	ships     *helpers.MockShipRepository
	clock     *shared.MockClock
}

func newDaemonFixture(t *testing.T) *daemonFixture {
	t.Helper()

	f := &daemonFixture{
		users: helpers.NewMockUserRepository(),
		ships: helpers.NewMockShipRepository(),
		clock: shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	registry := setup.NewHandlerRegistry(f.ships, f.users, helpers.NewMockSessionRepository(),
		helpers.PlainPasswordHasher{}, time.Hour, f.clock)
	mediator, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	f.navigator = appstarfield.NewNavigator(appstarfield.Settings{}, f.clock)

	listener := bufconn.Listen(1 << 20)
	server := newDaemonServer(mediator, f.navigator, listener, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	f.client = NewDaemonClientWithConn(conn)

	t.Cleanup(func() {
		f.client.Close()
		cancel()
		<-done
	})
	return f
}

func (f *daemonFixture) addUser(email string) *user.User {
	u := user.NewUser(email, "plain:password1", f.clock)
	f.users.AddUser(u)
	return u
}

func TestDaemonCreateAndListShips(t *testing.T) {
	// Arrange
	f := newDaemonFixture(t)
	f.addUser("owner@example.com")
	f.addUser("other@example.com")
	ctx := context.Background()

	// Act
	created, err := f.client.CreateShip(ctx, "owner@example.com", "Banjo Fett")
	require.NoError(t, err)

	ownerShips, err := f.client.ListShips(ctx, "owner@example.com")
	require.NoError(t, err)
	otherShips, err := f.client.ListShips(ctx, "other@example.com")
	require.NoError(t, err)

	// Assert
	require.Len(t, ownerShips, 1)
	assert.Equal(t, created.ID, ownerShips[0].ID)
	assert.Equal(t, "Banjo Fett", ownerShips[0].Name)
	assert.Empty(t, otherShips)
}

func TestDaemonHidesForeignShips(t *testing.T) {
	f := newDaemonFixture(t)
	f.addUser("owner@example.com")
	f.addUser("other@example.com")
	ctx := context.Background()

	created, err := f.client.CreateShip(ctx, "owner@example.com", "PhazBar")
	require.NoError(t, err)

	_, err = f.client.GetShip(ctx, "other@example.com", created.ID)
	assert.True(t, shared.IsNotFound(err), "expected not found, got %v", err)

	deleted, err := f.client.DeleteShip(ctx, "other@example.com", created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
	assert.Equal(t, 1, f.ships.Count())
}

func TestDaemonCreateShipValidation(t *testing.T) {
	f := newDaemonFixture(t)
	f.addUser("owner@example.com")

	_, err := f.client.CreateShip(context.Background(), "owner@example.com", "")

	v, ok := shared.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, "name", v.Field)
	assert.Equal(t, "Name is required", v.Message)
	assert.Equal(t, 0, f.ships.AddCalls)
}

func TestDaemonUnknownOwner(t *testing.T) {
	f := newDaemonFixture(t)

	_, err := f.client.ListShips(context.Background(), "ghost@example.com")

	assert.True(t, shared.IsNotFound(err), "expected not found, got %v", err)
}

func TestDaemonWatchStarfield(t *testing.T) {
	// Arrange
	f := newDaemonFixture(t)
	f.addUser("owner@example.com")
	created, err := f.client.CreateShip(context.Background(), "owner@example.com", "Banjo Fett")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Act
	watch, err := f.client.WatchStarfield(ctx, "owner@example.com", created.ID)
	require.NoError(t, err)

	// Assert
	assert.NotEmpty(t, watch.VoyageID)

	initial, err := watch.Next()
	require.NoError(t, err)
	assert.Equal(t, 0, initial.Position)
	assert.Equal(t, starfield.SpeedMoving, initial.Speed)
	assert.Equal(t, f.navigator.InitialFrame().String(), initial.String())

	require.NoError(t, f.client.ControlVoyage(ctx, "owner@example.com", watch.VoyageID, starfield.EventStop))
	stopped, err := watch.Next()
	require.NoError(t, err)
	assert.True(t, stopped.Paused())

	err = f.client.ControlVoyage(ctx, "other@example.com", watch.VoyageID, starfield.EventStart)
	assert.True(t, shared.IsNotFound(err), "foreign control must look like an unknown voyage, got %v", err)

	cancel()
	assert.Eventually(t, func() bool { return f.navigator.Active() == 0 }, time.Second, 10*time.Millisecond)
}

func TestDaemonWatchForeignShip(t *testing.T) {
	f := newDaemonFixture(t)
	f.addUser("owner@example.com")
	f.addUser("other@example.com")
	created, err := f.client.CreateShip(context.Background(), "owner@example.com", "Banjo Fett")
	require.NoError(t, err)

	_, err = f.client.WatchStarfield(context.Background(), "other@example.com", created.ID)

	assert.True(t, shared.IsNotFound(err), "expected not found, got %v", err)
	assert.Equal(t, 0, f.navigator.Active())
}

func TestDaemonHealthCheck(t *testing.T) {
	f := newDaemonFixture(t)

	status, err := f.client.HealthCheck(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "SERVING", status)
}
