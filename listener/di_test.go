package listener

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func freePort(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	return ln.Addr().String()
}

func supplyHandler(name string, handler http.Handler) fx.Option {
	return fx.Supply(fx.Annotate(handler, fx.As(new(http.Handler)), fx.ResultTags(`name:"`+name+`"`)))
}

func TestNewModule_WithOptions(t *testing.T) {
	t.Parallel()

	addr := freePort(t)

	app := fxtest.New(t,
		supplyHandler("api", okHandler()),
		NewModule("api", WithAddress(addr)),
	)
	app.RequireStart()

	status, body := get(t, addr)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	app.RequireStop()
}

func TestNewModule_WithExternalConfig(t *testing.T) {
	t.Parallel()

	addr := freePort(t)

	app := fxtest.New(t,
		supplyHandler("api", okHandler()),
		fx.Supply(fx.Annotate(Config{Address: addr}, fx.ResultTags(`name:"api"`))),
		NewModule("api"),
	)
	app.RequireStart()

	status, _ := get(t, addr)
	assert.Equal(t, http.StatusOK, status)

	app.RequireStop()
}

func TestNewModule_ListenFailure(t *testing.T) {
	t.Parallel()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	app := fx.New(
		supplyHandler("api", okHandler()),
		NewModule("api", WithAddress(ln.Addr().String())),
		fx.NopLogger,
	)

	err = app.Start(context.Background())
	require.ErrorIs(t, err, ErrListenFailed)
}

func TestNewModule_EmptyName(t *testing.T) {
	t.Parallel()

	app := fx.New(NewModule(""), fx.NopLogger)

	require.ErrorIs(t, app.Err(), ErrEmptyName)
}
