package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForShutdown(t *testing.T) {
	t.Run("listener failure surfaces to the caller", func(t *testing.T) {
		serverErr := make(chan error, 1)
		serverErr <- errors.New("listen tcp :3001: bind: address already in use")

		err := waitForShutdown(echo.New(), serverErr, make(chan os.Signal))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "address already in use")
	})

	t.Run("closed server is a clean exit", func(t *testing.T) {
		serverErr := make(chan error, 1)
		serverErr <- http.ErrServerClosed

		err := waitForShutdown(echo.New(), serverErr, make(chan os.Signal))

		assert.NoError(t, err)
	})

	t.Run("termination signal drains the listener", func(t *testing.T) {
		e := echo.New()
		e.HideBanner = true
		e.GET("/ping", func(c echo.Context) error {
			return c.String(http.StatusOK, "pong")
		})

		serverErr := make(chan error, 1)
		go func() {
			serverErr <- e.Start("127.0.0.1:0")
		}()

		require.Eventually(t, func() bool {
			return e.ListenerAddr() != nil
		}, 2*time.Second, 10*time.Millisecond)
		addr := e.ListenerAddr().String()

		resp, err := http.Get(fmt.Sprintf("http://%s/ping", addr))
		require.NoError(t, err)
		resp.Body.Close()

		quit := make(chan os.Signal, 1)
		quit <- syscall.SIGTERM

		require.NoError(t, waitForShutdown(e, serverErr, quit))

		_, err = http.Get(fmt.Sprintf("http://%s/ping", addr))
		assert.Error(t, err)
	})
}
