package main

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFailsWhenAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	t.Setenv("FIXTURE_PATH", filepath.Join(t.TempDir(), "weather.json"))
	t.Setenv("LOG_FILE", "")

	done := make(chan error, 1)
	go func() {
		done <- run([]string{"-env", "", "-addr", ln.Addr().String()})
	}()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the listener failed")
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	assert.Error(t, run([]string{"-no-such-flag"}))
}
