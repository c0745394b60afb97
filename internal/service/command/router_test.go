package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
)

type stubCommand struct {
	name   string
	result string
	err    error
	args   []string
}

func (s *stubCommand) Name() string        { return s.name }
func (s *stubCommand) Description() string { return "stub" }
func (s *stubCommand) Execute(_ context.Context, _ string, args []string) (string, error) {
	s.args = args
	return s.result, s.err
}

func TestRouterIgnoresPlainMessages(t *testing.T) {
	router := New(nil)
	_, handled := router.Execute(context.Background(), "s1", "my soil is sandy")
	assert.False(t, handled)
}

func TestRouterDispatchesWithArgs(t *testing.T) {
	cmd := &stubCommand{name: "phase", result: "done"}
	router := New([]core.Command{cmd})

	out, handled := router.Execute(context.Background(), "s1", "/phase growth extra")
	require.True(t, handled)
	assert.Equal(t, "done", out)
	assert.Equal(t, []string{"growth", "extra"}, cmd.args)
}

func TestRouterUnknownCommand(t *testing.T) {
	router := New(nil)
	out, handled := router.Execute(context.Background(), "s1", "/missing")
	require.True(t, handled)
	assert.Equal(t, "Unknown command: /missing", out)
}

func TestRouterSurfacesCommandError(t *testing.T) {
	cmd := &stubCommand{name: "reset", err: errors.New("storage unavailable")}
	router := New([]core.Command{cmd})

	out, handled := router.Execute(context.Background(), "s1", "/reset")
	require.True(t, handled)
	assert.Equal(t, "Error: storage unavailable", out)
}
