package core

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projecteru2/preload/config"
)

func TestBaseHandlerConf(t *testing.T) {
	_, err := BaseHandler{}.Conf()
	assert.Error(t, err)

	_, err = BaseHandler{ConfProvider: func() *config.Config { return nil }}.Conf()
	assert.Error(t, err)

	want := config.DefaultConfig()
	got, err := BaseHandler{ConfProvider: func() *config.Config { return want }}.Conf()
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "2.048kB", FormatSize(2048))
	assert.Equal(t, "0B", FormatSize(0))
}

func TestIsTerminalOnPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close() //nolint:errcheck
	defer w.Close() //nolint:errcheck
	assert.False(t, IsTerminal(w))
}
