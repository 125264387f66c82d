package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	cmd := InitCommand(BuildInfo{Version: "1.0.0"})

	assert.Equal(t, "traceid", cmd.Use)
	assert.Equal(t, "1.0.0", cmd.Version)
	assert.Contains(t, cmd.Long, "correlation id")

	require.Len(t, cmd.Commands(), 3)

	// cobra sorts subcommands by name
	assert.Equal(t, "check", cmd.Commands()[0].Use)
	assert.Equal(t, "generate", cmd.Commands()[1].Use)
	assert.Equal(t, "serve", cmd.Commands()[2].Use)

	for _, name := range []string{"config", "log-level", "log-text"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestInitGenerateCommand(t *testing.T) {
	cmd := initGenerateCommand(&args{})

	assert.Equal(t, "generate", cmd.Use)
	assert.Contains(t, cmd.Long, "sonyflake")

	gen := cmd.Flags().Lookup("generator")
	require.NotNil(t, gen)
	assert.Equal(t, "uuid", gen.DefValue)

	format := cmd.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	count := cmd.Flags().ShorthandLookup("n")
	require.NotNil(t, count)
	assert.Equal(t, "count", count.Name)
	assert.Equal(t, "1", count.DefValue)
}

func TestInitServeCommand(t *testing.T) {
	cmd := initServeCommand(&args{})

	assert.Equal(t, "serve", cmd.Use)
	assert.Contains(t, cmd.Short, "Run the demo server")
	assert.Contains(t, cmd.Long, "specified configuration")
}

func TestInitCheckCommand(t *testing.T) {
	cmd := initCheckCommand(&args{})

	assert.Equal(t, "check", cmd.Use)
	assert.Contains(t, cmd.Short, "Check the running server")
}
