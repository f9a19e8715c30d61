package demo_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/wetware/ocap/internal/cmd/demo"
)

func newApp(out *bytes.Buffer) *cli.App {
	return &cli.App{
		Name:      "ocap",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "logfmt", Value: "none"},
			&cli.StringFlag{Name: "loglvl", Value: "info"},
			&cli.StringFlag{Name: "statsd"},
			&cli.BoolFlag{Name: "trace"},
		},
		Commands: []*cli.Command{demo.Command()},
	}
}

func TestCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"ocap", "demo", "-n", "4", "-w", "2"})
	require.NoError(t, err, "demo should succeed")
	assert.Contains(t, out.String(), "2 workers completed 4 calls each")
}

func TestCommand_trace(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"ocap", "--trace", "demo", "-n", "1", "-w", "1"})
	require.NoError(t, err, "demo should succeed")
	assert.Contains(t, out.String(), "ocap/demo.capnp:TestPipeline.getCap",
		"should export dispatch spans")
}
