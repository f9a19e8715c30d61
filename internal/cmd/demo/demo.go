// Package demo implements the `demo` command, which drives the demo
// capabilities through a hooked server stack.
package demo

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	api "github.com/wetware/ocap/api/demo"
	"github.com/wetware/ocap/internal/demo"
	ctxutil "github.com/wetware/ocap/internal/util/ctx"
	logutil "github.com/wetware/ocap/internal/util/log"
	statsdutil "github.com/wetware/ocap/internal/util/statsd"
	"github.com/wetware/ocap/server"
	"github.com/wetware/ocap/util/otelhook"
)

var flags = []cli.Flag{
	&cli.IntFlag{
		Name:    "calls",
		Aliases: []string{"n"},
		Usage:   "number of pipelined `calls` per worker",
		Value:   16,
	},
	&cli.IntFlag{
		Name:    "workers",
		Aliases: []string{"w"},
		Usage:   "number of concurrent callers",
		Value:   4,
	},
	&cli.IntFlag{
		Name:        "queue",
		Usage:       "bound each server's queue to `n` calls",
		DefaultText: "unbounded",
	},
	&cli.Float64Flag{
		Name:        "rate",
		Usage:       "admit at most `r` calls per second",
		DefaultText: "unlimited",
	},
}

func Command() *cli.Command {
	return &cli.Command{
		Name:   "demo",
		Usage:  "exercise dispatch and promise pipelining",
		Flags:  flags,
		Action: run(),
	}
}

func run() cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx, cancel := ctxutil.WithLifetime(c.Context)
		defer cancel()

		log := logutil.New(c)

		metrics := statsdutil.New(c, log)
		defer metrics.Close()

		cfg := server.Config{
			Logger:     log,
			QueueLimit: c.Int("queue"),
			Hooks:      []server.Hook{metrics.WithPrefix("demo")},
		}

		if c.IsSet("rate") {
			cfg.Limiter = rate.NewLimiter(rate.Limit(c.Float64("rate")), c.Int("workers"))
		}

		if c.Bool("trace") {
			tp, err := tracerProvider(c)
			if err != nil {
				return errors.Wrap(err, "tracer")
			}
			defer tp.Shutdown(context.Background())

			tc := otelhook.DefaultConfig()
			tc.TracerProvider = tp
			cfg.Hooks = append(cfg.Hooks, otelhook.New(tc))
		}

		boot := demo.Bootstrap{Config: cfg}.Client()
		defer boot.Release()

		g, ctx := errgroup.WithContext(ctx)
		for i := 0; i < c.Int("workers"); i++ {
			w := worker{
				id:    i,
				calls: c.Int("calls"),
				log:   log.With("worker", i),
			}

			g.Go(func() error {
				return w.Run(ctx, boot)
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Fprintf(c.App.Writer, "%d workers completed %d calls each\n",
			c.Int("workers"), c.Int("calls"))
		return nil
	}
}

func tracerProvider(c *cli.Context) (*sdktrace.TracerProvider, error) {
	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(c.App.Writer),
		stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp)), nil
}

type worker struct {
	id    int
	calls int
	log   *slog.Logger
}

// Run obtains a TestPipeline and a TestInterface from boot, then makes
// w.calls getCap calls, each followed by a call on its pipelined
// result.  No call waits for the previous one.
func (w worker) Run(ctx context.Context, boot api.Bootstrap) error {
	pf, release := boot.TestPipeline(ctx)
	defer release()

	pipeline := pf.Cap()
	defer pipeline.Release()

	tf, release := boot.TestInterface(ctx)
	defer release()

	in := tf.Cap()
	defer in.Release()

	var futures []api.TestInterface_foo_Results_Future
	for i := 0; i < w.calls; i++ {
		gf, release := pipeline.GetCap(ctx, func(ps api.TestPipeline_getCap_Params_Builder) error {
			ps.SetN(234)
			return ps.SetInCap(in.AddRef())
		})
		defer release()

		out := gf.OutBox().Cap()
		defer out.Release()

		f, release := out.Foo(ctx, func(ps api.TestInterface_foo_Params_Builder) error {
			ps.SetI(321)
			ps.SetJ(false)
			return nil
		})
		defer release()

		futures = append(futures, f)
	}

	for i, f := range futures {
		res, err := f.Await(ctx)
		if err != nil {
			return errors.Wrapf(err, "worker %d: call %d", w.id, i)
		}

		x, err := res.X()
		if err != nil {
			return errors.Wrapf(err, "worker %d: call %d", w.id, i)
		}

		w.log.Debug("call returned",
			"call", i,
			"x", x)
	}

	w.log.Info("worker finished",
		"calls", len(futures))
	return nil
}
