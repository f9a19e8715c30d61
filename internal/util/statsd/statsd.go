// Package statsdutil reports dispatch metrics to a statsd server.
package statsdutil

import (
	"context"
	"time"

	"gopkg.in/alexcesaro/statsd.v2"

	"github.com/wetware/ocap"
	"github.com/wetware/ocap/log"
	"github.com/wetware/ocap/server"
)

// Env is satisfied by *cli.Context.
type Env interface {
	IsSet(string) bool
	String(string) string
}

// Metrics wraps a statsd client and satisfies the server.Hook
// interface.
type Metrics struct{ *statsd.Client }

var _ server.Hook = Metrics{}

// New statsd client.  Metrics are muted unless the "statsd" flag is
// set.
func New(env Env, log log.Logger) Metrics {
	m, err := statsd.New(
		addr(env),
		muted(env),
		logger(env, log),
		statsd.Prefix("ocap"),
		statsd.SampleRate(.1),
		statsd.FlushPeriod(time.Millisecond*250))
	if err != nil {
		log.Warn("setup failed for statsd metrics",
			"error", err)
		m, _ = statsd.New(statsd.Mute(true))
	}

	return Metrics{m}
}

func (m Metrics) WithPrefix(prefix string) Metrics {
	return Metrics{
		Client: m.Client.Clone(statsd.Prefix(prefix)),
	}
}

func (m Metrics) OnDispatchStart(ctx context.Context, info server.DispatchInfo) (context.Context, server.HookToken) {
	m.Increment(bucket(info.Method) + ".calls")
	return ctx, time.Now()
}

func (m Metrics) OnDispatchEnd(_ context.Context, token server.HookToken, info server.DispatchInfo, err error) {
	b := bucket(info.Method)
	if start, ok := token.(time.Time); ok {
		m.Timing(b+".duration", time.Since(start).Milliseconds())
	}

	if err != nil {
		m.Increment(b + ".errors." + ocap.KindOf(err).String())
	}
}

func bucket(m ocap.Method) string {
	return m.InterfaceName + "." + m.MethodName
}

func addr(env Env) statsd.Option {
	if env.IsSet("statsd") {
		return statsd.Address(env.String("statsd"))
	}

	return statsd.Address(":8125")
}

func logger(env Env, log log.Logger) statsd.Option {
	return statsd.ErrorHandler(func(err error) {
		log.Warn("failed to send metrics",
			"error", err,
			"statsd", env.String("statsd"))
	})
}

func muted(env Env) statsd.Option {
	return statsd.Mute(!env.IsSet("statsd"))
}
