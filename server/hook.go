//go:generate mockgen -destination=../internal/mock/server/server.go -package=mock_server github.com/wetware/ocap/server Hook

package server

import (
	"context"

	"github.com/wetware/ocap"
)

// Hook observes calls around their dispatch.  Implementations must be
// safe for concurrent use, since handlers that call Call.Go may
// overlap with the next dispatch.
type Hook interface {
	OnDispatchStart(ctx context.Context, info DispatchInfo) (context.Context, HookToken)
	OnDispatchEnd(ctx context.Context, token HookToken, info DispatchInfo, err error)
}

// HookToken is an opaque value returned by OnDispatchStart and passed
// back to OnDispatchEnd.  It is only meaningful to the hook that created
// it.
type HookToken any

// DispatchInfo describes a dispatched call.
type DispatchInfo struct {
	Method   ocap.Method
	ServerID string
}

type hookToken struct {
	hook  Hook
	token HookToken
}

func startHooks(ctx context.Context, hooks []Hook, info DispatchInfo) (context.Context, []hookToken) {
	if len(hooks) == 0 {
		return ctx, nil
	}

	ts := make([]hookToken, 0, len(hooks))
	for _, h := range hooks {
		var t HookToken
		ctx, t = h.OnDispatchStart(ctx, info)
		ts = append(ts, hookToken{hook: h, token: t})
	}

	return ctx, ts
}

// endHooks runs in the reverse order of startHooks.
func endHooks(ctx context.Context, ts []hookToken, info DispatchInfo, err error) {
	for i := len(ts) - 1; i >= 0; i-- {
		ts[i].hook.OnDispatchEnd(ctx, ts[i].token, info, err)
	}
}
