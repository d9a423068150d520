// Package filters provides composable predicates for routing webhook updates
// to handlers. Built-in filters and custom functions with the same signature
// are interchangeable everywhere a filter is accepted.
package filters

import (
	"context"

	"github.com/samber/lo"
	"github.com/whatsbygo/whatsbygo/types"
)

// MessageFilter selects inbound messages. The dispatching client is
// reachable through the context.
type MessageFilter func(ctx context.Context, m *types.Message) bool

// CallbackFilter selects button presses and list selections.
type CallbackFilter func(ctx context.Context, c types.Callback) bool

// StatusFilter selects message status updates.
type StatusFilter func(ctx context.Context, s *types.MessageStatus) bool

// TemplateStatusFilter selects template review events.
type TemplateStatusFilter func(ctx context.Context, s *types.TemplateStatus) bool

// All combines filters with logical AND, short-circuiting left to right.
func All[T any](fs ...func(context.Context, T) bool) func(context.Context, T) bool {
	return func(ctx context.Context, u T) bool {
		return lo.EveryBy(fs, func(f func(context.Context, T) bool) bool {
			return f(ctx, u)
		})
	}
}

// Any combines filters with logical OR, short-circuiting left to right.
func Any[T any](fs ...func(context.Context, T) bool) func(context.Context, T) bool {
	return func(ctx context.Context, u T) bool {
		return lo.SomeBy(fs, func(f func(context.Context, T) bool) bool {
			return f(ctx, u)
		})
	}
}

// Not inverts a filter.
func Not[T any](f func(context.Context, T) bool) func(context.Context, T) bool {
	return func(ctx context.Context, u T) bool {
		return !f(ctx, u)
	}
}
