// Package panel composes request slots into a remote configuration panel:
// one auto-triggered loader that reads the persisted document and one
// action-triggered submitter that writes edits back.
//
//	p := panel.New(loader, submitter)
//	p.Ensure(ctx)            // on every render; fetches once
//	p.Submit(ctx, payload)   // on user action; shows the result banner
//
// The panel owns no other mutable state besides the one-way banner flag.
// Form values live in a separate Form so each instance decides how to seed
// them.
package panel

import (
	"context"
	"sync/atomic"

	"github.com/jsamuelsen11/console-settings/internal/app/slot"
)

// BannerFunc derives the banner content from the submitter's state. It
// returns nil when there is nothing to show.
type BannerFunc[R any] func(st slot.State[R]) *Banner

// Panel is a loader slot and a submitter slot sharing one screen.
type Panel[D, P, R any] struct {
	loader    *slot.Slot[struct{}, D]
	submitter *slot.Slot[P, R]
	shown     atomic.Bool
}

// New composes loader and submitter into a Panel.
func New[D, P, R any](loader *slot.Slot[struct{}, D], submitter *slot.Slot[P, R]) *Panel[D, P, R] {
	return &Panel[D, P, R]{loader: loader, submitter: submitter}
}

// Loader returns the read slot.
func (p *Panel[D, P, R]) Loader() *slot.Slot[struct{}, D] {
	return p.loader
}

// Submitter returns the write slot.
func (p *Panel[D, P, R]) Submitter() *slot.Slot[P, R] {
	return p.submitter
}

// Ensure starts the loader if it has never run and returns the loader's
// current state. It is idempotent and intended to be called on every render.
func (p *Panel[D, P, R]) Ensure(ctx context.Context) slot.State[D] {
	p.loader.EnsureStarted(ctx, struct{}{})
	return p.loader.State()
}

// Refresh issues a fresh read regardless of the loader's phase. A read
// already in flight is not reused: it may have been issued before the
// write the caller wants to observe.
func (p *Panel[D, P, R]) Refresh(ctx context.Context) *slot.Call {
	return p.loader.Retrigger(ctx, struct{}{})
}

// Submit triggers the submitter with params and makes the result banner
// visible. Once visible, the banner stays visible for the panel's lifetime.
func (p *Panel[D, P, R]) Submit(ctx context.Context, params P) *slot.Call {
	call := p.submitter.Trigger(ctx, params)
	p.shown.Store(true)
	return call
}

// SubmitIfIdle behaves like Submit but only issues the write when none is
// in flight. It reports whether the write was issued; a refused submit
// leaves the banner untouched.
func (p *Panel[D, P, R]) SubmitIfIdle(ctx context.Context, params P) (*slot.Call, bool) {
	call, ok := p.submitter.TriggerIfIdle(ctx, params)
	if ok {
		p.shown.Store(true)
	}
	return call, ok
}

// Submitting reports whether a write is in flight.
func (p *Panel[D, P, R]) Submitting() bool {
	return p.submitter.State().Phase == slot.Fetching
}

// BannerVisible reports whether a submit has ever been issued.
func (p *Panel[D, P, R]) BannerVisible() bool {
	return p.shown.Load()
}

// Banner returns the banner to render, or nil while it is hidden or fn has
// nothing to show.
func (p *Panel[D, P, R]) Banner(fn BannerFunc[R]) *Banner {
	if !p.shown.Load() {
		return nil
	}
	return fn(p.submitter.State())
}

// OnChange registers fn to run after every transition of either slot.
// Renderers that redraw on push use it instead of polling.
func (p *Panel[D, P, R]) OnChange(fn func()) {
	p.loader.Subscribe(func(slot.State[D]) { fn() })
	p.submitter.Subscribe(func(slot.State[R]) { fn() })
}
