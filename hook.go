package pagesim

// HookPos enumerates the points in the simulation loop at which a Hook may
// be invoked. Mirrors the position-tagged hook mechanism used throughout
// the sarchlab/akita component model, narrowed to the events a paging
// coordinator actually produces.
type HookPos int

// The positions a Hook can be registered against. AnyPos matches every
// invocation regardless of position.
const (
	AnyPos HookPos = iota
	BeforeTick
	OnAdmit
	OnReap
	OnHit
	OnFaultRecorded
	OnFaultServiced
	OnEvict
	OnSnapshot
)

// HookCtx carries the payload passed to a Hook.Func call.
type HookCtx struct {
	Pos  HookPos
	Now  Clock
	Item interface{}
}

// Hook is a short piece of program invoked by a Hookable object at a
// registered position.
type Hook interface {
	Pos() HookPos
	Func(ctx HookCtx)
}

// Hookable defines an object that accepts hooks.
type Hookable interface {
	AcceptHook(h Hook)
	InvokeHook(ctx HookCtx)
}

// HookableBase provides a reusable implementation of Hookable.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// InvokeHook runs every hook registered for ctx.Pos, plus every hook
// registered for AnyPos.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		if hook.Pos() == AnyPos || hook.Pos() == ctx.Pos {
			hook.Func(ctx)
		}
	}
}

// HookFunc adapts a plain function into a Hook fixed at one position.
type HookFunc struct {
	At HookPos
	Fn func(ctx HookCtx)
}

// Pos returns the position the hook is fixed to.
func (h HookFunc) Pos() HookPos { return h.At }

// Func invokes the wrapped function.
func (h HookFunc) Func(ctx HookCtx) { h.Fn(ctx) }
