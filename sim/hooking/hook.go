// Package hooking provides the observation mechanism used by the
// simulation. Any Hookable object can accept Hooks that get invoked at
// well-known points in that object's lifecycle, without the object itself
// depending on what the hook does with the information (statistics
// collection, tracing, debugging).
package hooking

// HookPos names a point in an object's execution where hooks may fire.
type HookPos struct {
	Name string
}

// HookPosTaskStart marks the beginning of a unit of work tracked for tracing.
var HookPosTaskStart = &HookPos{Name: "TaskStart"}

// HookPosTaskEnd marks the completion of a unit of work tracked for tracing.
var HookPosTaskEnd = &HookPos{Name: "TaskEnd"}

// HookPosTaskStep marks an intermediate, named step within a unit of work.
var HookPosTaskStep = &HookPos{Name: "TaskStep"}

// HookCtx carries the information about the site where a hook fired.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// TaskStart is the Item attached to a HookPosTaskStart context.
type TaskStart struct {
	ID       string
	ParentID string
	Kind     string
	What     string
}

// TaskEnd is the Item attached to a HookPosTaskEnd context.
type TaskEnd struct {
	ID string
}

// TaskStep is the Item attached to a HookPosTaskStep context.
type TaskStep struct {
	ID   string
	What string
}

// Hookable is implemented by anything that can accept observers.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	InvokeHook(ctx HookCtx)
}

// Hook is a short piece of program invoked by a Hookable at a HookPos.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase implements Hookable and can be embedded by any type that
// needs to be observable.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// NumHooks reports how many hooks are currently registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// InvokeHook calls every registered hook with ctx, in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}

// HookFunc adapts a plain function into a Hook.
type HookFunc func(ctx HookCtx)

// Func implements Hook.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}
