// Package mutate executes network-bound mutations optimistically: the
// caller applies a speculative local change first, then either commits the
// server's authoritative result or rolls back to the prior snapshot.
package mutate

// Notifier surfaces mutation outcomes to the user. UI layers plug in their
// toast/banner implementation; tests plug in a recorder.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier discards all notifications
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// genericErrorMessage is shown when a failing mutation supplies no message
const genericErrorMessage = "Something went wrong. Your change was not saved."

// Spec describes a single optimistic mutation attempt. The caller must have
// already applied OptimisticData to its local state before calling Execute;
// OnRollback must close over PreviousData and restore it verbatim.
type Spec[T any] struct {
	// MutationID correlates logs for one attempt. It is not an idempotency
	// key and is never sent to the server.
	MutationID string

	// Type tags the kind of change (e.g., "bill/create") for observability
	Type string

	// OptimisticData and PreviousData are opaque to the engine; they exist
	// so callers can log or inspect one attempt as a unit.
	OptimisticData any
	PreviousData   any

	// MutationFn performs the network call and returns the server's
	// authoritative result. It must be a zero-argument thunk; close over
	// a context for cancellation of the underlying request.
	MutationFn func() (T, error)

	// OnSuccess replaces the optimistic data with the authoritative result
	// in the caller's store. Required.
	OnSuccess func(T)

	// OnRollback restores the pre-mutation snapshot in the caller's store.
	// Required. Called with no arguments; it must close over PreviousData.
	OnRollback func()

	SuccessMessage string
	ErrorMessage   string
}

// Execute runs one optimistic mutation. On fulfillment it commits the
// authoritative result and returns (result, true). On rejection it rolls
// back, surfaces a single user-facing error, and returns (zero, false) —
// callers treat false as "mutation failed, already rolled back" and never
// see the underlying error as a panic or re-throw.
//
// After Execute settles, the caller's visible state is always either the
// server-confirmed value or the pre-mutation snapshot, never the
// optimistic-but-unconfirmed value. Panics from OnSuccess/OnRollback are
// programming errors and are not recovered.
//
// There is no retry, timeout, or MutationID-based dedup here; overlapping
// mutations against one entity are a caller-level race the caller must
// avoid (e.g., disable the triggering control while one is outstanding).
func Execute[T any](notifier Notifier, spec Spec[T]) (T, bool) {
	if notifier == nil {
		notifier = NopNotifier{}
	}

	result, err := spec.MutationFn()
	if err != nil {
		spec.OnRollback()

		message := spec.ErrorMessage
		if message == "" {
			message = genericErrorMessage
		}
		notifier.Error(message)

		var zero T
		return zero, false
	}

	spec.OnSuccess(result)
	if spec.SuccessMessage != "" {
		notifier.Success(spec.SuccessMessage)
	}

	return result, true
}
