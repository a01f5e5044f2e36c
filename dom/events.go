package dom

// CancelFunc removes a previously registered handler. Safe to call more
// than once.
type CancelFunc func()

// Events is the host-supplied event capability. The engine only needs three
// signals: a form-level submit, a click on an arbitrary target, and "a new
// candidate subtree appeared" for dynamically built pages. How a platform
// produces these (native submit events, MutationObserver batches,
// accessibility callbacks) is the adapter's business.
//
// Handlers run synchronously on the host's event tick, in registration
// order. Adapters must not replay historical structural changes to a newly
// registered OnAdded handler.
type Events interface {
	OnSubmit(fn func(form Element)) CancelFunc
	OnClick(fn func(target Element)) CancelFunc
	OnAdded(fn func(root Element)) CancelFunc
}
