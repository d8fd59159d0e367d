package client

// Notifier receives the outcome of submitted transactions. A UI would show
// these as toasts; the wallet CLI prints them.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// =============================================================================

// nopNotifier is used when the caller doesn't provide a notifier.
type nopNotifier struct{}

func (nopNotifier) Success(msg string) {}
func (nopNotifier) Error(msg string)   {}
