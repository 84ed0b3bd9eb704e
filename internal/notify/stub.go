//go:build !linux

package notify

// New returns a no-op notifier. Listen notifications are only sent over the
// freedesktop D-Bus interface.
func New() (Notifier, error) {
	log.Infow("desktop notifications unavailable on this platform")
	return nopNotifier{}, nil
}
