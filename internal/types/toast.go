package types

import "time"

// ToastLevel is the severity of a dashboard notification
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// String returns the display string
func (l ToastLevel) String() string {
	switch l {
	case ToastInfo:
		return "info"
	case ToastSuccess:
		return "success"
	case ToastWarning:
		return "warning"
	case ToastError:
		return "error"
	default:
		return "unknown"
	}
}

// Toast is a short-lived notification shown above the status bar
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// Expired reports whether the toast should no longer be shown at now
func (t Toast) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}
