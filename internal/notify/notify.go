// package notify implements the user-facing notification channel.
//
// Components emit toasts instead of returning presentation text; the CLI and
// TUI subscribe and decide how to display them.
package notify

import (
	"fmt"
	"time"
)

// Level classifies a toast for display.
type Level int

const (
	Success Level = iota
	Error
	Info
	Warning
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Error:
		return "error"
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return ""
	}
}

// Display durations per level.
const (
	SuccessDuration = 3 * time.Second
	ErrorDuration   = 5 * time.Second
	InfoDuration    = 3 * time.Second
	WarningDuration = 4 * time.Second
)

// Toast is a single user-facing message with a display duration.
type Toast struct {
	ID       int
	Message  string
	Level    Level
	Duration time.Duration
}

// Center collects pending toasts and publishes them to subscribers
// synchronously. All methods are called from the UI goroutine; no locking.
type Center struct {
	nextID      int
	toasts      []Toast
	subscribers []func(Toast)
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{}
}

// Subscribe registers fn to be invoked synchronously for every new toast.
func (c *Center) Subscribe(fn func(Toast)) {
	c.subscribers = append(c.subscribers, fn)
}

// Toasts returns the pending toasts, oldest first.
func (c *Center) Toasts() []Toast {
	return c.toasts
}

// Dismiss removes the toast with the given id.
func (c *Center) Dismiss(id int) {
	for i, toast := range c.toasts {
		if toast.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}

// Successf adds a success toast.
func (c *Center) Successf(format string, args ...any) Toast {
	return c.push(Success, SuccessDuration, format, args)
}

// Errorf adds an error toast.
func (c *Center) Errorf(format string, args ...any) Toast {
	return c.push(Error, ErrorDuration, format, args)
}

// Infof adds an info toast.
func (c *Center) Infof(format string, args ...any) Toast {
	return c.push(Info, InfoDuration, format, args)
}

// Warningf adds a warning toast.
func (c *Center) Warningf(format string, args ...any) Toast {
	return c.push(Warning, WarningDuration, format, args)
}

func (c *Center) push(level Level, d time.Duration, format string, args []any) Toast {
	c.nextID++
	toast := Toast{
		ID:       c.nextID,
		Message:  fmt.Sprintf(format, args...),
		Level:    level,
		Duration: d,
	}
	c.toasts = append(c.toasts, toast)
	for _, fn := range c.subscribers {
		fn(toast)
	}
	return toast
}
