package dropdown

import (
	"errors"
	"fmt"
)

// ErrOutsideWidget is matched by every UsageError.
var ErrOutsideWidget = errors.New("dropdown: part used outside of a Widget")

// UsageError is the panic value raised when a State is touched without a live
// Widget owning it. It is a programmer error and is never returned.
type UsageError struct {
	Op string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("dropdown: %s called outside of a Widget", e.Op)
}

func (e *UsageError) Is(target error) bool { return target == ErrOutsideWidget }

// State is the selection state shared by the parts of one Widget.
// Only New creates a usable State; the zero value fails fast.
type State struct {
	value    string
	open     bool
	disabled bool
	onChange func(string)
	bound    bool
	// mount counts panel lifetimes. Options remember the mount they came from.
	mount uint64
}

func (s *State) mustBeBound(op string) {
	if s == nil || !s.bound {
		panic(&UsageError{Op: op})
	}
}

func (s *State) Value() string {
	s.mustBeBound("Value")
	return s.value
}

func (s *State) Open() bool {
	s.mustBeBound("Open")
	return s.open
}

func (s *State) Disabled() bool {
	s.mustBeBound("Disabled")
	return s.disabled
}

// Toggle flips the open flag. It does nothing while disabled.
func (s *State) Toggle() {
	s.mustBeBound("Toggle")
	if s.disabled {
		return
	}
	s.open = !s.open
	s.mount++
}

// Select commits v, closes the panel and then notifies the change callback.
// Membership in the configured options is not checked.
func (s *State) Select(v string) {
	s.mustBeBound("Select")
	s.value = v
	s.open = false
	s.mount++
	s.onChange(v)
}

func (s *State) setDisabled(disabled bool) {
	s.mustBeBound("SetDisabled")
	s.disabled = disabled
	if disabled {
		s.open = false
	}
	s.mount++
}

// live reports whether an option mounted at mount may still be activated.
func (s *State) live(mount uint64) bool {
	s.mustBeBound("Activate")
	return s.open && !s.disabled && s.mount == mount
}

func (s *State) remount() {
	s.mustBeBound("SetOptions")
	s.mount++
}

func (s *State) setValue(v string) {
	s.mustBeBound("SetValue")
	s.value = v
}
