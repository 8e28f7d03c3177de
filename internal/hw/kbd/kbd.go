// Package kbd drives the keyboard indicator lights.
//
// Setting an LED is a two-step handshake with the keyboard controller:
// send the set-LEDs command, wait for an acknowledgment, send the LED
// bitmap, wait again. The controller may never answer, so every wait is
// bounded by a poll budget and by the caller's context.
package kbd

import (
	"context"
	"errors"
	"fmt"
)

// Indicator sets the Caps-Lock indicator light.
type Indicator interface {
	SetCapsLock(ctx context.Context, on bool) error
}

// IndicatorFunc adapts a function to the Indicator interface.
type IndicatorFunc func(ctx context.Context, on bool) error

// SetCapsLock calls f(ctx, on).
func (f IndicatorFunc) SetCapsLock(ctx context.Context, on bool) error {
	return f(ctx, on)
}

// Nop is an Indicator with no light to drive.
type Nop struct{}

// SetCapsLock does nothing.
func (Nop) SetCapsLock(context.Context, bool) error { return nil }

// LEDs is the bitmap sent after the set-LEDs command.
type LEDs byte

const (
	LEDScrollLock LEDs = 1 << iota
	LEDNumLock
	LEDCapsLock
)

// Has returns true if l has every bit of led set.
func (l LEDs) Has(led LEDs) bool {
	return l&led == led
}

// ErrAckTimeout is returned when the controller does not acknowledge
// within the poll budget.
var ErrAckTimeout = errors.New("keyboard controller did not acknowledge")

// ErrBusy is returned when the controller input buffer never drains.
var ErrBusy = errors.New("keyboard controller input buffer full")

// IndicatorError describes a failed handshake step.
type IndicatorError struct {
	Step string // "command", "leds"
	On   bool   // requested Caps-Lock state
	Err  error
}

func (e *IndicatorError) Error() string {
	return fmt.Sprintf("set caps-lock indicator %v: %s: %v", e.On, e.Step, e.Err)
}

func (e *IndicatorError) Unwrap() error {
	return e.Err
}
