package kbd

import (
	"context"

	"github.com/dshills/vgacon/internal/hw"
)

// DefaultMaxPolls bounds each wait in the handshake.
const DefaultMaxPolls = 100000

// Controller implements Indicator over the keyboard controller ports.
type Controller struct {
	ports    hw.Ports
	maxPolls int
	leds     LEDs
}

// Option configures a Controller.
type Option func(*Controller)

// WithMaxPolls sets the number of status reads allowed per wait.
// Zero waits until the controller answers or the context ends.
func WithMaxPolls(n int) Option {
	return func(c *Controller) {
		c.maxPolls = n
	}
}

// NewController creates a Controller on the given ports.
func NewController(ports hw.Ports, opts ...Option) *Controller {
	c := &Controller{
		ports:    ports,
		maxPolls: DefaultMaxPolls,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LEDs returns the bitmap last acknowledged by the controller.
func (c *Controller) LEDs() LEDs {
	return c.leds
}

// SetCapsLock sets or clears the Caps-Lock light, leaving the other
// lights as they were.
func (c *Controller) SetCapsLock(ctx context.Context, on bool) error {
	leds := c.leds &^ LEDCapsLock
	if on {
		leds |= LEDCapsLock
	}

	if err := c.send(ctx, hw.KBSetLEDs); err != nil {
		return &IndicatorError{Step: "command", On: on, Err: err}
	}
	if err := c.send(ctx, byte(leds)); err != nil {
		return &IndicatorError{Step: "leds", On: on, Err: err}
	}
	c.leds = leds
	return nil
}

// send writes one byte to the data port once the input buffer is empty
// and waits for the acknowledgment.
func (c *Controller) send(ctx context.Context, b byte) error {
	err := c.poll(ctx, ErrBusy, func() bool {
		return c.ports.InByte(hw.KBCmd)&hw.KBInputFull == 0
	})
	if err != nil {
		return err
	}

	c.ports.OutByte(hw.KBData, b)

	return c.poll(ctx, ErrAckTimeout, func() bool {
		return c.ports.InByte(hw.KBData) == hw.KBAck
	})
}

// poll calls done until it reports true, the budget runs out (exhausted
// is returned) or ctx ends.
func (c *Controller) poll(ctx context.Context, exhausted error, done func() bool) error {
	for n := 0; c.maxPolls == 0 || n < c.maxPolls; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if done() {
			return nil
		}
	}
	return exhausted
}
