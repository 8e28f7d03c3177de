package backend

import (
	"io"
	"sync"

	"github.com/dshills/vgacon/internal/hw"
	"github.com/dshills/vgacon/internal/renderer/core"
)

// VGA implements Backend on text-mode display memory and the CRT
// controller cursor registers.
type VGA struct {
	mem   io.WriterAt
	ports hw.Ports
	irq   hw.Interrupts

	width, height int

	mu  sync.Mutex
	err error
}

// NewVGA creates a backend writing frames to mem and the cursor through
// ports. irq brackets the cursor register writes.
func NewVGA(mem io.WriterAt, ports hw.Ports, irq hw.Interrupts, width, height int) *VGA {
	return &VGA{
		mem:    mem,
		ports:  ports,
		irq:    irq,
		width:  width,
		height: height,
	}
}

func (v *VGA) Init() error { return nil }
func (v *VGA) Shutdown()   {}
func (v *VGA) Show()       {}

func (v *VGA) Size() (int, int) {
	return v.width, v.height
}

// Draw writes the frame in display layout to offset 0 of the display
// memory. A failed write is kept for Err.
func (v *VGA) Draw(frame *core.Frame) {
	if _, err := v.mem.WriteAt(frame.Bytes(), 0); err != nil {
		v.mu.Lock()
		v.err = err
		v.mu.Unlock()
	}
}

// SetCursor writes the offset high byte then low byte to the CRT
// controller with interrupts disabled, so the pair is never split.
func (v *VGA) SetCursor(offset int) {
	v.irq.Disable()
	defer v.irq.Enable()

	v.ports.OutByte(hw.CRTCAddrReg, hw.CursorHigh)
	v.ports.OutByte(hw.CRTCDataReg, byte(offset>>8))
	v.ports.OutByte(hw.CRTCAddrReg, hw.CursorLow)
	v.ports.OutByte(hw.CRTCDataReg, byte(offset))
}

// Err returns the last display memory write error, if any.
func (v *VGA) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}
