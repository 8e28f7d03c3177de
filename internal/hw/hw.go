// Package hw defines the hardware capabilities the console drives.
//
// The console never touches ports or memory directly. It is handed a
// Ports implementation for register I/O, an Interrupts implementation
// for the short critical sections around multi-register updates, and an
// io.WriterAt for the text-mode display memory. Bus is a simulated
// implementation of all three used by tests and headless sessions.
package hw

// Ports performs byte-wide port I/O.
type Ports interface {
	InByte(port uint16) byte
	OutByte(port uint16, value byte)
}

// Interrupts masks and unmasks interrupts on the current CPU.
type Interrupts interface {
	Disable()
	Enable()
}

// CRT controller registers used to place the text cursor.
const (
	CRTCAddrReg uint16 = 0x3D4
	CRTCDataReg uint16 = 0x3D5

	// Register indices written to CRTCAddrReg.
	CursorHigh byte = 0x0E
	CursorLow  byte = 0x0F
)

// Keyboard controller ports and protocol bytes.
const (
	KBData uint16 = 0x60
	KBCmd  uint16 = 0x64

	// KBInputFull is the status bit set while the controller input
	// buffer holds an unread byte.
	KBInputFull byte = 0x02

	// KBSetLEDs is the command byte that precedes an LED bitmap.
	KBSetLEDs byte = 0xED

	// KBAck is the controller's acknowledgment byte.
	KBAck byte = 0xFA
)

// Text-mode display memory.
const (
	VideoBase uintptr = 0xB8000
)
