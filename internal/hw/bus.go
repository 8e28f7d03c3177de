package hw

import (
	"fmt"
	"sync"
)

// OpKind identifies a recorded bus operation.
type OpKind uint8

const (
	OpIn OpKind = iota
	OpOut
	OpDisable
	OpEnable
)

// String returns the operation mnemonic.
func (k OpKind) String() string {
	switch k {
	case OpIn:
		return "in"
	case OpOut:
		return "out"
	case OpDisable:
		return "cli"
	case OpEnable:
		return "sti"
	default:
		return fmt.Sprintf("op(%d)", k)
	}
}

// Op is one recorded bus operation.
type Op struct {
	Kind  OpKind
	Port  uint16
	Value byte
}

func (o Op) String() string {
	switch o.Kind {
	case OpIn, OpOut:
		return fmt.Sprintf("%s %#04x %#04x", o.Kind, o.Port, o.Value)
	default:
		return o.Kind.String()
	}
}

// Bus is a simulated port bus, interrupt controller and display memory.
// Reads are served from per-port queues, falling back to a per-port
// default value once a queue is drained. Every operation is recorded.
type Bus struct {
	mu sync.Mutex

	queued   map[uint16][]byte
	defaults map[uint16]byte
	onOut    func(b *Bus, port uint16, value byte)

	ops      []Op
	opLimit  int
	depth    int
	maxDepth int

	memory []byte
}

// NewBus creates a bus with memSize bytes of display memory.
func NewBus(memSize int) *Bus {
	return &Bus{
		queued:   make(map[uint16][]byte),
		defaults: make(map[uint16]byte),
		memory:   make([]byte, memSize),
	}
}

// SetOpLimit keeps only the most recent n operations in the log. Zero
// keeps everything.
func (b *Bus) SetOpLimit(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opLimit = n
	b.trim()
}

func (b *Bus) record(op Op) {
	b.ops = append(b.ops, op)
	b.trim()
}

func (b *Bus) trim() {
	if b.opLimit > 0 && len(b.ops) > b.opLimit {
		b.ops = append(b.ops[:0], b.ops[len(b.ops)-b.opLimit:]...)
	}
}

// SetDefault sets the value returned by reads of port once its queue is
// empty.
func (b *Bus) SetDefault(port uint16, value byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.defaults[port] = value
}

// Queue appends values to be returned by successive reads of port.
func (b *Bus) Queue(port uint16, values ...byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue(port, values...)
}

func (b *Bus) queue(port uint16, values ...byte) {
	b.queued[port] = append(b.queued[port], values...)
}

// OnOut installs a hook run after every OutByte. The hook may call
// QueueLocked to emulate a device reply.
func (b *Bus) OnOut(fn func(b *Bus, port uint16, value byte)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onOut = fn
}

// QueueLocked is Queue for use inside an OnOut hook, where the bus lock
// is already held.
func (b *Bus) QueueLocked(port uint16, values ...byte) {
	b.queue(port, values...)
}

// InByte implements Ports.
func (b *Bus) InByte(port uint16) byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := b.defaults[port]
	if q := b.queued[port]; len(q) > 0 {
		v = q[0]
		b.queued[port] = q[1:]
	}
	b.record(Op{Kind: OpIn, Port: port, Value: v})
	return v
}

// OutByte implements Ports.
func (b *Bus) OutByte(port uint16, value byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record(Op{Kind: OpOut, Port: port, Value: value})
	if b.onOut != nil {
		b.onOut(b, port, value)
	}
}

// Disable implements Interrupts.
func (b *Bus) Disable() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.depth++
	b.maxDepth = max(b.maxDepth, b.depth)
	b.record(Op{Kind: OpDisable})
}

// Enable implements Interrupts.
func (b *Bus) Enable() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.depth > 0 {
		b.depth--
	}
	b.record(Op{Kind: OpEnable})
}

// InterruptsEnabled reports whether every Disable has been matched by an
// Enable.
func (b *Bus) InterruptsEnabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.depth == 0
}

// WriteAt implements io.WriterAt over the display memory.
func (b *Bus) WriteAt(p []byte, off int64) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if off < 0 || off+int64(len(p)) > int64(len(b.memory)) {
		return 0, fmt.Errorf("write of %d bytes at %d outside %d-byte display memory", len(p), off, len(b.memory))
	}
	return copy(b.memory[off:], p), nil
}

// Memory returns a copy of the display memory.
func (b *Bus) Memory() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]byte, len(b.memory))
	copy(out, b.memory)
	return out
}

// Ops returns a copy of the recorded operations.
func (b *Bus) Ops() []Op {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Op, len(b.ops))
	copy(out, b.ops)
	return out
}

// Outs returns only the recorded OutByte operations.
func (b *Bus) Outs() []Op {
	var out []Op
	for _, op := range b.Ops() {
		if op.Kind == OpOut {
			out = append(out, op)
		}
	}
	return out
}

// Reset clears the operation log.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = nil
	b.maxDepth = b.depth
}

// EmulateKeyboardController makes the bus acknowledge every byte
// written to the keyboard data port, like a healthy controller.
func (b *Bus) EmulateKeyboardController() {
	b.OnOut(func(b *Bus, port uint16, _ byte) {
		if port == KBData {
			b.QueueLocked(KBData, KBAck)
		}
	})
}
