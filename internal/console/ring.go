package console

// Ring is a fixed-capacity byte buffer with a write position.
// Appending to a full Ring wraps the position to slot 0 and overwrites
// from there; the old contents are not cleared first.
type Ring struct {
	buf []byte
	pos int
}

// NewRing creates an empty ring holding capacity bytes.
func NewRing(capacity int) *Ring {
	return &Ring{buf: make([]byte, capacity)}
}

// Append writes c at the current position and advances it modulo the
// capacity.
func (r *Ring) Append(c byte) {
	r.buf[r.pos] = c
	r.pos = (r.pos + 1) % len(r.buf)
}

// Backspace removes the byte before the position and zeroes its slot.
// It reports false, changing nothing, when the position is 0.
func (r *Ring) Backspace() bool {
	if r.pos == 0 {
		return false
	}
	r.pos--
	r.buf[r.pos] = 0
	return true
}

// Reset zeroes every slot and moves the position to 0.
func (r *Ring) Reset() {
	clear(r.buf)
	r.pos = 0
}

// Len returns the write position, which is the logical length.
func (r *Ring) Len() int {
	return r.pos
}

// Cap returns the capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Bytes returns the logical contents. The slice aliases the ring and is
// valid until the next mutation.
func (r *Ring) Bytes() []byte {
	return r.buf[:r.pos]
}

// String returns a copy of the logical contents.
func (r *Ring) String() string {
	return string(r.buf[:r.pos])
}
