package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/vgacon/internal/hw"
	"github.com/dshills/vgacon/internal/input/key"
	"github.com/dshills/vgacon/internal/renderer/core"
)

func TestNullBackendDraw(t *testing.T) {
	b := NewNullBackend(80, 25)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 25 {
		t.Errorf("expected size (80, 25), got (%d, %d)", w, h)
	}

	f := core.NewFrame(80, 25, core.AttrDefault)
	f.Set(0, 0, core.Cell{Glyph: 'h', Attr: core.AttrDefault})
	f.Set(0, 1, core.Cell{Glyph: 'i', Attr: core.AttrHighlight})
	b.Draw(f)
	b.SetCursor(2)
	b.Show()

	got := b.Frame()
	if got.Line(0) != "hi" {
		t.Errorf("Line(0) = %q, want %q", got.Line(0), "hi")
	}
	if got.Cursor != 2 || b.Cursor() != 2 {
		t.Errorf("cursor = %d/%d, want 2", got.Cursor, b.Cursor())
	}
	if b.Draws() != 1 || b.Shows() != 1 {
		t.Errorf("draws/shows = %d/%d, want 1/1", b.Draws(), b.Shows())
	}

	// The backend keeps its own copy.
	f.Set(0, 0, core.Cell{Glyph: 'X'})
	if b.Frame().Line(0) != "hi" {
		t.Error("backend frame should not alias the drawn frame")
	}
}

func TestNullBackendPollKey(t *testing.T) {
	b := NewNullBackend(80, 25)
	b.PostKey(key.NewCharEvent('a'))

	ev, err := b.PollKey(context.Background())
	if err != nil {
		t.Fatalf("PollKey: %v", err)
	}
	if ev != key.NewCharEvent('a') {
		t.Errorf("PollKey = %+v", ev)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := b.PollKey(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("PollKey on empty queue = %v, want deadline exceeded", err)
	}

	b.Shutdown()
	b.Shutdown() // idempotent
	if _, err := b.PollKey(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("PollKey after shutdown = %v, want ErrClosed", err)
	}
}

func TestVGADraw(t *testing.T) {
	bus := hw.NewBus(80 * 25 * 2)
	v := NewVGA(bus, bus, bus, 80, 25)

	f := core.NewFrame(80, 25, core.AttrDefault)
	f.Set(1, 0, core.Cell{Glyph: 'z', Attr: core.AttrHighlight})
	v.Draw(f)

	mem := bus.Memory()
	if len(mem) != 4000 {
		t.Fatalf("memory size = %d", len(mem))
	}
	if diff := cmp.Diff(f.Bytes(), mem); diff != "" {
		t.Errorf("memory mismatch (-want +got):\n%s", diff)
	}
	if mem[160] != 'z' || mem[161] != byte(core.AttrHighlight) {
		t.Errorf("cell (1,0) = %q/%#x", mem[160], mem[161])
	}
	if v.Err() != nil {
		t.Errorf("Err = %v", v.Err())
	}
}

func TestVGADrawTooSmall(t *testing.T) {
	bus := hw.NewBus(10)
	v := NewVGA(bus, bus, bus, 80, 25)
	v.Draw(core.NewFrame(80, 25, core.AttrDefault))
	if v.Err() == nil {
		t.Error("expected an error writing past display memory")
	}
}

func TestVGASetCursor(t *testing.T) {
	bus := hw.NewBus(0)
	v := NewVGA(bus, bus, bus, 80, 25)

	v.SetCursor(1999) // 0x07CF

	want := []hw.Op{
		{Kind: hw.OpDisable},
		{Kind: hw.OpOut, Port: hw.CRTCAddrReg, Value: hw.CursorHigh},
		{Kind: hw.OpOut, Port: hw.CRTCDataReg, Value: 0x07},
		{Kind: hw.OpOut, Port: hw.CRTCAddrReg, Value: hw.CursorLow},
		{Kind: hw.OpOut, Port: hw.CRTCDataReg, Value: 0xCF},
		{Kind: hw.OpEnable},
	}
	if diff := cmp.Diff(want, bus.Ops()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if !bus.InterruptsEnabled() {
		t.Error("interrupts left disabled")
	}
}
