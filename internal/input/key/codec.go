package key

// Raw code layout used by PC keyboard decoders: the low nine bits hold
// the character or control code, the bits above carry flags.
const (
	FlagBreak  uint32 = 0x0080
	FlagExt    uint32 = 0x0100
	FlagShiftL uint32 = 0x0200
	FlagShiftR uint32 = 0x0400
	FlagCtrlL  uint32 = 0x0800
	FlagCtrlR  uint32 = 0x1000
	FlagAltL   uint32 = 0x2000
	FlagAltR   uint32 = 0x4000
	FlagPad    uint32 = 0x8000

	MaskRaw uint32 = 0x01FF
)

// Raw codes for the control keys the console reacts to.
const (
	CodeEscape    = 0x01 | FlagExt
	CodeTab       = 0x02 | FlagExt
	CodeEnter     = 0x03 | FlagExt
	CodeBackspace = 0x04 | FlagExt
	CodeCapsLock  = 0x0E | FlagExt
)

var extKeys = map[uint32]Key{
	CodeEscape:     KeyEscape,
	CodeTab:        KeyTab,
	CodeEnter:      KeyEnter,
	CodeBackspace:  KeyBackspace,
	0x08 | FlagExt: KeyShiftL,
	0x09 | FlagExt: KeyShiftR,
	0x0A | FlagExt: KeyCtrlL,
	0x0B | FlagExt: KeyCtrlR,
	0x0C | FlagExt: KeyAltL,
	0x0D | FlagExt: KeyAltR,
	CodeCapsLock:   KeyCapsLock,
	0x0F | FlagExt: KeyNumLock,
	0x10 | FlagExt: KeyScrollLock,
	0x25 | FlagExt: KeyUp,
	0x26 | FlagExt: KeyDown,
	0x27 | FlagExt: KeyLeft,
	0x28 | FlagExt: KeyRight,
}

var extCodes = func() map[Key]uint32 {
	m := make(map[Key]uint32, len(extKeys)+12)
	for code, k := range extKeys {
		m[k] = code
	}
	for i := Key(0); i < 12; i++ {
		m[KeyF1+i] = (0x11 + uint32(i)) | FlagExt
	}
	return m
}()

// Decode converts a packed raw code into an Event.
// Extended codes without a Key of their own decode to KeyNone with
// Extended set, so the console treats them as no-ops.
func Decode(code uint32) Event {
	ev := Event{Modifiers: decodeModifiers(code)}
	raw := code & MaskRaw
	if raw&FlagExt == 0 {
		ev.Key = KeyRune
		ev.Char = byte(raw)
		return ev
	}

	ev.Extended = true
	if k, ok := extKeys[raw]; ok {
		ev.Key = k
	} else if raw >= 0x11|FlagExt && raw <= 0x1C|FlagExt {
		ev.Key = KeyF1 + Key(raw-(0x11|FlagExt))
	}
	return ev
}

// Encode packs the event into a raw code. Decode(e.Encode()) == e for
// every event Decode can produce.
func (e Event) Encode() uint32 {
	code := encodeModifiers(e.Modifiers)
	if !e.Extended {
		return code | uint32(e.Char)
	}
	if c, ok := extCodes[e.Key]; ok {
		return code | c
	}
	return code | FlagExt
}

func decodeModifiers(code uint32) Modifier {
	var m Modifier
	if code&(FlagShiftL|FlagShiftR) != 0 {
		m = m.With(ModShift)
	}
	if code&(FlagCtrlL|FlagCtrlR) != 0 {
		m = m.With(ModCtrl)
	}
	if code&(FlagAltL|FlagAltR) != 0 {
		m = m.With(ModAlt)
	}
	return m
}

func encodeModifiers(m Modifier) uint32 {
	var code uint32
	if m.Has(ModShift) {
		code |= FlagShiftL
	}
	if m.Has(ModCtrl) {
		code |= FlagCtrlL
	}
	if m.Has(ModAlt) {
		code |= FlagAltL
	}
	return code
}
