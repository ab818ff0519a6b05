package ulog

import "math"

// Arg is a logged argument already coerced to one of the closed set
// of wire types this package supports. The only way to produce one is
// through the typed constructors below (U8, S8, Bool, ...), which is
// what makes the argument-type restriction a compile-time property:
// there is no conversion path from an arbitrary Go value into Arg.
type Arg interface {
	trait() ArgTrait
	chunks(maxStrLen int) [][]byte
}

type (
	u8Arg    uint8
	s8Arg    int8
	boolArg  bool
	u16Arg   uint16
	s16Arg   int16
	ptr16Arg uint16
	u32Arg   uint32
	s32Arg   int32
	f32Arg   float32
	strArg   string
)

// U8 wraps an unsigned 8-bit argument.
func U8(v uint8) Arg { return u8Arg(v) }

// S8 wraps a signed 8-bit argument.
func S8(v int8) Arg { return s8Arg(v) }

// Bool wraps a boolean argument, encoded as a single byte.
func Bool(v bool) Arg { return boolArg(v) }

// U16 wraps an unsigned 16-bit argument.
func U16(v uint16) Arg { return u16Arg(v) }

// S16 wraps a signed 16-bit argument.
func S16(v int16) Arg { return s16Arg(v) }

// Ptr16 wraps a raw 16-bit address-sized argument, for targets where
// a pointer fits in two bytes.
func Ptr16(v uint16) Arg { return ptr16Arg(v) }

// U32 wraps an unsigned 32-bit argument.
func U32(v uint32) Arg { return u32Arg(v) }

// S32 wraps a signed 32-bit argument.
func S32(v int32) Arg { return s32Arg(v) }

// Float32 wraps a 32-bit floating point argument, sent as its
// IEEE-754 bit pattern.
func Float32(v float32) Arg { return f32Arg(v) }

// Str wraps a string argument. Strings longer than the engine's
// configured MaxStrLen are truncated on the wire; see chunks below.
func Str(v string) Arg { return strArg(v) }

func (a u8Arg) trait() ArgTrait    { return TraitU8 }
func (a s8Arg) trait() ArgTrait    { return TraitS8 }
func (a boolArg) trait() ArgTrait  { return TraitBool }
func (a u16Arg) trait() ArgTrait   { return TraitU16 }
func (a s16Arg) trait() ArgTrait   { return TraitS16 }
func (a ptr16Arg) trait() ArgTrait { return TraitPtr16 }
func (a u32Arg) trait() ArgTrait   { return TraitU32 }
func (a s32Arg) trait() ArgTrait   { return TraitS32 }
func (a f32Arg) trait() ArgTrait   { return TraitFloat32 }
func (a strArg) trait() ArgTrait   { return TraitStr }

func (a u8Arg) chunks(int) [][]byte   { return [][]byte{{byte(a)}} }
func (a s8Arg) chunks(int) [][]byte   { return [][]byte{{byte(a)}} }
func (a boolArg) chunks(int) [][]byte {
	if a {
		return [][]byte{{1}}
	}
	return [][]byte{{0}}
}

func (a u16Arg) chunks(int) [][]byte {
	return [][]byte{{byte(a), byte(a >> 8)}}
}

func (a s16Arg) chunks(int) [][]byte {
	v := uint16(a)
	return [][]byte{{byte(v), byte(v >> 8)}}
}

func (a ptr16Arg) chunks(int) [][]byte {
	return [][]byte{{byte(a), byte(a >> 8)}}
}

func (a u32Arg) chunks(int) [][]byte {
	return [][]byte{{byte(a), byte(a >> 8), byte(a >> 16), byte(a >> 24)}}
}

func (a s32Arg) chunks(int) [][]byte {
	v := uint32(a)
	return [][]byte{{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}}
}

func (a f32Arg) chunks(int) [][]byte {
	v := math.Float32bits(float32(a))
	return [][]byte{{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}}
}

// chunks splits the string into packets of up to four data bytes,
// preserving byte order, followed by a zero terminator. When the
// string exceeds maxStrLen it is cut to that length and a final
// chunk carrying the literal marker `.`, `.`, `.`, 0 replaces the
// normal terminator.
func (a strArg) chunks(maxStrLen int) [][]byte {
	data := []byte(a)
	truncated := len(data) > maxStrLen
	if truncated {
		data = data[:maxStrLen]
	}

	var out [][]byte
	for i := 0; i < len(data); i += 4 {
		end := i + 4
		if end > len(data) {
			end = len(data)
		}
		chunk := make([]byte, end-i)
		copy(chunk, data[i:end])
		out = append(out, chunk)
	}

	if truncated {
		return append(out, []byte{'.', '.', '.', 0})
	}
	if n := len(out); n > 0 && len(out[n-1]) < 4 {
		out[n-1] = append(out[n-1], 0)
		return out
	}
	return append(out, []byte{0})
}

// traitsOf and flattenChunks turn a fixed-arity argument list into
// the typecode and ordered data chunks a call site's packets are
// built from.

func traitsOf(args []Arg) []ArgTrait {
	traits := make([]ArgTrait, len(args))
	for i, a := range args {
		traits[i] = a.trait()
	}
	return traits
}

func flattenChunks(args []Arg, maxStrLen int) [][]byte {
	var chunks [][]byte
	for _, a := range args {
		chunks = append(chunks, a.chunks(maxStrLen)...)
	}
	if len(chunks) == 0 {
		// Arity 0: packet 0 still exists, carrying zero data bytes.
		chunks = [][]byte{nil}
	}
	return chunks
}

// buildPackets assembles the in-memory packets for one log call: the
// first carries CONTINUATION=0, every subsequent one CONTINUATION=1,
// regardless of which argument (or which chunk of a string argument)
// it came from.
func buildPackets(id uint16, args []Arg, maxStrLen int) []packet {
	chunks := flattenChunks(args, maxStrLen)
	packets := make([]packet, len(chunks))
	for i, c := range chunks {
		pid := id
		if i > 0 {
			pid |= idContinuation
		}
		p := packet{id: pid, n: uint8(len(c))}
		copy(p.data[:], c)
		packets[i] = p
	}
	return packets
}

// Log0 logs a call with no arguments.
func Log0(site *CallSite, level Level, format string) {
	emit(site, level, format, nil)
}

// Log1 logs a call with one argument.
func Log1(site *CallSite, level Level, format string, a0 Arg) {
	emit(site, level, format, []Arg{a0})
}

// Log2 logs a call with two arguments.
func Log2(site *CallSite, level Level, format string, a0, a1 Arg) {
	emit(site, level, format, []Arg{a0, a1})
}

// Log3 logs a call with three arguments.
func Log3(site *CallSite, level Level, format string, a0, a1, a2 Arg) {
	emit(site, level, format, []Arg{a0, a1, a2})
}

// Log4 logs a call with four arguments.
func Log4(site *CallSite, level Level, format string, a0, a1, a2, a3 Arg) {
	emit(site, level, format, []Arg{a0, a1, a2, a3})
}

// Log5 logs a call with five arguments.
func Log5(site *CallSite, level Level, format string, a0, a1, a2, a3, a4 Arg) {
	emit(site, level, format, []Arg{a0, a1, a2, a3, a4})
}

// Log6 logs a call with six arguments.
func Log6(site *CallSite, level Level, format string, a0, a1, a2, a3, a4, a5 Arg) {
	emit(site, level, format, []Arg{a0, a1, a2, a3, a4, a5})
}

// Log7 logs a call with seven arguments.
func Log7(site *CallSite, level Level, format string, a0, a1, a2, a3, a4, a5, a6 Arg) {
	emit(site, level, format, []Arg{a0, a1, a2, a3, a4, a5, a6})
}

// Log8 logs a call with eight arguments, the largest arity a 32-bit
// typecode can carry at four bits per argument.
func Log8(site *CallSite, level Level, format string, a0, a1, a2, a3, a4, a5, a6, a7 Arg) {
	emit(site, level, format, []Arg{a0, a1, a2, a3, a4, a5, a6, a7})
}

// emit is the shared path every LogN funnels through: a level check
// happens before the call site ever registers, so a call permanently
// excluded by the engine's threshold never allocates a record and
// never reaches the queue.
func emit(site *CallSite, level Level, format string, args []Arg) {
	e := currentEngine()
	if e == nil || !e.Enabled(level) {
		return
	}
	typecode := encodeTypecode(traitsOf(args))
	id := site.ensure(level, format, typecode)
	e.enqueueCall(buildPackets(id, args, e.maxStrLen))
}
