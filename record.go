package ulog

import (
	"runtime"
	"sync"
	"unsafe"
)

const (
	// RecordSize is the fixed size, in bytes, of every metadata
	// record. Records are aligned on RecordSize boundaries so a
	// callsite identifier is derivable from a record's address by a
	// single right shift.
	RecordSize = 256

	// maxFileLen and maxFmtLen bound the inline, null-terminated
	// strings a record carries; both are one byte short of their
	// backing arrays to always leave room for the terminator.
	maxFileLen = 115
	maxFmtLen  = 127

	// RegionCapacity bounds the number of distinct call sites this
	// process can register. It is derived from the 15 usable bits of
	// the wire identifier (bit 15 is the continuation flag, and the
	// top two remaining values are reserved for control frames) —
	// see idStart/idOverrun in frame.go.
	RegionCapacity = 1<<15 - 2
)

// Record is the fixed-layout, 256-byte metadata record emitted once
// per surviving call site: severity, source line, argument type
// signature, source file, and format string. Records are immortal —
// born the first time their call site executes, never freed — and
// read-only from every perspective except the one registration that
// creates them.
// Field order matters here: the two uint32s come first so neither
// needs implicit alignment padding before it, and every field after
// Level has 1-byte alignment, so the trailing blank field below is
// the only padding in the struct.
type Record struct {
	Line     uint32
	Typecode uint32
	Level    Level
	File     [maxFileLen + 1]byte
	Format   [maxFmtLen + 1]byte
	_        [RecordSize - 4 - 4 - 1 - (maxFileLen + 1) - (maxFmtLen + 1)]byte
}

// Compile-time assertion that Record is exactly RecordSize bytes;
// a mismatch here fails the build, the nearest Go analogue of the
// original's `__attribute__((packed, aligned(256)))`.
var _ [RecordSize]byte = [unsafe.Sizeof(Record{})]byte{}

// region is the dedicated, contiguous store of metadata records —
// this port's analogue of the original's non-loadable `.logs` ELF
// section. Go has no link-time custom section and no way to make an
// array "not loaded at runtime" on a hosted target, so the record
// table costs (RegionCapacity+1)*RecordSize bytes of process memory
// here: one record's worth of slack in regionMem lets region start on
// a RecordSize boundary, which a plain Go array does not guarantee;
// embedded ports with a true linker-section facility should replace
// this file wholesale rather than shrink RegionCapacity, per the
// design notes on targets lacking the facility.
var (
	regionMu   sync.Mutex
	regionMem  [(RegionCapacity + 1) * RecordSize]byte
	region     = (*[RegionCapacity]Record)(unsafe.Pointer(&regionMem[(RecordSize-uintptr(unsafe.Pointer(&regionMem))%RecordSize)%RecordSize]))
	regionNext int
)

// CallSite holds the one-time registration state for a single,
// textual invocation of a LogN function. Declare one as a
// package-level var per call site:
//
//	var helloSite ulog.CallSite
//
//	func greet() {
//	    ulog.Log0(&helloSite, ulog.LevelInfo, "hello")
//	}
//
// The first call through a given CallSite registers its metadata
// record and derives its dense callsite identifier; every subsequent
// call through the same CallSite reuses the cached identifier at
// near-zero cost.
type CallSite struct {
	once sync.Once
	id   uint16
}

// ensure registers site's metadata record on first use and returns
// its callsite identifier. Go has no compile-time __FILE__/__LINE__,
// so runtime.Caller stands in for it; it runs on every call, not just
// the first, because its skip count is only valid relative to this
// package's own fixed call depth (user code -> LogN -> emit ->
// ensure) and would be fragile to compute from inside the sync.Once
// closure, whose own internal frame count is not part of any API
// contract. Registration itself — the part that actually costs a
// lock and a struct write — still runs at most once per call site.
func (site *CallSite) ensure(level Level, format string, typecode uint32) uint16 {
	_, file, line, _ := runtime.Caller(3)
	site.once.Do(func() {
		site.id = registerRecord(level, file, line, typecode, format)
	})
	return site.id
}

// registerRecord reserves the next slot in region, fills it in, and
// derives the callsite identifier from the record's address: the
// same `(addr - base) >> 8` the original computes from a linked
// image, just computed against this process's own region array
// instead of an ELF section a host tool would parse offline.
func registerRecord(level Level, file string, line int, typecode uint32, format string) uint16 {
	regionMu.Lock()
	defer regionMu.Unlock()

	if regionNext >= RegionCapacity {
		panic("ulog: metadata region exhausted: more call sites registered than the wire identifier can address")
	}

	rec := &region[regionNext]
	regionNext++

	rec.Level = level
	rec.Line = uint32(line)
	rec.Typecode = typecode
	putCString(rec.File[:], file)
	putCString(rec.Format[:], format)

	base := uintptr(unsafe.Pointer(&region[0]))
	addr := uintptr(unsafe.Pointer(rec))
	return uint16((addr - base) >> 8)
}

// putCString copies s into buf, truncating to leave room for and
// then writing a null terminator. buf must have length >= 1.
func putCString(buf []byte, s string) {
	n := len(buf) - 1
	if len(s) < n {
		n = len(s)
	}
	copy(buf, s[:n])
	buf[n] = 0
}

// RecordCount reports how many call sites have registered so far. It
// exists for diagnostics and tests; it is not part of the wire
// protocol.
func RecordCount() int {
	regionMu.Lock()
	defer regionMu.Unlock()
	return regionNext
}
