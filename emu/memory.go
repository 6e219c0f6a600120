// Package emu provides functional RV32I emulation.
package emu

// Memory geometry.
const (
	// MemorySize is the RAM capacity in bytes.
	MemorySize = 4 * (1 << 10) // 4 KiB

	// RAMBase is the lowest address that is actual physical memory.
	// Everything below it is reserved, eventually for memory-mapped
	// I/O.
	RAMBase = 0x80
)

// AccessSize is a bus access width in bits.
type AccessSize uint8

// Supported access widths.
const (
	Access8  AccessSize = 8
	Access16 AccessSize = 16
	Access32 AccessSize = 32
	Access64 AccessSize = 64
)

// Memory is the machine's RAM: a single contiguous byte array of
// fixed capacity, mapped into the address space starting at RAMBase.
type Memory struct {
	contents []byte
}

// NewMemory creates a Memory holding the given initial image,
// zero-padded or truncated to exactly MemorySize bytes.
func NewMemory(image []byte) *Memory {
	contents := make([]byte, MemorySize)
	copy(contents, image)
	return &Memory{contents: contents}
}

// Size returns the RAM capacity in bytes.
func (m *Memory) Size() int {
	return len(m.contents)
}

// Bytes returns the backing array for inspection and interactive
// editing by external tooling. CPU execution must go through a Bus.
func (m *Memory) Bytes() []byte {
	return m.contents
}

// PeekByte reads the byte at addr, bypassing the bus.
func (m *Memory) PeekByte(addr uint32) (byte, error) {
	index, err := m.translate(addr, 1)
	if err != nil {
		return 0, err
	}
	return m.contents[index], nil
}

// PokeByte writes the byte at addr, bypassing the bus. It exists for
// interactive memory editors, not for CPU stores.
func (m *Memory) PokeByte(addr uint32, value byte) error {
	index, err := m.translate(addr, 1)
	if err != nil {
		return err
	}
	m.contents[index] = value
	return nil
}

// translate maps an address to an index into the backing array and
// checks that count bytes fit.
func (m *Memory) translate(addr uint32, count int) (int, error) {
	if addr < RAMBase {
		return 0, UnmappedAddressError{Addr: addr}
	}
	index := int(addr - RAMBase)
	if index+count > len(m.contents) {
		return 0, OutOfBoundsError{Addr: addr, Count: count}
	}
	return index, nil
}

// Bus mediates CPU access to memory for the accesses of one
// fetch/decode/execute cycle. It owns no storage of its own; it exists
// as the single uniform access surface, and as the seam where
// memory-mapped I/O will eventually be layered under the same address
// space without changing CPU code.
type Bus struct {
	memory *Memory
}

// NewBus creates a bus over the given memory.
func NewBus(memory *Memory) *Bus {
	return &Bus{memory: memory}
}

// Load reads a size-bit value from addr. Multi-byte values are
// assembled byte by byte in little-endian order; no alignment is
// required.
func (b *Bus) Load(addr uint32, size AccessSize) (uint64, error) {
	count, err := byteCount(size)
	if err != nil {
		return 0, err
	}
	index, err := b.memory.translate(addr, count)
	if err != nil {
		return 0, err
	}

	var value uint64
	for i := 0; i < count; i++ {
		value |= uint64(b.memory.contents[index+i]) << (8 * i)
	}
	return value, nil
}

// Store writes the low size bits of value at addr, byte by byte in
// little-endian order.
func (b *Bus) Store(addr uint32, size AccessSize, value uint64) error {
	count, err := byteCount(size)
	if err != nil {
		return err
	}
	index, err := b.memory.translate(addr, count)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		b.memory.contents[index+i] = byte(value >> (8 * i))
	}
	return nil
}

// byteCount converts an access width to a byte count, rejecting any
// width outside {8, 16, 32, 64}.
func byteCount(size AccessSize) (int, error) {
	switch size {
	case Access8:
		return 1, nil
	case Access16:
		return 2, nil
	case Access32:
		return 4, nil
	case Access64:
		return 8, nil
	}
	return 0, ErrUnsupportedAccessSize
}
