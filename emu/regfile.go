// Package emu provides functional RV32I emulation.
package emu

// NumRegs is the number of general-purpose registers (x0-x31).
const NumRegs = 32

// RegFile represents the RV32I integer register file.
// It contains 32 general-purpose registers (x0-x31) and the program
// counter.
type RegFile struct {
	// X holds general-purpose registers x0-x31. X[0] is the zero
	// register, hardwired to read as 0; the CPU additionally clears it
	// at the start of every cycle so direct writes through the exposed
	// array are never observable past the current cycle.
	X [NumRegs]uint32

	// PC is the program counter.
	PC uint32
}

// Read reads a register value. Register 0 always returns 0.
func (r *RegFile) Read(reg uint32) uint32 {
	if reg == 0 {
		return 0
	}
	return r.X[reg]
}

// Write writes a value to a register. Writes to register 0 are
// discarded.
func (r *RegFile) Write(reg uint32, value uint32) {
	if reg == 0 {
		return
	}
	r.X[reg] = value
}
