// Package emu provides functional RV32I emulation.
package emu

import (
	"github.com/sirupsen/logrus"

	"github.com/brdrrt/rv-emu/insts"
)

// CPU is the RV32I core: the register file and program counter plus
// the fetch/decode/execute driver.
type CPU struct {
	regFile *RegFile
	decoder *insts.Decoder
}

// NewCPU creates a CPU with all registers zero and the PC at the
// given reset vector.
func NewCPU(resetVector uint32) *CPU {
	return &CPU{
		regFile: &RegFile{PC: resetVector},
		decoder: insts.NewDecoder(),
	}
}

// RegFile returns the CPU's register file.
func (c *CPU) RegFile() *RegFile {
	return c.regFile
}

// Registers returns a copy of the general-purpose registers for
// inspection. Reading it never mutates CPU state.
func (c *CPU) Registers() [NumRegs]uint32 {
	return c.regFile.X
}

// PC returns the current program counter.
func (c *CPU) PC() uint32 {
	return c.regFile.PC
}

// SetPC redirects the program counter. During a cycle the PC has
// already been advanced past the current instruction before execute
// runs, so an execute handler calling SetPC overrides that default;
// this is the control-transfer seam branch and jump instructions will
// use.
func (c *CPU) SetPC(pc uint32) {
	c.regFile.PC = pc
}

// Advance runs one fetch/decode/execute cycle against the given bus.
//
// Any error aborts the cycle immediately and is returned tagged with
// the phase that produced it; there is no partial recovery. The
// opcode-zero decode signal surfaces here too, satisfying
// IsProgramEnd.
func (c *CPU) Advance(bus *Bus) error {
	// x0 is hardwired to zero, enforced every cycle rather than only
	// at decode time.
	c.regFile.X[0] = 0

	logrus.WithFields(logrus.Fields{
		"pc":        c.regFile.PC,
		"registers": c.regFile.X,
	}).Debug("Instruction cycle started")

	word, err := c.fetch(bus)
	if err != nil {
		return &CycleError{Phase: PhaseFetch, Err: err}
	}

	// Every RV32I instruction is four bytes (the compressed extension
	// would change that). This is the default the execute phase may
	// override through SetPC once control transfers exist.
	c.regFile.PC += 4

	inst, err := c.decoder.Decode(word)
	if err != nil {
		return &CycleError{Phase: PhaseDecode, Err: err}
	}
	logrus.WithFields(logrus.Fields{
		"raw":  word,
		"inst": inst,
	}).Debug("Decode phase succeeded")

	if err := c.execute(inst, bus); err != nil {
		return &CycleError{Phase: PhaseExecute, Err: err}
	}

	return nil
}

// Reset emulates the CPU receiving a reset signal: it runs cycles
// while the PC remains within the memory image, propagating the first
// error. It does not interpret the opcode-zero signal itself; the
// caller decides whether that is a normal end of program.
func (c *CPU) Reset(bus *Bus) error {
	for c.regFile.PC < uint32(bus.memory.Size()) {
		if err := c.Advance(bus); err != nil {
			return err
		}
	}
	return nil
}

// fetch reads the 32-bit instruction word at the PC.
func (c *CPU) fetch(bus *Bus) (uint32, error) {
	value, err := bus.Load(c.regFile.PC, Access32)
	if err != nil {
		return 0, err
	}
	return uint32(value), nil
}
