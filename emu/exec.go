// Package emu provides functional RV32I emulation.
package emu

import (
	"github.com/brdrrt/rv-emu/insts"
)

// execHandler applies one instruction's semantics to the CPU and bus.
type execHandler func(c *CPU, inst insts.Instruction, bus *Bus) error

// instKey identifies one executable operation. Funct7 participates
// only for R-format operations; every other format keys it as zero.
type instKey struct {
	opcode uint32
	funct3 uint32
	funct7 uint32
}

// handlers is the two-level dispatch table (opcode, then
// funct3/funct7). Adding an instruction means adding an entry here,
// not growing a branching structure.
var handlers = map[instKey]execHandler{
	{insts.OpcodeLoad, insts.Funct3LB, 0}:  execLB,
	{insts.OpcodeLoad, insts.Funct3LH, 0}:  execLH,
	{insts.OpcodeLoad, insts.Funct3LW, 0}:  execLW,
	{insts.OpcodeLoad, insts.Funct3LBU, 0}: execLBU,
	{insts.OpcodeLoad, insts.Funct3LHU, 0}: execLHU,

	{insts.OpcodeOpImm, insts.Funct3AddSub, 0}: execADDI,

	{insts.OpcodeOp, insts.Funct3AddSub, insts.Funct7Add}: execADD,
	{insts.OpcodeOp, insts.Funct3AddSub, insts.Funct7Sub}: execSUB,

	{insts.OpcodeStore, insts.Funct3SB, 0}: execSB,
	{insts.OpcodeStore, insts.Funct3SH, 0}: execSH,
	{insts.OpcodeStore, insts.Funct3SW, 0}: execSW,
}

// execute dispatches a decoded instruction through the handler table.
// A combination with no entry is an illegal instruction: a recoverable
// fault, so callers can choose to halt, trap or ignore.
func (c *CPU) execute(inst insts.Instruction, bus *Bus) error {
	key := instKey{opcode: inst.Opcode, funct3: inst.Funct3}
	if inst.Format == insts.FormatR {
		key.funct7 = inst.Funct7
	}

	handler, ok := handlers[key]
	if !ok {
		return IllegalInstructionError{
			Opcode: inst.Opcode,
			Funct3: inst.Funct3,
			Funct7: inst.Funct7,
		}
	}
	return handler(c, inst, bus)
}

// effectiveAddress computes the load/store address rs1 + imm. uint32
// addition wraps modulo 2^32, as RISC-V address arithmetic requires.
func effectiveAddress(c *CPU, inst insts.Instruction) uint32 {
	return c.regFile.Read(inst.Rs1) + inst.Imm
}

// execLB loads a byte and sign-extends it to 32 bits.
func execLB(c *CPU, inst insts.Instruction, bus *Bus) error {
	value, err := bus.Load(effectiveAddress(c, inst), Access8)
	if err != nil {
		return err
	}
	c.regFile.Write(inst.Rd, uint32(int32(int8(value))))
	return nil
}

// execLH loads a halfword and sign-extends it to 32 bits.
func execLH(c *CPU, inst insts.Instruction, bus *Bus) error {
	value, err := bus.Load(effectiveAddress(c, inst), Access16)
	if err != nil {
		return err
	}
	c.regFile.Write(inst.Rd, uint32(int32(int16(value))))
	return nil
}

// execLW loads a full 32-bit word.
func execLW(c *CPU, inst insts.Instruction, bus *Bus) error {
	value, err := bus.Load(effectiveAddress(c, inst), Access32)
	if err != nil {
		return err
	}
	c.regFile.Write(inst.Rd, uint32(value))
	return nil
}

// execLBU loads a byte and zero-extends it.
func execLBU(c *CPU, inst insts.Instruction, bus *Bus) error {
	value, err := bus.Load(effectiveAddress(c, inst), Access8)
	if err != nil {
		return err
	}
	c.regFile.Write(inst.Rd, uint32(value))
	return nil
}

// execLHU loads a halfword and zero-extends it.
func execLHU(c *CPU, inst insts.Instruction, bus *Bus) error {
	value, err := bus.Load(effectiveAddress(c, inst), Access16)
	if err != nil {
		return err
	}
	c.regFile.Write(inst.Rd, uint32(value))
	return nil
}

// execADDI performs rd = rs1 + imm with wrapping addition.
func execADDI(c *CPU, inst insts.Instruction, _ *Bus) error {
	c.regFile.Write(inst.Rd, c.regFile.Read(inst.Rs1)+inst.Imm)
	return nil
}

// execADD performs rd = rs1 + rs2 with wrapping addition.
func execADD(c *CPU, inst insts.Instruction, _ *Bus) error {
	c.regFile.Write(inst.Rd, c.regFile.Read(inst.Rs1)+c.regFile.Read(inst.Rs2))
	return nil
}

// execSUB performs rd = rs1 - rs2 with wrapping subtraction.
func execSUB(c *CPU, inst insts.Instruction, _ *Bus) error {
	c.regFile.Write(inst.Rd, c.regFile.Read(inst.Rs1)-c.regFile.Read(inst.Rs2))
	return nil
}

// execSB stores the low 8 bits of rs2.
func execSB(c *CPU, inst insts.Instruction, bus *Bus) error {
	return bus.Store(effectiveAddress(c, inst), Access8,
		uint64(c.regFile.Read(inst.Rs2)))
}

// execSH stores the low 16 bits of rs2.
func execSH(c *CPU, inst insts.Instruction, bus *Bus) error {
	return bus.Store(effectiveAddress(c, inst), Access16,
		uint64(c.regFile.Read(inst.Rs2)))
}

// execSW stores the full 32 bits of rs2.
func execSW(c *CPU, inst insts.Instruction, bus *Bus) error {
	return bus.Store(effectiveAddress(c, inst), Access32,
		uint64(c.regFile.Read(inst.Rs2)))
}
