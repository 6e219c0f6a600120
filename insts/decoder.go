// Package insts provides RV32I instruction definitions and decoding.
package insts

import (
	"errors"
	"fmt"
)

// ErrOpcodeZero reports an all-zero opcode. It is the canonical
// end-of-program signal rather than a decode bug: callers are expected
// to treat it as "no more code".
var ErrOpcodeZero = errors.New("opcode zero")

// IllegalOpcodeError reports an opcode outside the supported set.
type IllegalOpcodeError struct {
	// Word is the full raw instruction word.
	Word uint32
}

func (e IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode 0x%02x (instruction word 0x%08x)",
		e.Word&OpcodeMask, e.Word)
}

func (e IllegalOpcodeError) Is(err error) (ok bool) {
	_, ok = err.(IllegalOpcodeError)
	return
}

// formats maps each supported opcode to its encoding format.
var formats = map[uint32]Format{
	OpcodeLoad:  FormatI,
	OpcodeOpImm: FormatI,
	OpcodeStore: FormatS,
	OpcodeOp:    FormatR,
}

// Decoder decodes RV32I machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new RV32I instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit RV32I instruction word.
//
// It is pure: identical input always yields an identical result, which
// deterministic replay relies on. An all-zero opcode yields
// ErrOpcodeZero; any other opcode outside the supported set yields an
// IllegalOpcodeError.
func (d *Decoder) Decode(word uint32) (Instruction, error) {
	opcode := word & OpcodeMask
	if opcode == 0 {
		return Instruction{}, ErrOpcodeZero
	}

	format, ok := formats[opcode]
	if !ok {
		return Instruction{}, IllegalOpcodeError{Word: word}
	}

	inst := Instruction{Format: format, Opcode: opcode}

	switch format {
	case FormatI:
		inst.Rd = rd(word)
		inst.Rs1 = rs1(word)
		inst.Funct3 = funct3(word)
		inst.Imm = immI(word)
	case FormatS:
		inst.Rs1 = rs1(word)
		inst.Rs2 = rs2(word)
		inst.Funct3 = funct3(word)
		inst.Imm = immS(word)
	case FormatR:
		inst.Rd = rd(word)
		inst.Rs1 = rs1(word)
		inst.Rs2 = rs2(word)
		inst.Funct3 = funct3(word)
		inst.Funct7 = funct7(word)
	}

	return inst, nil
}

// Field extraction per the RV32I bit layout.

func rd(word uint32) uint32     { return (word >> 7) & 0x1f }  // bits [11:7]
func rs1(word uint32) uint32    { return (word >> 15) & 0x1f } // bits [19:15]
func rs2(word uint32) uint32    { return (word >> 20) & 0x1f } // bits [24:20]
func funct3(word uint32) uint32 { return (word >> 12) & 0x7 }  // bits [14:12]
func funct7(word uint32) uint32 { return (word >> 25) & 0x7f } // bits [31:25]

// immI extracts the I-type immediate, bits [31:20], sign-extended to
// 32 bits by an arithmetic shift.
func immI(word uint32) uint32 {
	return uint32(int32(word) >> 20)
}

// immS assembles the S-type immediate: the sign-extended high part
// from bits [31:25] OR'd with the low 5 bits from bits [11:7]. The low
// part needs no extension of its own since the high part supplies
// every bit above it.
func immS(word uint32) uint32 {
	return uint32(int32(word&0xfe000000)>>20) | ((word >> 7) & 0x1f)
}
