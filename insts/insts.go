// Package insts provides RV32I instruction definitions and decoding.
package insts

// Format represents a RISC-V base instruction encoding format.
type Format uint8

// Instruction formats. B, U and J are recognized decode targets but
// carry no executable semantics yet.
const (
	FormatUnknown Format = iota
	FormatR              // register-register
	FormatI              // register-immediate, loads
	FormatS              // stores
	FormatB              // conditional branches
	FormatU              // upper immediates
	FormatJ              // jumps
)

// OpcodeMask selects the opcode, the low 7 bits of an instruction word.
const OpcodeMask = 0x7f

// Opcodes of the supported instructions.
const (
	OpcodeLoad  uint32 = 0x03 // lb, lh, lw, lbu, lhu
	OpcodeOpImm uint32 = 0x13 // addi
	OpcodeStore uint32 = 0x23 // sb, sh, sw
	OpcodeOp    uint32 = 0x33 // add, sub
)

// funct3 selectors for OpcodeLoad.
const (
	Funct3LB  uint32 = 0x0
	Funct3LH  uint32 = 0x1
	Funct3LW  uint32 = 0x2
	Funct3LBU uint32 = 0x4
	Funct3LHU uint32 = 0x5
)

// funct3 selectors for OpcodeStore.
const (
	Funct3SB uint32 = 0x0
	Funct3SH uint32 = 0x1
	Funct3SW uint32 = 0x2
)

// funct3/funct7 selectors for OpcodeOp and OpcodeOpImm.
const (
	Funct3AddSub uint32 = 0x0
	Funct7Add    uint32 = 0x00
	Funct7Sub    uint32 = 0x20
)

// Instruction represents a decoded RV32I instruction.
//
// Format tags which fields are meaningful: R-type carries Rd, Rs1,
// Rs2, Funct3 and Funct7; I-type carries Rd, Rs1, Funct3 and Imm;
// S-type carries Rs1 (base), Rs2 (value), Funct3 and Imm.
type Instruction struct {
	Format Format // Encoding format
	Opcode uint32 // Low 7 bits of the raw word

	Rd  uint32 // Destination register, always in [0,31]
	Rs1 uint32 // First source register
	Rs2 uint32 // Second source register

	Funct3 uint32 // Secondary selector, bits [14:12]
	Funct7 uint32 // Tertiary selector, bits [31:25] (R-type only)

	// Imm is the immediate, already sign-extended from its encoded
	// bit-width to the full 32-bit machine word.
	Imm uint32
}
