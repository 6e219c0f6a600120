package emu

import (
	"errors"
	"fmt"

	"github.com/brdrrt/rv-emu/insts"
)

// ErrUnsupportedAccessSize reports a bus access width outside
// {8, 16, 32, 64} bits. It is a caller error, never silently rounded.
var ErrUnsupportedAccessSize = errors.New("unsupported addressing size")

// UnmappedAddressError reports an access below RAMBase, where nothing
// is mapped yet.
type UnmappedAddressError struct {
	Addr uint32
}

func (e UnmappedAddressError) Error() string {
	return fmt.Sprintf("unmapped address 0x%08x (below RAM base 0x%02x)",
		e.Addr, RAMBase)
}

func (e UnmappedAddressError) Is(err error) (ok bool) {
	_, ok = err.(UnmappedAddressError)
	return
}

// OutOfBoundsError reports an access whose byte range exceeds the RAM
// capacity.
type OutOfBoundsError struct {
	Addr  uint32
	Count int
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("out-of-bounds access of %d bytes at 0x%08x",
		e.Count, e.Addr)
}

func (e OutOfBoundsError) Is(err error) (ok bool) {
	_, ok = err.(OutOfBoundsError)
	return
}

// IllegalInstructionError reports a decoded instruction whose
// (opcode, funct3, funct7) combination has no executable semantics.
type IllegalInstructionError struct {
	Opcode uint32
	Funct3 uint32
	Funct7 uint32
}

func (e IllegalInstructionError) Error() string {
	return fmt.Sprintf(
		"illegal instruction: opcode 0x%02x funct3 0x%x funct7 0x%02x",
		e.Opcode, e.Funct3, e.Funct7)
}

func (e IllegalInstructionError) Is(err error) (ok bool) {
	_, ok = err.(IllegalInstructionError)
	return
}

// Phase identifies the cycle phase an error originated in. The
// distinction matters for diagnostics: a memory fault during fetch is
// a bad instruction address, the same fault during execute is a bad
// data access.
type Phase uint8

// Cycle phases.
const (
	PhaseFetch Phase = iota
	PhaseDecode
	PhaseExecute
)

func (p Phase) String() string {
	switch p {
	case PhaseFetch:
		return "fetch"
	case PhaseDecode:
		return "decode"
	case PhaseExecute:
		return "execute"
	}
	return "unknown"
}

// CycleError tags an error with the fetch/decode/execute phase that
// produced it. The wrapped error remains reachable through Unwrap, so
// errors.Is and errors.As see through the tag.
type CycleError struct {
	Phase Phase
	Err   error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}

// IsProgramEnd reports whether err is the opcode-zero decode signal:
// the expected end-of-program marker, not a fault. Front-ends
// special-case it as "program finished" and treat every other
// propagated error as an abnormal halt.
func IsProgramEnd(err error) bool {
	return errors.Is(err, insts.ErrOpcodeZero)
}
