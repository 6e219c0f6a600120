// Package emu provides functional RV32I emulation.
package emu

// ProgramMode selects how a loaded program expects to be hosted. It is
// carried as an explicit construction-time configuration value only;
// no mode has behavior attached yet (reset vector and initial
// privilege state per mode are still to be defined).
type ProgramMode uint8

// Program modes.
const (
	ModeBareMetal ProgramMode = iota
	ModeKernel
	ModeOSProvided
)

// Machine aggregates exactly one CPU and one Memory. It is the unit
// the outside world constructs and drives.
type Machine struct {
	cpu    *CPU
	memory *Memory
	mode   ProgramMode
}

// MachineOption is a functional option for configuring a Machine.
type MachineOption func(*Machine)

// WithResetVector sets the address execution starts at. The default
// is RAMBase.
func WithResetVector(addr uint32) MachineOption {
	return func(m *Machine) {
		m.cpu.regFile.PC = addr
	}
}

// WithProgramMode records the program hosting mode.
func WithProgramMode(mode ProgramMode) MachineOption {
	return func(m *Machine) {
		m.mode = mode
	}
}

// NewMachine creates a machine whose memory holds the given raw byte
// image, zero-padded or truncated to exactly MemorySize.
func NewMachine(image []byte, opts ...MachineOption) *Machine {
	m := &Machine{
		cpu:    NewCPU(RAMBase),
		memory: NewMemory(image),
		mode:   ModeBareMetal,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CPU returns the machine's CPU.
func (m *Machine) CPU() *CPU {
	return m.cpu
}

// Memory returns the machine's memory, for inspection and interactive
// editing by external tooling.
func (m *Machine) Memory() *Memory {
	return m.memory
}

// Mode returns the configured program mode.
func (m *Machine) Mode() ProgramMode {
	return m.mode
}

// Boot runs cycles until the PC has advanced past the end of the
// memory image, propagating the first error encountered. Reaching an
// all-zero instruction word surfaces as a decode error satisfying
// IsProgramEnd; callers treat that one as normal termination.
func (m *Machine) Boot() error {
	return m.cpu.Reset(NewBus(m.memory))
}

// Step executes exactly one cycle. It returns the same error taxonomy
// as Boot, so a debugger front-end can distinguish a normal step, the
// end-of-program signal and a fault.
func (m *Machine) Step() error {
	return m.cpu.Advance(NewBus(m.memory))
}
