// functional_units.go - FP core, IntFP core, and LdSt unit state machines

/*
functional_units.go - Functional Units

Every functional unit is a small state machine advanced one sub-cycle
at a time: Initiate moves it from idle to busy with a latency
countdown; Clock decrements that countdown and, at zero, commits its
result to the register file, returns to idle, and reports readiness
back to the owning SM (which fans the ready bit out to both dispatch
units).

FPCore and IntFPCore share a fixed six-sub-cycle latency, grounded on
original_source/StreamingMultiprocessor.hpp's m_FpCores/m_IntFpCores
arrays of 8 units each, clocked once per sub-cycle inside Clock()'s
sub-cycle loop. LdStUnit has no latency counter: its Clock performs the
whole access as one synchronous Read or Write on the Processor
collaborator and reports ready in that same call, so it is busy from
Initiate until its next Clock. None of the three ever aborts a
started instruction; Initiate is a no-op while busy, matching the
teacher's small-state-machine idiom in voodoo_software.go (latency
counter field, one Clock entry point, no external cancellation).

Each unit holds a back-reference to its owning SM (non-owning, per
spec.md §9's design note: Go has no ownership-qualified pointer, and a
unit's lifetime is bounded by the SM that constructs it, so a plain
field is the idiomatic equivalent of the source's raw back-pointer).
*/

package main

import "fmt"

const (
	// FPLatency is the fixed sub-cycle latency of an FPCore instruction.
	FPLatency = 6
	// IntFPLatency is the fixed sub-cycle latency of an IntFPCore
	// instruction in its FP mode.
	IntFPLatency = 6

	// FPCoreCount, IntFPCoreCount, and LdStUnitCount are the unit
	// counts per SM, matching StreamingMultiprocessor.hpp's
	// m_FpCores[8]/m_IntFpCores[8]/m_LdSt[4].
	FPCoreCount    = 8
	IntFPCoreCount = 8
	LdStUnitCount  = 4
)

// FpuInstruction is a decoded instruction bound for an FPCore or
// IntFPCore: the destination register and the source operands already
// resolved to flat register indices by the issuing dispatch unit.
type FpuInstruction struct {
	Dest    uint32
	Src     [2]uint32
	Opcode  uint32
}

// LoadStoreInstruction is a decoded instruction bound for an LdStUnit.
type LoadStoreInstruction struct {
	IsWrite bool
	Address uint64
	Reg     uint32 // source register for a write, destination for a read
}

type unitState uint8

const (
	unitIdle unitState = iota
	unitBusy
)

// unitStateString renders a unitState the way DebuggableCPU's
// IsRunning()-style accessors are rendered for a debug sink: a short
// fixed label, not a Stringer on the numeric type itself.
func unitStateString(s unitState) string {
	if s == unitBusy {
		return "busy"
	}
	return "idle"
}

// FPCore is a floating-point functional unit.
type FPCore struct {
	sm      *StreamingMultiprocessor
	index   uint32
	state   unitState
	latency uint32
	instr   FpuInstruction
}

func newFPCore(sm *StreamingMultiprocessor, index uint32) *FPCore {
	return &FPCore{sm: sm, index: index}
}

// Name identifies this core for a DebugSink, grounded on
// DebuggableCPU's CPUName() accessor.
func (c *FPCore) Name() string { return fmt.Sprintf("fp%d", c.index) }

// State reports this core's current state as a short label.
func (c *FPCore) State() string { return unitStateString(c.state) }

// Initiate starts instr on this core; a no-op if the core is already
// busy.
func (c *FPCore) Initiate(instr FpuInstruction) {
	if c.state == unitBusy {
		return
	}
	c.state = unitBusy
	c.latency = FPLatency
	c.instr = instr
}

// Clock advances the core by one sub-cycle (subCycle is accepted for
// symmetry with the SM's clocking loop; the latency countdown does not
// depend on which sub-cycle it is).
func (c *FPCore) Clock(subCycle uint32) {
	if c.state != unitBusy {
		return
	}
	c.latency--
	if c.latency == 0 {
		result := c.sm.registerFile.Get(c.instr.Src[0]) + c.sm.registerFile.Get(c.instr.Src[1])
		c.sm.registerFile.Set(c.instr.Dest, result)
		c.sm.registerFile.ReleaseRead(c.instr.Src[0])
		c.sm.registerFile.ReleaseRead(c.instr.Src[1])
		c.sm.registerFile.ReleaseWrite(c.instr.Dest)
		c.state = unitIdle
		c.sm.reportFpCoreReady(c.index)
	}
}

// IntFPCore is a combined integer/floating-point functional unit,
// operated here in its FP mode per spec.md §4.3.
type IntFPCore struct {
	sm      *StreamingMultiprocessor
	index   uint32
	state   unitState
	latency uint32
	instr   FpuInstruction
}

func newIntFPCore(sm *StreamingMultiprocessor, index uint32) *IntFPCore {
	return &IntFPCore{sm: sm, index: index}
}

// Name identifies this core for a DebugSink.
func (c *IntFPCore) Name() string { return fmt.Sprintf("intfp%d", c.index) }

// State reports this core's current state as a short label.
func (c *IntFPCore) State() string { return unitStateString(c.state) }

func (c *IntFPCore) Initiate(instr FpuInstruction) {
	if c.state == unitBusy {
		return
	}
	c.state = unitBusy
	c.latency = IntFPLatency
	c.instr = instr
}

func (c *IntFPCore) Clock(subCycle uint32) {
	if c.state != unitBusy {
		return
	}
	c.latency--
	if c.latency == 0 {
		result := c.sm.registerFile.Get(c.instr.Src[0]) + c.sm.registerFile.Get(c.instr.Src[1])
		c.sm.registerFile.Set(c.instr.Dest, result)
		c.sm.registerFile.ReleaseRead(c.instr.Src[0])
		c.sm.registerFile.ReleaseRead(c.instr.Src[1])
		c.sm.registerFile.ReleaseWrite(c.instr.Dest)
		c.state = unitIdle
		c.sm.reportIntFpCoreReady(c.index)
	}
}

// LdStUnit is a load/store functional unit. Unlike the FP cores it has
// no latency counter: each Clock performs the pending access with one
// synchronous Processor Read or Write, commits it, and reports ready in
// the same call. The Processor interface has no way to report an
// access as still in progress, so the unit is never busy across more
// than one of its Clock calls; a slow collaborator blocks inside that
// call instead, with no timeout.
type LdStUnit struct {
	sm      *StreamingMultiprocessor
	index   uint32
	state   unitState
	instr   LoadStoreInstruction
	pending bool
}

func newLdStUnit(sm *StreamingMultiprocessor, index uint32) *LdStUnit {
	return &LdStUnit{sm: sm, index: index}
}

// Name identifies this unit for a DebugSink.
func (u *LdStUnit) Name() string { return fmt.Sprintf("ldst%d", u.index) }

// State reports this unit's current state as a short label.
func (u *LdStUnit) State() string { return unitStateString(u.state) }

func (u *LdStUnit) Initiate(instr LoadStoreInstruction) {
	if u.state == unitBusy {
		return
	}
	u.state = unitBusy
	u.instr = instr
	u.pending = true
}

// Clock completes the in-flight memory access: a write stores the
// source register through the Processor, a read loads from the
// Processor into the destination register. Either way the unit then
// releases its register lock, returns to idle and reports ready before
// Clock returns.
func (u *LdStUnit) Clock() {
	if u.state != unitBusy || !u.pending {
		return
	}

	if u.instr.IsWrite {
		value := u.sm.registerFile.Get(u.instr.Reg)
		u.sm.processor.Write(u.instr.Address, value)
		u.sm.registerFile.ReleaseRead(u.instr.Reg)
	} else {
		value := u.sm.processor.Read(u.instr.Address)
		u.sm.registerFile.Set(u.instr.Reg, value)
		u.sm.registerFile.ReleaseWrite(u.instr.Reg)
	}

	u.pending = false
	u.state = unitIdle
	u.sm.reportLdStReady(u.index)
}
