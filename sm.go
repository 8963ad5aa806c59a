// sm.go - Streaming Multiprocessor: composition root and six-phase clock

/*
sm.go - Streaming Multiprocessor

StreamingMultiprocessor composes a register file, four LdSt units,
eight FP cores, eight IntFP cores, and two dispatch units, then drives
them through the fixed five-phase Clock() sequence grounded byte-for-byte
on original_source/StreamingMultiprocessor.hpp's Clock():

  1. Debug reporting (skipped entirely if no DebugSink is attached).
  2. Clock every LdSt unit.
  3. For sub-cycle 0..5: clock every FP core and IntFP core.
  4. Reset each dispatch unit's per-cycle state.
  5. Issue loop: six iterations of dispatch[0].Clock(); dispatch[1].Clock().

Functional-unit progress happens before dispatch so units completing
this tick are visible as ready when dispatch re-examines the shared
bitmap — a unit that completes in phase 3 can be issued to again in
phase 5 of the same tick, while a unit issued in phase 5 only starts
counting down in the next tick.

The SM owns everything it composes (register file, units, dispatch
units, unit bitmap); every unit holds a non-owning back-reference to
the SM that constructed it, never outliving it.
*/

package main

// StreamingMultiprocessor is one SM: the composition root for a
// register file, its functional units, and its two dispatch units.
type StreamingMultiprocessor struct {
	debugSinkHolder

	processor Processor
	smIndex   uint32

	registerFile *RegisterFile
	ldSt         [LdStUnitCount]*LdStUnit
	fpCores      [FPCoreCount]*FPCore
	intFpCores   [IntFPCoreCount]*IntFPCore
	dispatch     [2]*DispatchUnit
	unitBitmap   *UnitBitmap
}

// NewStreamingMultiprocessor builds an SM wired against processor, the
// memory-hierarchy collaborator its LdSt units will use, identified by
// smIndex for multi-SM debug reporting.
func NewStreamingMultiprocessor(processor Processor, smIndex uint32) *StreamingMultiprocessor {
	sm := &StreamingMultiprocessor{
		processor:    processor,
		smIndex:      smIndex,
		registerFile: NewRegisterFile(),
		unitBitmap:   newUnitBitmap(),
	}

	for i := range sm.ldSt {
		sm.ldSt[i] = newLdStUnit(sm, uint32(i))
	}
	for i := range sm.fpCores {
		sm.fpCores[i] = newFPCore(sm, uint32(i))
	}
	for i := range sm.intFpCores {
		sm.intFpCores[i] = newIntFPCore(sm, uint32(i))
	}
	for i := range sm.dispatch {
		sm.dispatch[i] = newDispatchUnit(sm, i)
	}

	return sm
}

// Clock executes one full SM tick in the fixed five-phase order.
func (sm *StreamingMultiprocessor) Clock() {
	if sm.IsAttached() {
		sm.report(sm.snapshotTick())
	}

	for _, unit := range sm.ldSt {
		unit.Clock()
	}

	for subCycle := uint32(0); subCycle <= 5; subCycle++ {
		for i := range sm.fpCores {
			sm.fpCores[i].Clock(subCycle)
		}
		for i := range sm.intFpCores {
			sm.intFpCores[i].Clock(subCycle)
		}
	}

	sm.dispatch[0].ResetCycle()
	sm.dispatch[1].ResetCycle()

	for i := 0; i < IssueAttemptsPerCycle; i++ {
		sm.dispatch[0].Clock()
		sm.dispatch[1].Clock()
	}
}

// TestLoadProgram is a harness entry point: it loads program into
// dispatchPort's dispatch unit, enabling the replicas named by
// replicationMask, and computes each replica's base register as
// (dispatchPort*4 + replica)*256, matching original_source's
// TestLoadProgram.
func (sm *StreamingMultiprocessor) TestLoadProgram(dispatchPort uint32, replicationMask uint8, program Program) {
	var baseRegisters [ReplicationContextCount]uint32
	for r := uint32(0); r < ReplicationContextCount; r++ {
		baseRegisters[r] = (dispatchPort*4 + r) * RegistersPerSlot
	}
	sm.dispatch[dispatchPort].LoadProgram(replicationMask, baseRegisters, program)
}

// TestLoadRegister is a harness entry point: it writes directly to the
// register file at (dispatchPort*4+replicationIndex)*256 + registerIndex,
// matching original_source's TestLoadRegister.
func (sm *StreamingMultiprocessor) TestLoadRegister(dispatchPort, replicationIndex uint32, registerIndex uint8, value uint32) {
	index := (dispatchPort*4+replicationIndex)*RegistersPerSlot + uint32(registerIndex)
	sm.registerFile.Set(index, value)
}

// GetRegister and SetRegister are unchecked direct register-file access,
// exposed on the SM for harnesses that don't want to reach past it into
// the register file directly.
func (sm *StreamingMultiprocessor) GetRegister(index uint32) uint32 {
	return sm.registerFile.Get(index)
}

func (sm *StreamingMultiprocessor) SetRegister(index uint32, value uint32) {
	sm.registerFile.Set(index, value)
}

// Read, Write, Prefetch, and FlushCache pass requests straight through
// to the Processor collaborator, matching original_source's SM-owned
// pass-through methods of the same names.
func (sm *StreamingMultiprocessor) Read(address uint64) uint32 {
	return sm.processor.Read(address)
}

func (sm *StreamingMultiprocessor) Write(address uint64, value uint32) {
	sm.processor.Write(address, value)
}

func (sm *StreamingMultiprocessor) Prefetch(address uint64) {
	sm.processor.Prefetch(address)
}

func (sm *StreamingMultiprocessor) FlushCache() {
	sm.processor.FlushCache()
}

func (sm *StreamingMultiprocessor) dispatchLdSt(ldStIndex uint32, instr LoadStoreInstruction) {
	sm.dispatch[0].ReportUnitBusy(LdStAvailOffset + ldStIndex)
	sm.dispatch[1].ReportUnitBusy(LdStAvailOffset + ldStIndex)
	sm.ldSt[ldStIndex].Initiate(instr)
}

func (sm *StreamingMultiprocessor) dispatchFpu(fpIndex uint32, instr FpuInstruction) {
	sm.dispatch[0].ReportUnitBusy(FPAvailOffset + fpIndex)
	sm.dispatch[1].ReportUnitBusy(FPAvailOffset + fpIndex)
	sm.fpCores[fpIndex].Initiate(instr)
}

func (sm *StreamingMultiprocessor) dispatchIntFpu(fpIndex uint32, instr FpuInstruction) {
	sm.dispatch[0].ReportUnitBusy(IntFPAvailOffset + fpIndex)
	sm.dispatch[1].ReportUnitBusy(IntFPAvailOffset + fpIndex)
	sm.intFpCores[fpIndex].Initiate(instr)
}

func (sm *StreamingMultiprocessor) reportLdStReady(unitIndex uint32) {
	sm.dispatch[0].ReportUnitReady(LdStAvailOffset + unitIndex)
	sm.dispatch[1].ReportUnitReady(LdStAvailOffset + unitIndex)
}

func (sm *StreamingMultiprocessor) reportFpCoreReady(unitIndex uint32) {
	sm.dispatch[0].ReportUnitReady(FPAvailOffset + unitIndex)
	sm.dispatch[1].ReportUnitReady(FPAvailOffset + unitIndex)
}

func (sm *StreamingMultiprocessor) reportIntFpCoreReady(unitIndex uint32) {
	sm.dispatch[0].ReportUnitReady(IntFPAvailOffset + unitIndex)
	sm.dispatch[1].ReportUnitReady(IntFPAvailOffset + unitIndex)
}

func (sm *StreamingMultiprocessor) snapshotTick() TickInfo {
	var bases [2][ReplicationContextCount]uint32
	for d := 0; d < 2; d++ {
		for c := 0; c < ReplicationContextCount; c++ {
			bases[d][c] = sm.dispatch[d].contexts[c].baseRegister
		}
	}

	units := make([]UnitState, 0, LdStUnitCount+FPCoreCount+IntFPCoreCount)
	for i, u := range sm.ldSt {
		units = append(units, UnitState{Class: UnitLdSt, Index: uint32(i), Name: u.Name(), Busy: u.state == unitBusy})
	}
	for i, u := range sm.fpCores {
		units = append(units, UnitState{Class: UnitFP, Index: uint32(i), Name: u.Name(), Busy: u.state == unitBusy})
	}
	for i, u := range sm.intFpCores {
		units = append(units, UnitState{Class: UnitIntFP, Index: uint32(i), Name: u.Name(), Busy: u.state == unitBusy})
	}

	return TickInfo{SMIndex: sm.smIndex, BaseRegisters: bases, Units: units}
}

// Snapshot returns a read-only copy of the SM's current dispatch base
// registers and per-unit busy state, the same payload an attached DebugSink
// would receive at the start of the next tick. Grounded on the
// teacher's debug_snapshot.go dump-on-demand pattern: a harness or the
// demo CLI can call this without attaching a DebugSink at all.
func (sm *StreamingMultiprocessor) Snapshot() TickInfo {
	return sm.snapshotTick()
}
