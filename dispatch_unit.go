// dispatch_unit.go - Instruction issue logic

/*
dispatch_unit.go - Dispatch Unit

A DispatchUnit owns four replication contexts (ReplicationContexts),
each an independent {instruction pointer, base register, RUNNING/
STALLED/HALTED state} triple initialized together by LoadProgram but
free to diverge afterward as contexts stall independently. Per SM
Clock() tick it performs six issue attempts (six calls of its own
Clock()), round-robining across its non-HALTED contexts, matching the "up to 6 issue attempts" / "6 iterations of
dispatch[0].clock(); dispatch[1].clock()" structure of
original_source/StreamingMultiprocessor.hpp's Clock().

Programs here are a closed, resolved instruction list (Program) rather
than a byte-encoded ISA: original_source's DispatchUnit.hpp (the actual
decoder) was not part of the retrieval pack, so the decode step is this
repository's own invention, kept intentionally small — each
Instruction already names its target unit class, the specific unit
index within that class, and its register operands, rather than
requiring a separate fetch/decode of raw bytes. This keeps §4.4's
issue-attempt contract (fetch/decode, check unit availability, check
register availability, lock-and-initiate) faithful without inventing an
unneeded bytecode format.

Two dispatch units share one 20-bit unit-availability bitmap, owned by
the SM per spec.md §9's design note ("model as a single bitmap owned by
the SM, read-and-updated by both dispatch units synchronously"); both
ends of a tie (two dispatch units targeting the same unit index in the
same cycle) are resolved by dispatch unit 0 running first in every
iteration of the SM's issue loop.
*/

package main

const (
	// LdStAvailOffset, FPAvailOffset, and IntFPAvailOffset are the
	// three contiguous bit ranges of the shared unit-availability
	// bitmap.
	LdStAvailOffset   = 0
	FPAvailOffset     = LdStAvailOffset + LdStUnitCount
	IntFPAvailOffset  = FPAvailOffset + FPCoreCount
	UnitBitmapWidth   = IntFPAvailOffset + IntFPCoreCount

	// ReplicationContextCount is P, the number of replication contexts
	// a dispatch unit owns.
	ReplicationContextCount = 4
	// IssueAttemptsPerCycle is the number of issue attempts a dispatch
	// unit performs per SM Clock() tick.
	IssueAttemptsPerCycle = 6
)

type contextState uint8

const (
	contextRunning contextState = iota
	contextStalled
	contextHalted
)

// UnitClass identifies which functional-unit family an Instruction
// targets.
type UnitClass uint8

const (
	UnitLdSt UnitClass = iota
	UnitFP
	UnitIntFP
)

// Instruction is one already-decoded program step: its target unit
// class and index, and its register operands expressed relative to the
// issuing context's base register.
type Instruction struct {
	Unit    UnitClass
	Index   uint32 // unit index within its class (0..7 for FP/IntFP, 0..3 for LdSt)
	Src     [2]uint32
	Dst     uint32
	IsWrite bool
	Address uint64
	Halt    bool
}

// Program is a fixed instruction sequence shared by every enabled
// replica of a dispatch unit.
type Program []Instruction

// ReplicationContext is one of a dispatch unit's P parallel lanes.
type ReplicationContext struct {
	ip           uint64
	baseRegister uint32
	enabled      bool
	state        contextState
	program      Program
}

// UnitBitmap is the shared 20-bit functional-unit availability bitmap:
// bit set means idle. It starts fully idle.
type UnitBitmap struct {
	bits uint32
}

func newUnitBitmap() *UnitBitmap {
	return &UnitBitmap{bits: (1 << UnitBitmapWidth) - 1}
}

func (b *UnitBitmap) isIdle(bit uint32) bool {
	return b.bits&(1<<bit) != 0
}

func (b *UnitBitmap) setBusy(bit uint32) {
	b.bits &^= 1 << bit
}

func (b *UnitBitmap) setReady(bit uint32) {
	b.bits |= 1 << bit
}

func unitBit(class UnitClass, index uint32) uint32 {
	switch class {
	case UnitLdSt:
		return LdStAvailOffset + index
	case UnitFP:
		return FPAvailOffset + index
	default:
		return IntFPAvailOffset + index
	}
}

// DispatchUnit issues instructions from its replication contexts into
// the SM's functional units.
type DispatchUnit struct {
	sm       *StreamingMultiprocessor
	id       int
	contexts [ReplicationContextCount]ReplicationContext
	cursor   int // round-robin position across contexts
}

func newDispatchUnit(sm *StreamingMultiprocessor, id int) *DispatchUnit {
	return &DispatchUnit{sm: sm, id: id}
}

// LoadProgram installs program into every replica enabled by
// replicationMask, starting each at instruction 0 with the
// corresponding entry of baseRegisters as that replica's register base.
func (d *DispatchUnit) LoadProgram(replicationMask uint8, baseRegisters [ReplicationContextCount]uint32, program Program) {
	for i := 0; i < ReplicationContextCount; i++ {
		ctx := &d.contexts[i]
		ctx.baseRegister = baseRegisters[i]
		ctx.program = program
		ctx.ip = 0
		ctx.enabled = replicationMask&(1<<uint(i)) != 0
		if ctx.enabled {
			ctx.state = contextRunning
		} else {
			ctx.state = contextHalted
		}
	}
}

// ResetCycle clears per-cycle bookkeeping at the start of the issue
// loop. Replication-context state (ip, stall/run/halt) persists across
// cycles; only the round-robin cursor resets.
func (d *DispatchUnit) ResetCycle() {
	d.cursor = 0
}

// ReportUnitBusy marks a unit busy in the shared bitmap. Idempotent:
// marking an already-busy unit busy again is harmless, which is what
// makes the dispatch-unit-0-wins tie-break safe.
func (d *DispatchUnit) ReportUnitBusy(bit uint32) {
	d.sm.unitBitmap.setBusy(bit)
}

// ReportUnitReady marks a unit idle in the shared bitmap.
func (d *DispatchUnit) ReportUnitReady(bit uint32) {
	d.sm.unitBitmap.setReady(bit)
}

// Clock performs one issue attempt, advancing the round-robin cursor
// across the unit's non-HALTED (RUNNING or STALLED) replication
// contexts.
func (d *DispatchUnit) Clock() {
	for attempt := 0; attempt < ReplicationContextCount; attempt++ {
		idx := d.cursor % ReplicationContextCount
		d.cursor++
		ctx := &d.contexts[idx]
		if ctx.state == contextHalted {
			continue
		}
		d.tryIssue(ctx)
		return
	}
}

func (d *DispatchUnit) tryIssue(ctx *ReplicationContext) {
	if int(ctx.ip) >= len(ctx.program) {
		ctx.state = contextHalted
		return
	}

	instr := ctx.program[ctx.ip]
	bit := unitBit(instr.Unit, instr.Index)
	if !d.sm.unitBitmap.isIdle(bit) {
		ctx.state = contextStalled
		return
	}

	src0 := ctx.baseRegister + instr.Src[0]
	src1 := ctx.baseRegister + instr.Src[1]
	dst := ctx.baseRegister + instr.Dst

	if instr.Unit == UnitLdSt {
		if instr.IsWrite {
			if !d.sm.registerFile.CanRead(src0) {
				ctx.state = contextStalled
				return
			}
		} else if !d.sm.registerFile.CanWrite(dst) {
			ctx.state = contextStalled
			return
		}
	} else {
		if !d.sm.registerFile.CanRead(src0) || !d.sm.registerFile.CanRead(src1) || !d.sm.registerFile.CanWrite(dst) {
			ctx.state = contextStalled
			return
		}
	}

	switch instr.Unit {
	case UnitLdSt:
		if instr.IsWrite {
			d.sm.registerFile.LockRead(src0)
		} else {
			d.sm.registerFile.LockWrite(dst)
		}
		d.sm.dispatchLdSt(instr.Index, LoadStoreInstruction{
			IsWrite: instr.IsWrite,
			Address: instr.Address,
			Reg:     regForLdSt(instr, src0, dst),
		})
	case UnitFP:
		d.sm.registerFile.LockRead(src0)
		d.sm.registerFile.LockRead(src1)
		d.sm.registerFile.LockWrite(dst)
		d.sm.dispatchFpu(instr.Index, FpuInstruction{Dest: dst, Src: [2]uint32{src0, src1}, Opcode: uint32(instr.Unit)})
	case UnitIntFP:
		d.sm.registerFile.LockRead(src0)
		d.sm.registerFile.LockRead(src1)
		d.sm.registerFile.LockWrite(dst)
		d.sm.dispatchIntFpu(instr.Index, FpuInstruction{Dest: dst, Src: [2]uint32{src0, src1}, Opcode: uint32(instr.Unit)})
	}

	ctx.state = contextRunning
	ctx.ip++
}

func regForLdSt(instr Instruction, src, dst uint32) uint32 {
	if instr.IsWrite {
		return src
	}
	return dst
}
