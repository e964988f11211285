// cpu_m68k.go - Motorola 68000 cycle-accurate CPU engine for the Amiga core

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
cpu_m68k.go - Motorola 68000 CPU Engine

This module implements the 68000 as a tick-driven pipeline rather than an
atomic fetch-decode-execute interpreter: every instruction is a sequence of
typed micro-operations (cpu_m68k_microops.go) consumed one per granted bus
slot. This is the only design that reproduces the real chip's behaviour
when a bus cycle mid-instruction faults (address error) or is stretched by
DMA contention from Agnus - both of which a "decode once, sleep N cycles"
model cannot express.

Register file:
  D0-D7   - 32-bit data registers
  A0-A6   - 32-bit address registers
  usp/ssp - the two stack pointers; A7 aliases whichever the S bit selects
  PC      - 32-bit programme counter, always word-aligned in valid state
  SR      - 16-bit status register (T1 T0 S M - I2 I1 I0 - X N Z V C)

Prefetch pipeline:
  IR  - the instruction word currently executing
  IRC - the next word, already fetched
  PC points at the word after IRC once IR is loaded: instruction_start_pc
  = PC-4. This is load-bearing for every PC-relative addressing mode and
  for exception frame layout, so IR/IRC are modelled as first-class state,
  never reconstructed by re-reading memory.
*/

package main

// ------------------------------------------------------------------------------
// Status Register Bit Masks
// ------------------------------------------------------------------------------
const (
	srC   = 0x0001
	srV   = 0x0002
	srZ   = 0x0004
	srN   = 0x0008
	srX   = 0x0010
	srIPL = 0x0700
	srS   = 0x2000
	srT0  = 0x4000
	srT1  = 0x8000
	srCCR = 0x001F
)

const (
	sizeByte = 0
	sizeWord = 1
	sizeLong = 2
)

// Addressing mode codes, matching the 68000's 6-bit mode/register field.
const (
	amDataDirect = iota
	amAddrDirect
	amAddrIndirect
	amAddrPostInc
	amAddrPreDec
	amAddrDisp
	amAddrIndex
	amOther // mode 7: reg selects abs.W, abs.L, d16(PC), d8(PC,Xn), #imm
)

const (
	amOtherAbsWord = iota
	amOtherAbsLong
	amOtherPCDisp
	amOtherPCIndex
	amOtherImmediate
)

// cpuState is the CPU's top-level run state (spec.md 4.1's state machine).
type cpuState uint8

const (
	cpuRunning cpuState = iota
	cpuStopped
	cpuHalted
)

// pendingException carries the data needed to push an exception frame once
// the triggering bus op has been recorded; group-0 faults occur mid-
// instruction, so the frame push is deferred to the next tick rather than
// built inline inside the bus-op handler.
type pendingException struct {
	active     bool
	vector     uint8
	group0     bool
	faultAddr  uint32
	faultFC    uint8
	faultRW    bool // true = read
	faultIN    bool // true = instruction fetch
	overridePC bool
	pcValue    uint32
}

// M68KCPU is the 68000 execution engine. It owns no memory of its own - all
// reads and writes route through the Bus interface, which is the Amiga's
// AmigaBus in the full machine (the BusArbiter is consulted separately,
// per bus micro-op, in Tick) and a flat test memory in unit tests.
type M68KCPU struct {
	D [8]uint32
	A [7]uint32 // A0-A6; A7 is synthesised from usp/ssp below
	usp, ssp uint32
	pc       uint32
	sr       uint16

	ir, irc uint16 // prefetch pipeline

	dataLo, dataHi uint32 // scratch for ExecuteFollowup operands

	queue m68kQueue

	state cpuState

	ipl        uint8 // latched from Paula at instruction boundaries
	pendingExc pendingException
	pendingIPL uint8 // IPL captured at interrupt-ack time, applied to SR on frame push

	bus Bus

	curOpcode uint16
	curSize   int
	curLen    uint16 // instruction length in bytes, for trap-style PC push
	srcMode, srcReg     uint16
	dstMode, dstReg     uint16
	srcAddr, dstAddr    uint32 // effective addresses, when memory-resident
	srcIsMem, dstIsMem  bool
	curFollowup         m68kFollowup

	doubleFault bool

	cycles uint64 // master ticks elapsed, for conformance inspection
}

type m68kHandler func(cpu *M68KCPU, opcode uint16)
type m68kFollowup func(cpu *M68KCPU)

// Bus is the sole coupling between the CPU and the machine: a capability
// set of byte/word/long read and write primitives. The Amiga's BusArbiter
// implements it; any target region (chip RAM, custom chip, ROM) is free
// to do so too.
type Bus interface {
	ReadByte(addr uint32) uint8
	ReadWord(addr uint32) uint16
	ReadLong(addr uint32) uint32
	WriteByte(addr uint32, v uint8)
	WriteWord(addr uint32, v uint16)
	WriteLong(addr uint32, v uint32)
}

func NewM68KCPU(bus Bus) *M68KCPU {
	cpu := &M68KCPU{bus: bus}
	cpu.Reset()
	return cpu
}

// Reset reinitialises the CPU from vectors 0 and 1, exactly as real
// hardware does on RESET: SSP from vector 0, PC from vector 1.
func (cpu *M68KCPU) Reset() {
	cpu.queue.reset()
	cpu.pendingExc = pendingException{}
	cpu.sr = srS | 0x0700 // supervisor mode, interrupt mask 7
	cpu.ssp = cpu.bus.ReadLong(0)
	cpu.pc = cpu.bus.ReadLong(4)
	cpu.state = cpuRunning
	cpu.ipl = 0
	cpu.doubleFault = false
	cpu.queue.push(mopFetchOpcode())
	cpu.queue.push(mopFetchIRC())
}

// a7 returns the active stack pointer: usp or ssp according to the S bit
// (spec.md 3's register-file invariant - exactly one is active as A7).
func (cpu *M68KCPU) a7() uint32 {
	if cpu.sr&srS != 0 {
		return cpu.ssp
	}
	return cpu.usp
}

func (cpu *M68KCPU) setA7(v uint32) {
	if cpu.sr&srS != 0 {
		cpu.ssp = v
	} else {
		cpu.usp = v
	}
}

func (cpu *M68KCPU) addrReg(n uint16) uint32 {
	if n == 7 {
		return cpu.a7()
	}
	return cpu.A[n]
}

func (cpu *M68KCPU) setAddrReg(n uint16, v uint32) {
	if n == 7 {
		cpu.setA7(v)
	} else {
		cpu.A[n] = v
	}
}

// SetInterruptLevel is called by Paula whenever the computed IPL changes.
// It does not itself trigger interrupt entry - that happens only at the
// next instruction boundary once the micro-op queue drains (spec.md 4.1).
func (cpu *M68KCPU) SetInterruptLevel(level uint8) {
	cpu.ipl = level & 0x07
}

// SetupPrefetch and the direct accessors below exist solely for the
// conformance test-harness surface (spec.md 6); machine code never calls
// them.
func (cpu *M68KCPU) SetupPrefetch(ir, irc uint16) {
	cpu.ir = ir
	cpu.irc = irc
	cpu.queue.reset()
	cpu.queue.push(mopExecute())
}

func (cpu *M68KCPU) SR() uint16      { return cpu.sr }
func (cpu *M68KCPU) SetSR(v uint16)  { cpu.sr = v }
func (cpu *M68KCPU) PC() uint32      { return cpu.pc }
func (cpu *M68KCPU) SetPC(v uint32)  { cpu.pc = v }
func (cpu *M68KCPU) USP() uint32     { return cpu.usp }
func (cpu *M68KCPU) SetUSP(v uint32) { cpu.usp = v }
func (cpu *M68KCPU) SSP() uint32     { return cpu.ssp }
func (cpu *M68KCPU) SetSSP(v uint32) { cpu.ssp = v }
func (cpu *M68KCPU) State() cpuState { return cpu.state }
func (cpu *M68KCPU) Cycles() uint64  { return cpu.cycles }
func (cpu *M68KCPU) IR() uint16      { return cpu.ir }
func (cpu *M68KCPU) IRC() uint16     { return cpu.irc }

func (cpu *M68KCPU) flagSet(mask uint16, v bool) {
	if v {
		cpu.sr |= mask
	} else {
		cpu.sr &^= mask
	}
}

func (cpu *M68KCPU) flag(mask uint16) bool { return cpu.sr&mask != 0 }

// Tick advances the CPU by exactly one master tick. It is the entire
// external contract of the CPU engine (spec.md 4.1).
func (cpu *M68KCPU) Tick(arbiter *BusArbiter) {
	cpu.cycles++

	if cpu.state == cpuHalted {
		return
	}

	if cpu.state == cpuStopped {
		if cpu.ipl > uint8((cpu.sr&srIPL)>>8) {
			cpu.state = cpuRunning
		} else {
			return
		}
	}

	if cpu.pendingExc.active {
		cpu.serviceException()
		return
	}

	op := cpu.queue.peek()
	if op == nil {
		cpu.atInstructionBoundary()
		return
	}

	switch op.kind {
	case opInternal:
		op.n--
		if op.n <= 0 {
			cpu.queue.pop()
		}
		return
	case opFetchOpcode, opFetchIRC, opReadByte, opReadWord, opReadLong,
		opWriteByte, opWriteWord, opWriteLong, opWriteMemHiFirst, opWriteMemLoSecond:
		if arbiter != nil && !arbiter.GrantCPUSlot() {
			return // bus slot stolen by DMA this color clock; tick absorbed as wait state
		}
		cpu.performBusOp(*op)
		cpu.queue.pop()
		return
	case opExecute, opExecuteFollowup:
		cpu.queue.pop()
		cpu.runExecute(op.kind == opExecuteFollowup)
		return
	}
}

// atInstructionBoundary runs once the micro-op queue is empty: it samples
// IPL against SR's interrupt mask and decides between interrupt entry and
// the next instruction fetch.
func (cpu *M68KCPU) atInstructionBoundary() {
	mask := uint8((cpu.sr & srIPL) >> 8)
	if cpu.ipl > mask {
		cpu.beginInterruptAck()
		return
	}
	cpu.queue.push(mopExecute())
}

// performBusOp executes the bus-facing half of one micro-op. Address-error
// checking lives here because oddness is a property of the transaction,
// not of decode.
func (cpu *M68KCPU) performBusOp(op m68kMicroOp) {
	switch op.kind {
	case opFetchOpcode:
		cpu.ir = cpu.irc
	case opFetchIRC:
		if cpu.pc&1 != 0 {
			cpu.raiseAddressError(cpu.pc, true, true)
			return
		}
		cpu.irc = cpu.bus.ReadWord(cpu.pc)
		cpu.pc += 2
	case opReadByte:
		v := cpu.bus.ReadByte(op.addr)
		cpu.storeScratch(op.dst, uint32(v))
	case opReadWord:
		if op.addr&1 != 0 {
			cpu.raiseAddressError(op.addr, true, false)
			return
		}
		v := cpu.bus.ReadWord(op.addr)
		cpu.storeScratch(op.dst, uint32(v))
	case opReadLong:
		if op.addr&1 != 0 {
			cpu.raiseAddressError(op.addr, true, false)
			return
		}
		v := cpu.bus.ReadLong(op.addr)
		cpu.storeScratch(op.dst, v)
	case opWriteByte:
		cpu.bus.WriteByte(op.addr, uint8(op.data))
	case opWriteWord, opWriteMemHiFirst, opWriteMemLoSecond:
		if op.addr&1 != 0 {
			cpu.raiseAddressError(op.addr, false, false)
			return
		}
		cpu.bus.WriteWord(op.addr, uint16(op.data))
	case opWriteLong:
		if op.addr&1 != 0 {
			cpu.raiseAddressError(op.addr, false, false)
			return
		}
		cpu.bus.WriteLong(op.addr, op.data)
	}
}

// scheduleBusOp enqueues one bus-facing micro-op on behalf of the
// instruction currently executing and arranges for runExecute's
// completion check (the one that schedules the next opcode fetch) to
// run again once it retires, by following it with an
// ExecuteFollowup. cont may be nil when nothing further is needed
// once the op completes - e.g. the final write of a read-modify-write
// sequence.
func (cpu *M68KCPU) scheduleBusOp(op m68kMicroOp, cont m68kFollowup) {
	cpu.queue.push(op)
	cpu.queue.push(mopExecuteFollowup())
	cpu.curFollowup = cont
}

// scheduleInternal enqueues n ticks of internal-only work (no bus
// traffic, never subject to DMA contention) ahead of the same
// completion-check mechanism as scheduleBusOp.
func (cpu *M68KCPU) scheduleInternal(n int, cont m68kFollowup) {
	cpu.queue.push(mopInternal(n))
	cpu.queue.push(mopExecuteFollowup())
	cpu.curFollowup = cont
}

func (cpu *M68KCPU) storeScratch(dst int, v uint32) {
	if dst == 1 {
		cpu.dataHi = v
	} else {
		cpu.dataLo = v
	}
}

// runExecute invokes the decoded instruction's handler once all of its
// operand-fetch micro-ops have drained. followup indicates the handler is
// resuming after an enqueued read rather than running for the first time.
func (cpu *M68KCPU) runExecute(followup bool) {
	if !followup {
		opcode := cpu.ir
		cpu.curOpcode = opcode
		cpu.curFollowup = nil
		cpu.curLen = 2
		h := m68kDecodeTable[opcode]
		if h == nil {
			cpu.raiseException(vecIllegalInstruction)
			return
		}
		h(cpu, opcode)
	} else if cpu.curFollowup != nil {
		f := cpu.curFollowup
		cpu.curFollowup = nil
		f(cpu)
	}

	if cpu.pendingExc.active {
		return
	}
	if cpu.queue.empty() && cpu.state == cpuRunning {
		cpu.queue.push(mopFetchOpcode())
		cpu.queue.push(mopFetchIRC())
	}
}
