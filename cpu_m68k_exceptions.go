// cpu_m68k_exceptions.go - Exception and interrupt processing for the 68000 engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
cpu_m68k_exceptions.go - Exception Processing

Group-0 (address error, bus error, reset) and group-1/2 (everything else)
exceptions diverge in stack-frame shape: group-0 pushes a 14-byte frame
(access-info, fault address, IR, pre-SR, pre-PC), group-1/2 pushes a 6-byte
frame (SR, PC). Both are pushed high-word-first on the SSP after switching
to supervisor mode. A second address/bus error while pushing either frame
is a double fault: the CPU halts and the only recovery is reset.

Priority, highest first: reset, address error, bus error, illegal
instruction, privilege violation, trace, interrupt, trap, trapv, chk,
divide-by-zero. This module does not arbitrate between simultaneously
pending causes beyond what the decode/execute path already guarantees
(only one fault can be in flight at a time on a single-threaded engine);
it implements entry, vector fetch, and frame layout for each.
*/

package main

// Exception vector numbers (spec.md 6, GLOSSARY "Group-0 exception").
const (
	vecReset              = 0
	vecBusError           = 2
	vecAddressError       = 3
	vecIllegalInstruction = 4
	vecZeroDivide         = 5
	vecCHK                = 6
	vecTrapv              = 7
	vecPrivilegeViolation = 8
	vecTrace              = 9
	vecLineA              = 10
	vecLineF              = 11
	vecUninitializedInt   = 15
	vecSpuriousInt        = 24
	vecAutovectorBase     = 24 // 24+IPL for IPL 1..7
	vecTrapBase           = 32 // TRAP #0..#15
)

// raiseAddressError records a group-0 fault. Bus ops call this instead of
// completing the transaction; the pending-exception flag is serviced on
// the following tick so an in-flight bus op never straddles the fault.
func (cpu *M68KCPU) raiseAddressError(addr uint32, isRead, isFetch bool) {
	cpu.pendingExc = pendingException{
		active:    true,
		vector:    vecAddressError,
		group0:    true,
		faultAddr: addr,
		faultFC:   cpu.functionCode(),
		faultRW:   isRead,
		faultIN:   isFetch,
	}
}

// functionCode reports the 3-bit FC value (supervisor/user, program/data)
// that accompanies a group-0 access-info word. Data space is assumed;
// instruction-fetch faults are distinguished by the I/N bit, not by FC.
func (cpu *M68KCPU) functionCode() uint8 {
	var fc uint8
	if cpu.sr&srS != 0 {
		fc = 4 // supervisor
	}
	return fc | 1 // FC1 (data)
}

// raiseException begins group-1/2 entry for a non-address-error vector
// (illegal instruction, privilege violation). The pushed PC is the
// trapping instruction's own start address. Address/bus errors always go
// through raiseAddressError instead.
func (cpu *M68KCPU) raiseException(vector uint8) {
	cpu.pendingExc = pendingException{active: true, vector: vector}
}

// raiseTrapException begins group-1/2 entry for TRAP/TRAPV/CHK/zero-divide
// - instructions that complete before trapping, so the pushed PC is the
// address of the instruction that would follow, not the trapping
// instruction's own start address.
func (cpu *M68KCPU) raiseTrapException(vector uint8) {
	nextPC := cpu.pc - 4 + uint32(cpu.curLen)
	cpu.pendingExc = pendingException{active: true, vector: vector, overridePC: true, pcValue: nextPC}
}

// beginInterruptAck selects the autovector for the current IPL and
// records that level in pendingIPL. Entering supervisor mode, raising
// SR's mask to the recorded level, the frame push and the vector jump
// all happen later in serviceException.
func (cpu *M68KCPU) beginInterruptAck() {
	level := cpu.ipl
	cpu.pendingExc = pendingException{
		active: true,
		vector: vecAutovectorBase + level,
	}
	cpu.pendingIPL = level
}

// serviceException performs the common frame-push-and-vector-jump tail of
// every exception: save SR, enter supervisor mode with trace cleared,
// write the frame, read the vector, and restart prefetch from the handler.
func (cpu *M68KCPU) serviceException() {
	exc := cpu.pendingExc
	cpu.pendingExc = pendingException{}

	oldSR := cpu.sr
	oldPC := cpu.pc - 4 // instruction_start_pc = PC-4 once IR is loaded
	if exc.overridePC {
		oldPC = exc.pcValue
	}

	cpu.sr |= srS
	cpu.sr &^= (srT0 | srT1)
	if exc.vector == vecAutovectorBase+uint8(cpu.pendingIPL) && cpu.pendingIPL > 0 {
		cpu.sr = (cpu.sr &^ srIPL) | uint16(cpu.pendingIPL)<<8
	}

	sp := cpu.ssp

	if exc.group0 {
		sp -= 14
		if sp&1 != 0 {
			cpu.enterDoubleFault()
			return
		}
		// Access-info word: bits 2-0 function code, bit 3 I/N (1=instruction
		// fetch), bit 4 R/W (1=read), bits 15-5 reserved/zero.
		accessInfo := uint16(exc.faultFC & 0x07)
		if exc.faultRW {
			accessInfo |= 1 << 4
		}
		if exc.faultIN {
			accessInfo |= 1 << 3
		}
		cpu.bus.WriteWord(sp, accessInfo)
		cpu.bus.WriteLong(sp+2, exc.faultAddr)
		cpu.bus.WriteWord(sp+6, cpu.ir)
		cpu.bus.WriteWord(sp+8, oldSR)
		cpu.bus.WriteLong(sp+10, oldPC)
	} else {
		sp -= 6
		cpu.bus.WriteWord(sp, oldSR)
		cpu.bus.WriteLong(sp+2, oldPC)
	}
	cpu.ssp = sp

	vectorAddr := uint32(exc.vector) * 4
	cpu.pc = cpu.bus.ReadLong(vectorAddr)

	cpu.queue.reset()
	cpu.queue.push(mopFetchIRC())
	cpu.queue.push(mopFetchOpcode())
	cpu.queue.push(mopFetchIRC())
	cpu.pendingIPL = 0
}

// enterDoubleFault models spec.md 4.1's "address/bus error during the
// frame push triggers a double fault -> halted state". There is no
// recovery but an external Reset().
func (cpu *M68KCPU) enterDoubleFault() {
	cpu.doubleFault = true
	cpu.state = cpuHalted
	cpu.queue.reset()
}
