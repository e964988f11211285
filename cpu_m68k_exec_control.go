// cpu_m68k_exec_control.go - Branches, subroutine calls, traps and system control

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

// execBcc implements Bcc/BRA/BSR: an 8-bit displacement in the opcode
// itself, or a 16-bit extension word when that byte is zero.
func execBcc(cpu *M68KCPU, op uint16) {
	cc := (op >> 8) & 0xF
	disp8 := int32(int8(op & 0xFF))

	branchFrom := cpu.pc - 2 // address of the displacement field
	var disp int32
	if disp8 == 0 {
		disp = int32(int16(cpu.fetchExtWord()))
	} else {
		disp = disp8
	}
	target := uint32(int64(branchFrom) + int64(disp))

	if cc == 1 { // BSR
		sp := cpu.a7() - 4
		cpu.setA7(sp)
		retAddr := cpu.pc
		cpu.scheduleBusOp(mopWriteLong(sp, retAddr), func(c *M68KCPU) {
			c.jumpTo(target)
		})
		return
	}
	if cc == 0 || cpu.CheckCondition(cc) { // BRA or condition true
		cpu.jumpTo(target)
	}
}

// jumpTo redirects the prefetch pipeline to addr: the in-flight IRC is
// discarded and refetched from the new stream.
func (cpu *M68KCPU) jumpTo(addr uint32) {
	cpu.pc = addr
	cpu.queue.reset()
	cpu.scheduleBusOp(mopFetchIRC(), nil)
}

// execDbcc implements DBcc: loop while the condition is false and the
// counter (a word in Dn) has not reached -1.
func execDbcc(cpu *M68KCPU, op uint16) {
	cc := (op >> 8) & 0xF
	reg := op & 0x7
	branchFrom := cpu.pc
	disp := int32(int16(cpu.fetchExtWord()))

	if cpu.CheckCondition(cc) {
		return
	}
	count := int16(cpu.D[reg]&0xFFFF) - 1
	cpu.D[reg] = (cpu.D[reg] &^ 0xFFFF) | uint32(uint16(count))
	if count != -1 {
		target := uint32(int64(branchFrom) + int64(disp))
		cpu.jumpTo(target)
	}
}

// execScc implements Scc: sets every bit of the byte destination if
// the condition holds, clears it otherwise.
func execScc(cpu *M68KCPU, op uint16) {
	cc := (op >> 8) & 0xF
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, sizeByte)
	var v uint32
	if cpu.CheckCondition(cc) {
		v = 0xFF
	}
	cpu.writeEA(ea, sizeByte, v, nil)
}

// execJmp/execJsr implement JMP/JSR <ea>: the effective address itself
// is the target, control-mode addressing only (no Dn/An/immediate).
func execJmp(cpu *M68KCPU, op uint16) {
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, sizeLong)
	cpu.jumpTo(ea.addr)
}

func execJsr(cpu *M68KCPU, op uint16) {
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, sizeLong)
	sp := cpu.a7() - 4
	cpu.setA7(sp)
	retAddr := cpu.pc
	cpu.scheduleBusOp(mopWriteLong(sp, retAddr), func(c *M68KCPU) {
		c.jumpTo(ea.addr)
	})
}

// execRts pops the return address pushed by JSR/BSR.
func execRts(cpu *M68KCPU, op uint16) {
	sp := cpu.a7()
	cpu.scheduleBusOp(mopReadLong(sp, 0), func(c *M68KCPU) {
		c.setA7(sp + 4)
		c.jumpTo(c.dataLo)
	})
}

// execRte pops the full group-1/2 exception frame (supervisor only).
func execRte(cpu *M68KCPU, op uint16) {
	if cpu.sr&srS == 0 {
		cpu.raiseException(vecPrivilegeViolation)
		return
	}
	sp := cpu.ssp
	cpu.scheduleBusOp(mopReadWord(sp, 0), func(c *M68KCPU) {
		sr := c.dataLo
		c.scheduleBusOp(mopReadLong(sp+2, 1), func(c2 *M68KCPU) {
			c2.sr = uint16(sr)
			c2.ssp = sp + 6
			c2.jumpTo(c2.dataHi)
		})
	})
}

// execRtr pops CCR and PC (user-level return, SR's system byte is
// left untouched).
func execRtr(cpu *M68KCPU, op uint16) {
	sp := cpu.a7()
	cpu.scheduleBusOp(mopReadWord(sp, 0), func(c *M68KCPU) {
		ccr := c.dataLo
		c.scheduleBusOp(mopReadLong(sp+2, 1), func(c2 *M68KCPU) {
			c2.sr = (c2.sr &^ srCCR) | uint16(ccr)&srCCR
			c2.setA7(sp + 6)
			c2.jumpTo(c2.dataHi)
		})
	})
}

// execTrap implements TRAP #n: vectors to 32+n.
func execTrap(cpu *M68KCPU, op uint16) {
	n := op & 0xF
	cpu.raiseTrapException(uint8(vecTrapBase + n))
}

// execTrapv implements TRAPV: traps vecTrapv if V is set, otherwise a
// no-op.
func execTrapv(cpu *M68KCPU, op uint16) {
	if cpu.flag(srV) {
		cpu.raiseTrapException(vecTrapv)
	}
}

// execChk implements CHK <ea>,Dn: traps vecCHK if Dn (as a signed
// word) is negative or greater than the bound.
func execChk(cpu *M68KCPU, op uint16) {
	dn := (op >> 9) & 0x7
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, sizeWord)
	cpu.readEA(ea, sizeWord, func(c *M68KCPU, bound uint32) {
		v := int16(c.D[dn] & 0xFFFF)
		b := int16(bound)
		if v < 0 {
			c.flagSet(srN, true)
			c.raiseTrapException(vecCHK)
		} else if v > b {
			c.flagSet(srN, false)
			c.raiseTrapException(vecCHK)
		}
	})
}

// execTas implements TAS <ea>: tests the operand then sets its top
// bit, as one indivisible read-modify-write bus cycle on real
// hardware (modelled here as back-to-back scheduled ops).
func execTas(cpu *M68KCPU, op uint16) {
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, sizeByte)
	cpu.readEA(ea, sizeByte, func(c *M68KCPU, v uint32) {
		c.setLogicFlags(v, sizeByte)
		c.writeEA(ea, sizeByte, v|0x80, nil)
	})
}

// execNbcd implements NBCD <ea>: 0 - operand - X in packed BCD.
func execNbcd(cpu *M68KCPU, op uint16) {
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, sizeByte)
	cpu.readEA(ea, sizeByte, func(c *M68KCPU, v uint32) {
		result, carry := bcdSub(0, v, c.flag(srX))
		c.flagSet(srC, carry)
		c.flagSet(srX, carry)
		if result != 0 {
			c.flagSet(srZ, false)
		}
		c.flagSet(srN, result&0x80 != 0)
		c.writeEA(ea, sizeByte, uint32(result), nil)
	})
}

// execReset implements RESET (supervisor only) as resetPulseCycles
// internal cycles. No reset signal reaches the custom chips or CIAs,
// and the CPU's own state is unaffected.
func execReset(cpu *M68KCPU, op uint16) {
	if cpu.sr&srS == 0 {
		cpu.raiseException(vecPrivilegeViolation)
		return
	}
	cpu.scheduleInternal(resetPulseCycles, nil)
}

const resetPulseCycles = 124

// execNop implements NOP: consumes no operand, touches nothing.
func execNop(cpu *M68KCPU, op uint16) {}

// execStop implements STOP #imm (supervisor only): loads SR then
// halts instruction processing until an unmasked interrupt arrives.
func execStop(cpu *M68KCPU, op uint16) {
	if cpu.sr&srS == 0 {
		cpu.raiseException(vecPrivilegeViolation)
		return
	}
	imm := cpu.fetchExtWord()
	cpu.sr = imm
	cpu.state = cpuStopped
}

// execLineA/execLineF handle the two opcode lines Motorola reserved
// for coprocessor/OS extension and never defined on the plain 68000;
// both simply trap.
func execLineA(cpu *M68KCPU, op uint16) { cpu.raiseException(vecLineA) }
func execLineF(cpu *M68KCPU, op uint16) { cpu.raiseException(vecLineF) }
