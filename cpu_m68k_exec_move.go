// cpu_m68k_exec_move.go - MOVE family and register-shuffle instructions

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

// moveSizeOf decodes MOVE's size field, which the 68000 spells 01/11/10
// for byte/word/long respectively rather than the usual 00/01/10.
func moveSizeOf(op uint16) int {
	switch (op >> 12) & 0x3 {
	case 1:
		return sizeByte
	case 3:
		return sizeWord
	default:
		return sizeLong
	}
}

// execMove implements MOVE <ea>,<ea>: read the source, set N/Z flags
// from it (V and C always cleared, X untouched), write to the
// destination.
func execMove(cpu *M68KCPU, op uint16) {
	size := moveSizeOf(op)
	srcMode, srcReg := (op>>3)&0x7, op&0x7
	dstReg, dstMode := (op>>9)&0x7, (op>>6)&0x7

	src := cpu.computeEA(srcMode, srcReg, size)
	dst := cpu.computeEA(dstMode, dstReg, size)

	cpu.readEA(src, size, func(c *M68KCPU, v uint32) {
		c.setLogicFlags(v, size)
		c.writeEA(dst, size, v, nil)
	})
}

// execMovea implements MOVEA: the destination is always An, a word
// source is sign-extended to 32 bits, and condition codes are left
// untouched.
func execMovea(cpu *M68KCPU, op uint16) {
	size := moveSizeOf(op)
	srcMode, srcReg := (op>>3)&0x7, op&0x7
	dstReg := (op >> 9) & 0x7

	src := cpu.computeEA(srcMode, srcReg, size)
	cpu.readEA(src, size, func(c *M68KCPU, v uint32) {
		c.setAddrReg(dstReg, signExtend(v, size))
	})
}

// execMoveq implements MOVEQ #imm,Dn: the 8-bit immediate is sign
// extended into all 32 bits of Dn; N/Z set from the result, V/C
// cleared, X untouched.
func execMoveq(cpu *M68KCPU, op uint16) {
	reg := (op >> 9) & 0x7
	imm := signExtend(uint32(op&0xFF), sizeByte)
	cpu.D[reg] = imm
	cpu.setLogicFlags(imm, sizeLong)
}

// execLea implements LEA <ea>,An: loads the computed address itself,
// never dereferencing it.
func execLea(cpu *M68KCPU, op uint16) {
	mode, reg := (op>>3)&0x7, op&0x7
	dst := (op >> 9) & 0x7
	ea := cpu.computeEA(mode, reg, sizeLong)
	cpu.setAddrReg(dst, ea.addr)
}

// execPea implements PEA <ea>: pushes the computed address onto the
// active stack.
func execPea(cpu *M68KCPU, op uint16) {
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, sizeLong)
	sp := cpu.a7() - 4
	cpu.setA7(sp)
	cpu.scheduleBusOp(mopWriteLong(sp, ea.addr), nil)
}

// execSwap implements SWAP Dn: exchanges the high and low words.
func execSwap(cpu *M68KCPU, op uint16) {
	reg := op & 0x7
	v := cpu.D[reg]
	cpu.D[reg] = v<<16 | v>>16
	cpu.setLogicFlags(cpu.D[reg], sizeLong)
}

// execExt implements EXT Dn: sign-extends byte->word or word->long.
func execExt(cpu *M68KCPU, op uint16) {
	reg := op & 0x7
	long := (op>>6)&0x1 != 0
	if long {
		cpu.D[reg] = signExtend(cpu.D[reg]&0xFFFF, sizeWord)
		cpu.setLogicFlags(cpu.D[reg], sizeLong)
	} else {
		v := signExtend(cpu.D[reg]&0xFF, sizeByte) & 0xFFFF
		cpu.D[reg] = (cpu.D[reg] &^ 0xFFFF) | v
		cpu.setLogicFlags(v, sizeWord)
	}
}

// execExg implements EXG: swaps two registers whole, either Dn/Dn,
// An/An or Dn/An depending on the opmode field.
func execExg(cpu *M68KCPU, op uint16) {
	rx := (op >> 9) & 0x7
	ry := op & 0x7
	mode := (op >> 3) & 0x1F
	switch mode {
	case 0x08: // Dn,Dn
		cpu.D[rx], cpu.D[ry] = cpu.D[ry], cpu.D[rx]
	case 0x09: // An,An
		ax, ay := cpu.addrReg(rx), cpu.addrReg(ry)
		cpu.setAddrReg(rx, ay)
		cpu.setAddrReg(ry, ax)
	case 0x11: // Dn,An
		d, a := cpu.D[rx], cpu.addrReg(ry)
		cpu.D[rx] = a
		cpu.setAddrReg(ry, d)
	}
}

// execLink implements LINK An,#disp: pushes An, sets An to the new
// stack pointer, then adjusts SP by the sign-extended displacement.
func execLink(cpu *M68KCPU, op uint16) {
	reg := op & 0x7
	disp := signExtend(uint32(cpu.fetchExtWord()), sizeWord)
	sp := cpu.a7() - 4
	cpu.setA7(sp)
	oldAn := cpu.addrReg(reg)
	cpu.scheduleBusOp(mopWriteLong(sp, oldAn), func(c *M68KCPU) {
		c.setAddrReg(reg, sp)
		c.setA7(sp + disp)
	})
}

// execUnlk implements UNLK An: restores SP from An, then pops the
// saved frame pointer back into An.
func execUnlk(cpu *M68KCPU, op uint16) {
	reg := op & 0x7
	sp := cpu.addrReg(reg)
	cpu.scheduleBusOp(mopReadLong(sp, 0), func(c *M68KCPU) {
		c.setAddrReg(reg, c.dataLo)
		c.setA7(sp + 4)
	})
}

// execMoveUSP implements MOVE USP,An / MOVE An,USP (supervisor only).
func execMoveUSP(cpu *M68KCPU, op uint16) {
	if cpu.sr&srS == 0 {
		cpu.raiseException(vecPrivilegeViolation)
		return
	}
	reg := op & 0x7
	toUSP := op&0x8 == 0
	if toUSP {
		cpu.usp = cpu.addrReg(reg)
	} else {
		cpu.setAddrReg(reg, cpu.usp)
	}
}

// execMoveFromSR implements MOVE SR,<ea>.
func execMoveFromSR(cpu *M68KCPU, op uint16) {
	mode, reg := (op>>3)&0x7, op&0x7
	dst := cpu.computeEA(mode, reg, sizeWord)
	cpu.writeEA(dst, sizeWord, uint32(cpu.sr), nil)
}

// execMoveToCCR implements MOVE <ea>,CCR.
func execMoveToCCR(cpu *M68KCPU, op uint16) {
	mode, reg := (op>>3)&0x7, op&0x7
	src := cpu.computeEA(mode, reg, sizeWord)
	cpu.readEA(src, sizeWord, func(c *M68KCPU, v uint32) {
		c.sr = (c.sr &^ srCCR) | uint16(v)&srCCR
	})
}

// execMoveToSR implements MOVE <ea>,SR (supervisor only).
func execMoveToSR(cpu *M68KCPU, op uint16) {
	if cpu.sr&srS == 0 {
		cpu.raiseException(vecPrivilegeViolation)
		return
	}
	mode, reg := (op>>3)&0x7, op&0x7
	src := cpu.computeEA(mode, reg, sizeWord)
	cpu.readEA(src, sizeWord, func(c *M68KCPU, v uint32) {
		c.sr = uint16(v)
	})
}
