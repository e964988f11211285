// cpu_m68k_addressing.go - Effective address computation for the 68000 engine

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
cpu_m68k_addressing.go - Addressing Modes

Effective-address computation reads any extension words (displacements,
absolute addresses, immediates) directly off the bus rather than
through the micro-op queue: these reads ride on the instruction stream
and are not where DMA contention against Copper/blitter cycles matters
in practice. The operand access itself - the read or write that an
instruction's addressing mode ultimately targets - always goes through
scheduleBusOp so it is subject to the same arbiter as everything else.

readEA/writeEA take a continuation rather than returning a value
because a memory operand's read may take one or more ticks to retire
behind DMA; register and immediate operands call their continuation
inline since no bus op occurred.
*/

package main

// eaInfo describes a computed effective address: either a register
// (direct access, no bus op) or a memory location.
type eaInfo struct {
	isReg   bool
	isAddr  bool // register is an address register, not data
	isImm   bool
	isPreDec bool // computed via -(An): writeEA uses hi-word-first ordering for long stores
	regIdx  uint16
	addr    uint32
	immVal  uint32
}

// fetchExtWord reads the next prefetch-stream word directly (see file
// header) and advances PC past it.
func (cpu *M68KCPU) fetchExtWord() uint16 {
	v := cpu.bus.ReadWord(cpu.pc)
	cpu.pc += 2
	cpu.curLen += 2
	return v
}

func (cpu *M68KCPU) fetchExtLong() uint32 {
	hi := cpu.fetchExtWord()
	lo := cpu.fetchExtWord()
	return uint32(hi)<<16 | uint32(lo)
}

// computeEA decodes a 6-bit mode/register field into an eaInfo,
// consuming any extension words the mode requires. size matters for
// auto-increment/decrement step (byte access via A7 steps by 2, and
// long accesses step by 4).
func (cpu *M68KCPU) computeEA(mode, reg uint16, size int) eaInfo {
	switch mode {
	case amDataDirect:
		return eaInfo{isReg: true, regIdx: reg}
	case amAddrDirect:
		return eaInfo{isReg: true, isAddr: true, regIdx: reg}
	case amAddrIndirect:
		return eaInfo{addr: cpu.addrReg(reg)}
	case amAddrPostInc:
		addr := cpu.addrReg(reg)
		step := stepSize(reg, size)
		cpu.setAddrReg(reg, addr+uint32(step))
		return eaInfo{addr: addr}
	case amAddrPreDec:
		step := stepSize(reg, size)
		addr := cpu.addrReg(reg) - uint32(step)
		cpu.setAddrReg(reg, addr)
		return eaInfo{addr: addr, isPreDec: true}
	case amAddrDisp:
		disp := signExtend(uint32(cpu.fetchExtWord()), sizeWord)
		return eaInfo{addr: cpu.addrReg(reg) + disp}
	case amAddrIndex:
		return eaInfo{addr: cpu.resolveIndexed(cpu.addrReg(reg))}
	case amOther:
		switch reg {
		case amOtherAbsWord:
			addr := signExtend(uint32(cpu.fetchExtWord()), sizeWord)
			return eaInfo{addr: addr}
		case amOtherAbsLong:
			return eaInfo{addr: cpu.fetchExtLong()}
		case amOtherPCDisp:
			base := cpu.pc
			disp := signExtend(uint32(cpu.fetchExtWord()), sizeWord)
			return eaInfo{addr: base + disp}
		case amOtherPCIndex:
			return eaInfo{addr: cpu.resolveIndexed(cpu.pc)}
		case amOtherImmediate:
			switch size {
			case sizeByte:
				return eaInfo{isImm: true, immVal: uint32(cpu.fetchExtWord()) & 0xFF}
			case sizeWord:
				return eaInfo{isImm: true, immVal: uint32(cpu.fetchExtWord())}
			default:
				return eaInfo{isImm: true, immVal: cpu.fetchExtLong()}
			}
		}
	}
	return eaInfo{}
}

// stepSize is the auto-increment/decrement amount for An,size - the
// one exception being byte access through A7, which steps by 2 to
// keep the stack pointer word-aligned.
func stepSize(reg uint16, size int) int {
	n := 1
	switch size {
	case sizeWord:
		n = 2
	case sizeLong:
		n = 4
	}
	if size == sizeByte && reg == 7 {
		n = 2
	}
	return n
}

// resolveIndexed implements d8(An,Xn)/d8(PC,Xn): an 8-bit displacement
// plus a general register (data or address) used whole (long) or
// sign-extended from its low word, per the extension word's format.
func (cpu *M68KCPU) resolveIndexed(base uint32) uint32 {
	ext := cpu.fetchExtWord()
	xnIsAddr := ext&0x8000 != 0
	xnReg := (ext >> 12) & 0x7
	longIndex := ext&0x0800 != 0
	disp := signExtend(uint32(ext&0xFF), sizeByte)

	var xn uint32
	if xnIsAddr {
		xn = cpu.addrReg(xnReg)
	} else {
		xn = cpu.D[xnReg]
	}
	if !longIndex {
		xn = signExtend(xn, sizeWord)
	}
	return base + xn + disp
}

// readEA delivers an operand's value to cont. Register and immediate
// operands call back inline; memory operands schedule a bus read.
func (cpu *M68KCPU) readEA(ea eaInfo, size int, cont func(cpu *M68KCPU, v uint32)) {
	if ea.isImm {
		cont(cpu, ea.immVal)
		return
	}
	if ea.isReg {
		var v uint32
		if ea.isAddr {
			v = cpu.addrReg(ea.regIdx)
		} else {
			v = cpu.D[ea.regIdx]
		}
		cont(cpu, v&maskFor(size))
		return
	}
	switch size {
	case sizeByte:
		cpu.scheduleBusOp(mopReadByte(ea.addr, 0), func(c *M68KCPU) { cont(c, c.dataLo) })
	case sizeWord:
		cpu.scheduleBusOp(mopReadWord(ea.addr, 0), func(c *M68KCPU) { cont(c, c.dataLo) })
	default:
		cpu.scheduleBusOp(mopReadLong(ea.addr, 0), func(c *M68KCPU) { cont(c, c.dataLo) })
	}
}

// writeEA stores value into the operand described by ea. cont, if
// non-nil, runs once the store has retired; for register targets that
// is immediately (no bus op occurred), for memory targets it is
// chained behind the scheduled write.
func (cpu *M68KCPU) writeEA(ea eaInfo, size int, value uint32, cont m68kFollowup) {
	if ea.isReg {
		if ea.isAddr {
			if size == sizeLong {
				cpu.setAddrReg(ea.regIdx, value)
			} else {
				cpu.setAddrReg(ea.regIdx, signExtend(value, size))
			}
		} else {
			cpu.writeDataReg(ea.regIdx, value, size)
		}
		if cont != nil {
			cont(cpu)
		}
		return
	}
	// Pre-decrement long stores write the high word before the low
	// word as two distinct bus transactions - Agnus observes this
	// order, so a DMA slot stolen between them is visible (spec.md
	// 4.1). Byte/word pre-decrement stores are already a single bus
	// op and need no special ordering.
	if ea.isPreDec && size == sizeLong {
		hi := value >> 16
		lo := value & 0xFFFF
		cpu.scheduleBusOp(mopWriteMemHiFirst(ea.addr, hi), func(c *M68KCPU) {
			c.scheduleBusOp(mopWriteMemLoSecond(ea.addr+2, lo), cont)
		})
		return
	}
	switch size {
	case sizeByte:
		cpu.scheduleBusOp(mopWriteByte(ea.addr, value), cont)
	case sizeWord:
		cpu.scheduleBusOp(mopWriteWord(ea.addr, value), cont)
	default:
		cpu.scheduleBusOp(mopWriteLong(ea.addr, value), cont)
	}
}

// writeDataReg stores into Dn, preserving the untouched high bits for
// byte/word-size writes (68000's "partial register write" behaviour).
func (cpu *M68KCPU) writeDataReg(reg uint16, value uint32, size int) {
	switch size {
	case sizeByte:
		cpu.D[reg] = (cpu.D[reg] &^ 0xFF) | (value & 0xFF)
	case sizeWord:
		cpu.D[reg] = (cpu.D[reg] &^ 0xFFFF) | (value & 0xFFFF)
	default:
		cpu.D[reg] = value
	}
}
