// cpu_m68k_exec_logic.go - AND/OR/EOR families, unary logic, bit tests

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

// execAnd/execOr/execEor implement the three two-operand logical
// instructions: <ea>,Dn or Dn,<ea> depending on the direction bit.
func execAnd(cpu *M68KCPU, op uint16) { execLogicOp(cpu, op, func(a, b uint32) uint32 { return a & b }) }
func execOr(cpu *M68KCPU, op uint16) { execLogicOp(cpu, op, func(a, b uint32) uint32 { return a | b }) }

func execLogicOp(cpu *M68KCPU, op uint16, fn func(a, b uint32) uint32) {
	size := stdSize(op)
	dn := (op >> 9) & 0x7
	toMem := op&0x0100 != 0
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, size)

	if !toMem {
		cpu.readEA(ea, size, func(c *M68KCPU, src uint32) {
			result := fn(c.D[dn]&maskFor(size), src)
			c.writeDataReg(dn, result, size)
			c.setLogicFlags(result, size)
		})
		return
	}
	cpu.readEA(ea, size, func(c *M68KCPU, dst uint32) {
		result := fn(dst, c.D[dn]&maskFor(size))
		c.setLogicFlags(result, size)
		c.writeEA(ea, size, result, nil)
	})
}

// execEor only ever writes back to the operand, Dn is always the source.
func execEor(cpu *M68KCPU, op uint16) {
	size := stdSize(op)
	dn := (op >> 9) & 0x7
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, size)
	cpu.readEA(ea, size, func(c *M68KCPU, dst uint32) {
		result := dst ^ (c.D[dn] & maskFor(size))
		c.setLogicFlags(result, size)
		c.writeEA(ea, size, result, nil)
	})
}

// execOri/execAndi/execEori: immediate logical op against <ea>.
func execOri(cpu *M68KCPU, op uint16) { execLogicImm(cpu, op, func(a, b uint32) uint32 { return a | b }) }
func execAndi(cpu *M68KCPU, op uint16) { execLogicImm(cpu, op, func(a, b uint32) uint32 { return a & b }) }
func execEori(cpu *M68KCPU, op uint16) { execLogicImm(cpu, op, func(a, b uint32) uint32 { return a ^ b }) }

func execLogicImm(cpu *M68KCPU, op uint16, fn func(a, b uint32) uint32) {
	size := int((op >> 6) & 0x3)
	mode, reg := (op>>3)&0x7, op&0x7
	imm := cpu.computeEA(amOther, amOtherImmediate, size)
	ea := cpu.computeEA(mode, reg, size)
	cpu.readEA(imm, size, func(c *M68KCPU, src uint32) {
		c.readEA(ea, size, func(c2 *M68KCPU, dst uint32) {
			result := fn(dst, src)
			c2.setLogicFlags(result, size)
			c2.writeEA(ea, size, result, nil)
		})
	})
}

// execOriToSRorCCR/execAndiToSRorCCR/execEoriToSRorCCR implement the
// word-sized ORI/ANDI/EORI #imm,SR (supervisor only) and the byte-sized
// #imm,CCR forms, distinguished by bit 6 of the opcode.
func execOriToSRorCCR(cpu *M68KCPU, op uint16) {
	execLogicToSRorCCR(cpu, op, func(a, b uint16) uint16 { return a | b })
}
func execAndiToSRorCCR(cpu *M68KCPU, op uint16) {
	execLogicToSRorCCR(cpu, op, func(a, b uint16) uint16 { return a & b })
}
func execEoriToSRorCCR(cpu *M68KCPU, op uint16) {
	execLogicToSRorCCR(cpu, op, func(a, b uint16) uint16 { return a ^ b })
}

func execLogicToSRorCCR(cpu *M68KCPU, op uint16, fn func(a, b uint16) uint16) {
	toSR := op&0x0040 != 0
	if toSR {
		if cpu.sr&srS == 0 {
			cpu.raiseException(vecPrivilegeViolation)
			return
		}
		imm := cpu.fetchExtWord()
		cpu.sr = fn(cpu.sr, imm)
		return
	}
	imm := cpu.fetchExtWord() & 0xFF
	cpu.sr = (cpu.sr &^ srCCR) | (fn(cpu.sr, imm) & srCCR)
}

// execNot implements NOT <ea>.
func execNot(cpu *M68KCPU, op uint16) {
	size := stdSize(op)
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, size)
	cpu.readEA(ea, size, func(c *M68KCPU, v uint32) {
		result := ^v & maskFor(size)
		c.setLogicFlags(result, size)
		c.writeEA(ea, size, result, nil)
	})
}

// execClr implements CLR <ea>: writes zero, still performs the read
// the real 68000 does first (visible to bus-sniffing devices), sets
// Z and clears N/V/C.
func execClr(cpu *M68KCPU, op uint16) {
	size := stdSize(op)
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, size)
	cpu.readEA(ea, size, func(c *M68KCPU, _ uint32) {
		c.setLogicFlags(0, size)
		c.writeEA(ea, size, 0, nil)
	})
}

// execTst implements TST <ea>: sets flags from the operand without
// writing anything back.
func execTst(cpu *M68KCPU, op uint16) {
	size := int((op >> 6) & 0x3)
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, size)
	cpu.readEA(ea, size, func(c *M68KCPU, v uint32) {
		c.setLogicFlags(v, size)
	})
}

// bitOpOperand reads the bit-number source (an immediate extension
// word for the static form, Dn for the dynamic form) and the target
// operand (Dn, long, or memory byte), then hands both plus the bit
// mask to fn, which returns the new value to store (or the original
// value for BTST, which never writes).
func bitOpOperand(cpu *M68KCPU, op uint16, write bool, fn func(c *M68KCPU, v uint32, mask uint32) uint32) {
	dynamic := op&0x0100 != 0
	mode, reg := (op>>3)&0x7, op&0x7

	readBitNum := func(c *M68KCPU, cont func(c *M68KCPU, bitNum uint32)) {
		if dynamic {
			bn := (op >> 9) & 0x7
			cont(c, c.D[bn])
		} else {
			cont(c, uint32(c.fetchExtWord()))
		}
	}

	readBitNum(cpu, func(c *M68KCPU, bitNum uint32) {
		if mode == amDataDirect {
			mask := uint32(1) << (bitNum & 0x1F)
			v := c.D[reg]
			c.flagSet(srZ, v&mask == 0)
			if write {
				c.D[reg] = fn(c, v, mask)
			}
			return
		}
		mask := uint32(1) << (bitNum & 0x7)
		ea := c.computeEA(mode, reg, sizeByte)
		c.readEA(ea, sizeByte, func(c2 *M68KCPU, v uint32) {
			c2.flagSet(srZ, v&mask == 0)
			if write {
				result := fn(c2, v, mask)
				c2.writeEA(ea, sizeByte, result, nil)
			}
		})
	})
}

func execBtst(cpu *M68KCPU, op uint16) {
	bitOpOperand(cpu, op, false, func(c *M68KCPU, v uint32, mask uint32) uint32 { return v })
}
func execBchg(cpu *M68KCPU, op uint16) {
	bitOpOperand(cpu, op, true, func(c *M68KCPU, v uint32, mask uint32) uint32 { return v ^ mask })
}
func execBclr(cpu *M68KCPU, op uint16) {
	bitOpOperand(cpu, op, true, func(c *M68KCPU, v uint32, mask uint32) uint32 { return v &^ mask })
}
func execBset(cpu *M68KCPU, op uint16) {
	bitOpOperand(cpu, op, true, func(c *M68KCPU, v uint32, mask uint32) uint32 { return v | mask })
}
