// cpu_m68k_exec_muldiv.go - MULU/MULS, DIVU/DIVS, packed BCD arithmetic

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

// execMulu implements both MULU and MULS <ea>,Dn (bit 8 of the opcode
// distinguishes signed from unsigned); result is always a 32-bit
// product of two 16-bit operands.
func execMulu(cpu *M68KCPU, op uint16) {
	signed := op&0x0100 != 0
	dn := (op >> 9) & 0x7
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, sizeWord)
	cpu.readEA(ea, sizeWord, func(c *M68KCPU, src uint32) {
		var result uint32
		if signed {
			result = uint32(int32(int16(src)) * int32(int16(c.D[dn]&0xFFFF)))
		} else {
			result = (src & 0xFFFF) * (c.D[dn] & 0xFFFF)
		}
		c.D[dn] = result
		c.setLogicFlags(result, sizeLong)
		c.scheduleInternal(mulExtraCycles, nil)
	})
}

const mulExtraCycles = 34

// execDivu implements both DIVU and DIVS <ea>,Dn (bit 8 distinguishes
// signed from unsigned): 32-bit dividend / 16-bit divisor -> 16-bit
// quotient in the low word, remainder in the high word. Division by
// zero traps; quotient overflow sets V and leaves Dn unmodified.
func execDivu(cpu *M68KCPU, op uint16) {
	signed := op&0x0100 != 0
	dn := (op >> 9) & 0x7
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, sizeWord)
	cpu.readEA(ea, sizeWord, func(c *M68KCPU, src uint32) {
		divisor := src & 0xFFFF
		if divisor == 0 {
			c.raiseTrapException(vecZeroDivide)
			return
		}
		dividend := c.D[dn]
		if signed {
			sDividend := int64(int32(dividend))
			sDivisor := int64(int16(divisor))
			q := sDividend / sDivisor
			r := sDividend % sDivisor
			if q > 32767 || q < -32768 {
				c.flagSet(srV, true)
				c.scheduleInternal(divExtraCycles, nil)
				return
			}
			c.D[dn] = uint32(uint16(r))<<16 | uint32(uint16(int16(q)))
			c.setLogicFlags(uint32(int16(q)), sizeWord)
		} else {
			q := dividend / divisor
			r := dividend % divisor
			if q > 0xFFFF {
				c.flagSet(srV, true)
				c.scheduleInternal(divExtraCycles, nil)
				return
			}
			c.D[dn] = r<<16 | (q & 0xFFFF)
			c.setLogicFlags(q, sizeWord)
		}
		c.scheduleInternal(divExtraCycles, nil)
	})
}

const divExtraCycles = 136

// execAbcd/execSbcd: packed BCD add/subtract with extend, operating
// on Dn,Dn or -(An),-(An) depending on bit 3.
func execAbcd(cpu *M68KCPU, op uint16) { execBcdOp(cpu, op, true) }
func execSbcd(cpu *M68KCPU, op uint16) { execBcdOp(cpu, op, false) }

func execBcdOp(cpu *M68KCPU, op uint16, isAdd bool) {
	rx, ry := (op>>9)&0x7, op&0x7
	memForm := op&0x0008 != 0

	apply := func(c *M68KCPU, dst, src uint32) uint32 {
		var result uint8
		var carry bool
		if isAdd {
			result, carry = bcdAdd(dst, src, c.flag(srX))
		} else {
			result, carry = bcdSub(dst, src, c.flag(srX))
		}
		c.flagSet(srC, carry)
		c.flagSet(srX, carry)
		if result != 0 {
			c.flagSet(srZ, false)
		}
		return uint32(result)
	}

	if !memForm {
		result := apply(cpu, cpu.D[rx]&0xFF, cpu.D[ry]&0xFF)
		cpu.writeDataReg(rx, result, sizeByte)
		return
	}

	eaY := cpu.computeEA(amAddrPreDec, ry, sizeByte)
	cpu.readEA(eaY, sizeByte, func(c *M68KCPU, src uint32) {
		eaX := c.computeEA(amAddrPreDec, rx, sizeByte)
		c.readEA(eaX, sizeByte, func(c2 *M68KCPU, dst uint32) {
			result := apply(c2, dst, src)
			c2.writeEA(eaX, sizeByte, result, nil)
		})
	})
}

// bcdAdd/bcdSub implement one packed-BCD digit-pair add/subtract with
// carry-in, decimal-adjusting each nibble independently.
func bcdAdd(dst, src uint32, x bool) (uint8, bool) {
	xi := uint32(0)
	if x {
		xi = 1
	}
	lo := (dst & 0xF) + (src & 0xF) + xi
	loCarry := uint32(0)
	if lo > 9 {
		lo += 6
		loCarry = 1
	}
	hi := (dst>>4)&0xF + (src>>4)&0xF + loCarry
	hiCarry := hi > 9
	if hiCarry {
		hi += 6
	}
	result := uint8((hi<<4)&0xF0 | lo&0xF)
	return result, hiCarry
}

func bcdSub(dst, src uint32, x bool) (uint8, bool) {
	xi := int32(0)
	if x {
		xi = 1
	}
	lo := int32(dst&0xF) - int32(src&0xF) - xi
	loBorrow := int32(0)
	if lo < 0 {
		lo -= 6
		loBorrow = 1
	}
	hi := int32((dst>>4)&0xF) - int32((src>>4)&0xF) - loBorrow
	hiBorrow := hi < 0
	if hiBorrow {
		hi -= 6
	}
	result := uint8((uint32(hi)<<4)&0xF0 | uint32(lo)&0xF)
	return result, hiBorrow
}
