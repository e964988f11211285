// cpu_m68k_exec_arith.go - ADD/SUB/CMP families and unary arithmetic

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

func stdSize(op uint16) int { return int((op >> 6) & 0x3) }

// execAdd implements ADD <ea>,Dn and ADD Dn,<ea> (opmode bit 8
// selects direction; register is always a data register).
func execAdd(cpu *M68KCPU, op uint16) {
	size := stdSize(op)
	dn := (op >> 9) & 0x7
	toMem := op&0x0100 != 0
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, size)

	if !toMem {
		cpu.readEA(ea, size, func(c *M68KCPU, src uint32) {
			dst := c.D[dn] & maskFor(size)
			result := dst + src
			c.writeDataReg(dn, result, size)
			c.setAddFlags(dst, src, result, size)
		})
		return
	}
	cpu.readEA(ea, size, func(c *M68KCPU, dst uint32) {
		src := c.D[dn] & maskFor(size)
		result := dst + src
		c.setAddFlags(dst, src, result, size)
		c.writeEA(ea, size, result, nil)
	})
}

func execSub(cpu *M68KCPU, op uint16) {
	size := stdSize(op)
	dn := (op >> 9) & 0x7
	toMem := op&0x0100 != 0
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, size)

	if !toMem {
		cpu.readEA(ea, size, func(c *M68KCPU, src uint32) {
			dst := c.D[dn] & maskFor(size)
			result := dst - src
			c.writeDataReg(dn, result, size)
			c.setSubFlags(dst, src, result, size)
		})
		return
	}
	cpu.readEA(ea, size, func(c *M68KCPU, dst uint32) {
		src := c.D[dn] & maskFor(size)
		result := dst - src
		c.setSubFlags(dst, src, result, size)
		c.writeEA(ea, size, result, nil)
	})
}

// execAdda/execSuba: destination is always An, operand sign-extended
// from word if opmode selects word, condition codes untouched.
func execAdda(cpu *M68KCPU, op uint16) { execAddaSuba(cpu, op, true) }
func execSuba(cpu *M68KCPU, op uint16) { execAddaSuba(cpu, op, false) }
func execAddaSuba(cpu *M68KCPU, op uint16, isAdd bool) {
	an := (op >> 9) & 0x7
	wordOp := (op>>6)&0x7 == 0x3
	size := sizeLong
	if wordOp {
		size = sizeWord
	}
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, size)
	cpu.readEA(ea, size, func(c *M68KCPU, v uint32) {
		sv := signExtend(v, size)
		if isAdd {
			c.setAddrReg(an, c.addrReg(an)+sv)
		} else {
			c.setAddrReg(an, c.addrReg(an)-sv)
		}
	})
}

// execAddx/execSubx implement the extended (X-flag-carrying) forms
// used for multi-word arithmetic, operating on Dn,Dn or -(An),-(An).
func execAddx(cpu *M68KCPU, op uint16) { execAddxSubx(cpu, op, true) }
func execSubx(cpu *M68KCPU, op uint16) { execAddxSubx(cpu, op, false) }
func execAddxSubx(cpu *M68KCPU, op uint16, isAdd bool) {
	size := stdSize(op)
	rx, ry := (op>>9)&0x7, op&0x7
	memForm := op&0x0008 != 0

	x := uint32(0)
	if cpu.flag(srX) {
		x = 1
	}

	if !memForm {
		dst, src := cpu.D[rx]&maskFor(size), cpu.D[ry]&maskFor(size)
		var result uint32
		if isAdd {
			result = dst + src + x
			cpu.setAddFlags(dst, src+x, result, size)
		} else {
			result = dst - src - x
			cpu.setSubFlags(dst, src+x, result, size)
		}
		if result&maskFor(size) != 0 {
			cpu.flagSet(srZ, false)
		}
		cpu.writeDataReg(rx, result, size)
		return
	}

	eaY := cpu.computeEA(amAddrPreDec, ry, size)
	cpu.readEA(eaY, size, func(c *M68KCPU, src uint32) {
		eaX := c.computeEA(amAddrPreDec, rx, size)
		c.readEA(eaX, size, func(c2 *M68KCPU, dst uint32) {
			var result uint32
			if isAdd {
				result = dst + src + x
				c2.setAddFlags(dst, src+x, result, size)
			} else {
				result = dst - src - x
				c2.setSubFlags(dst, src+x, result, size)
			}
			if result&maskFor(size) != 0 {
				c2.flagSet(srZ, false)
			}
			c2.writeEA(eaX, size, result, nil)
		})
	})
}

// execNeg/execNegx implement 0 - <ea> (NEGX also subtracting X).
func execNeg(cpu *M68KCPU, op uint16) {
	size := stdSize(op)
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, size)
	cpu.readEA(ea, size, func(c *M68KCPU, v uint32) {
		result := uint32(0) - v
		c.setSubFlags(0, v, result, size)
		c.writeEA(ea, size, result, nil)
	})
}

func execNegx(cpu *M68KCPU, op uint16) {
	size := stdSize(op)
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, size)
	x := uint32(0)
	if cpu.flag(srX) {
		x = 1
	}
	cpu.readEA(ea, size, func(c *M68KCPU, v uint32) {
		result := uint32(0) - v - x
		c.setSubFlags(0, v+x, result, size)
		if result&maskFor(size) != 0 {
			c.flagSet(srZ, false)
		}
		c.writeEA(ea, size, result, nil)
	})
}

// execCmp/execCmpa/execCmpi/execCmpm compare without storing, leaving
// X untouched.
func execCmp(cpu *M68KCPU, op uint16) {
	size := stdSize(op)
	dn := (op >> 9) & 0x7
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, size)
	cpu.readEA(ea, size, func(c *M68KCPU, src uint32) {
		dst := c.D[dn] & maskFor(size)
		c.setCmpFlags(dst, src, dst-src, size)
	})
}

func execCmpa(cpu *M68KCPU, op uint16) {
	an := (op >> 9) & 0x7
	wordOp := (op>>6)&0x7 == 0x3
	size := sizeLong
	if wordOp {
		size = sizeWord
	}
	mode, reg := (op>>3)&0x7, op&0x7
	ea := cpu.computeEA(mode, reg, size)
	cpu.readEA(ea, size, func(c *M68KCPU, v uint32) {
		src := signExtend(v, size)
		dst := c.addrReg(an)
		c.setCmpFlags(dst, src, dst-src, sizeLong)
	})
}

func execCmpi(cpu *M68KCPU, op uint16) {
	size := stdSize(op)
	mode, reg := (op>>3)&0x7, op&0x7
	imm := cpu.computeEA(amOther, amOtherImmediate, size)
	ea := cpu.computeEA(mode, reg, size)
	cpu.readEA(imm, size, func(c *M68KCPU, src uint32) {
		c.readEA(ea, size, func(c2 *M68KCPU, dst uint32) {
			c2.setCmpFlags(dst, src, dst-src, size)
		})
	})
}

func execCmpm(cpu *M68KCPU, op uint16) {
	size := stdSize(op)
	ax, ay := (op>>9)&0x7, op&0x7
	eaY := cpu.computeEA(amAddrPostInc, ay, size)
	cpu.readEA(eaY, size, func(c *M68KCPU, src uint32) {
		eaX := c.computeEA(amAddrPostInc, ax, size)
		c.readEA(eaX, size, func(c2 *M68KCPU, dst uint32) {
			c2.setCmpFlags(dst, src, dst-src, size)
		})
	})
}

// execAddi/execSubi: immediate ADD/SUB to <ea>.
func execAddi(cpu *M68KCPU, op uint16) {
	size := (op >> 6) & 0x3
	mode, reg := (op>>3)&0x7, op&0x7
	imm := cpu.computeEA(amOther, amOtherImmediate, int(size))
	ea := cpu.computeEA(mode, reg, int(size))
	cpu.readEA(imm, int(size), func(c *M68KCPU, src uint32) {
		c.readEA(ea, int(size), func(c2 *M68KCPU, dst uint32) {
			result := dst + src
			c2.setAddFlags(dst, src, result, int(size))
			c2.writeEA(ea, int(size), result, nil)
		})
	})
}

func execSubi(cpu *M68KCPU, op uint16) {
	size := (op >> 6) & 0x3
	mode, reg := (op>>3)&0x7, op&0x7
	imm := cpu.computeEA(amOther, amOtherImmediate, int(size))
	ea := cpu.computeEA(mode, reg, int(size))
	cpu.readEA(imm, int(size), func(c *M68KCPU, src uint32) {
		c.readEA(ea, int(size), func(c2 *M68KCPU, dst uint32) {
			result := dst - src
			c2.setSubFlags(dst, src, result, int(size))
			c2.writeEA(ea, int(size), result, nil)
		})
	})
}

// execAddq/execSubq: quick (3-bit literal, 0 means 8) ADD/SUB, with
// the 68000's special case that quick arithmetic on An never affects
// flags and always operates on the full long word.
func execAddq(cpu *M68KCPU, op uint16) { execAddqSubq(cpu, op, true) }
func execSubq(cpu *M68KCPU, op uint16) { execAddqSubq(cpu, op, false) }
func execAddqSubq(cpu *M68KCPU, op uint16, isAdd bool) {
	size := stdSize(op)
	data := (op >> 9) & 0x7
	if data == 0 {
		data = 8
	}
	mode, reg := (op>>3)&0x7, op&0x7

	if mode == amAddrDirect {
		v := cpu.addrReg(reg)
		if isAdd {
			cpu.setAddrReg(reg, v+uint32(data))
		} else {
			cpu.setAddrReg(reg, v-uint32(data))
		}
		return
	}

	ea := cpu.computeEA(mode, reg, size)
	cpu.readEA(ea, size, func(c *M68KCPU, dst uint32) {
		var result uint32
		if isAdd {
			result = dst + uint32(data)
			c.setAddFlags(dst, uint32(data), result, size)
		} else {
			result = dst - uint32(data)
			c.setSubFlags(dst, uint32(data), result, size)
		}
		c.writeEA(ea, size, result, nil)
	})
}
