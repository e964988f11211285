// agnus_dma.go - Agnus DMA slot scheduler and per-channel enable bits

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
agnus_dma.go - Agnus

Agnus owns every DMA-capable channel (bitplane, sprite, disk, audio,
refresh, Copper, blitter) and arbitrates the one slot per color clock
among them according to the fixed priority table: refresh, disk,
audio 0-3, sprite 0-7, bitplane, Copper, blitter. The CPU gets the slot
only when none of these claims it; disk DMA never claims a slot, and
there is no separate blitter-nasty priority level.
It is the sole DMARequester the BusArbiter polls (machine_bus.go); the
CPU only ever sees the combined "can I have the bus this tick" answer.

This file owns DMACON and the slot schedule. Denise reads BPLCON0/1/2
and the bitplane pointers directly off the same register file via
registers.go's offsets; agnus_copper.go and agnus_blitter.go own the
Copper and blitter state machines that also live on this chip.
*/

package main

// Agnus tracks DMACON's enable bits and decides, for every color
// clock, which DMA channel (if any) gets the bus this tick. Per
// spec.md 4.3, a channel's bit in DMACON only grants intent; Agnus
// still serialises all intents to one slot per tick via the fixed
// priority order below.
type Agnus struct {
	dmacon   uint16
	hpos     uint16 // color clock within the current line, 0..227
	vpos     uint16 // current scanline
	linesPerFrame uint16

	copper Copper
	blitter Blitter

	// wantedThisTick is recomputed once per tick by scanSlots and
	// consumed by WantsSlot/GrantedChannel; it mirrors the real
	// hardware's per-clock slot table rather than polling channels
	// independently on every query.
	wantedThisTick bool
	grantedChannel dmaChannel

	bus *AmigaBus

	// denise and paula are attached post-construction (Machine wires
	// them once all three chips exist): scanSlots needs to ask each
	// chip whether its DMA-capable state wants this tick's slot, and
	// Tick needs to hand a granted bitplane/sprite slot back to Denise
	// to actually perform the fetch. Audio's fetch instead happens
	// inside Paula's own Tick, gated on GrantedChannel (paula_audio.go).
	denise *Denise
	paula  *Paula

	// onBlitterDone is wired by Machine to Paula's interrupt request,
	// keeping Agnus ignorant of Paula's INTREQ register layout.
	onBlitterDone func()
}

// AttachPeripherals wires Agnus to the two chips whose DMA channels it
// arbitrates but does not itself own the state for. Called once by
// Machine after Denise and Paula are constructed.
func (a *Agnus) AttachPeripherals(denise *Denise, paula *Paula) {
	a.denise = denise
	a.paula = paula
}

type dmaChannel int

const (
	chanNone dmaChannel = iota
	chanRefresh
	chanDisk
	chanAudio0
	chanAudio1
	chanAudio2
	chanAudio3
	chanSprite
	chanBitplane
	chanCopper
	chanBlitter
)

func NewAgnus(bus *AmigaBus, pal bool) *Agnus {
	a := &Agnus{bus: bus, linesPerFrame: 312}
	if !pal {
		a.linesPerFrame = 262
	}
	a.copper.agnus = a
	a.blitter.agnus = a
	bus.MapCustom(regDMACONR, regVHPOSR, a.readControlRegs, nil)
	bus.MapCustom(regDMACON, regDMACON, nil, a.writeDMACON)
	bus.MapCustom(regCOP1LCH, regCOPINS, a.readCopperPtr, a.writeCopperReg)
	bus.MapCustom(regBLTCON0, regBLTADAT, a.readBlitterReg, a.writeBlitterReg)
	return a
}

func (a *Agnus) readControlRegs(offset uint32) uint16 {
	switch offset {
	case regDMACONR:
		return a.dmacon &^ dmaconSETCLR
	case regVPOSR:
		return uint16(a.vpos >> 8)
	case regVHPOSR:
		return a.vpos<<8 | a.hpos>>1
	}
	return 0
}

// writeDMACON applies the SETCLR convention (registers.go) to the
// master enable and the seven per-channel bits.
func (a *Agnus) writeDMACON(offset uint32, v uint16) {
	if v&dmaconSETCLR != 0 {
		a.dmacon |= v &^ dmaconSETCLR
	} else {
		a.dmacon &^= v
	}
}

func (a *Agnus) masterEnabled() bool { return a.dmacon&dmaconDMAEN != 0 }

// Tick advances the slot schedule by one color clock and, if a DMA
// channel wants and wins the slot, performs its bus access. Called
// once per master tick, before the CPU's own Tick (spec.md 5's
// Agnus -> Denise -> Paula -> CPU ordering).
func (a *Agnus) Tick() {
	a.scanSlots()
	switch a.grantedChannel {
	case chanCopper:
		a.copper.step()
	case chanBlitter:
		a.blitter.step()
	case chanBitplane:
		if a.denise != nil {
			a.denise.fetchBitplane()
		}
	case chanSprite:
		if a.denise != nil {
			a.denise.fetchSprite(a.vpos, a.hpos)
		}
	}
	// Audio channels 0-3 fetch from inside Paula's own Tick (called
	// after Agnus's in Machine's per-tick ordering), gated on
	// GrantedChannel so the actual bus read happens exactly once, on
	// whichever side of the chip boundary owns the state it touches.

	a.hpos++
	if a.hpos >= 228 {
		a.hpos = 0
		if a.denise != nil {
			a.denise.resetLineFetch()
		}
		a.vpos++
		if a.vpos >= a.linesPerFrame {
			a.vpos = 0
			if a.denise != nil {
				a.denise.resetSpriteFetch()
			}
			// COPJMP1 fires on every VBL edge for COP1 (spec.md 4.3):
			// the Copper program counter reloads from COP1LC at the
			// start of every frame regardless of whether software
			// ever issues an explicit COPJMP1 write.
			a.copper.pc = a.copper.loc1
		}
	}
}

// scanSlots implements the fixed DMA priority table (spec.md 4.3):
// refresh, disk, audio 0-3, sprite 0-7, bitplane, Copper, blitter -
// exactly one channel, at most, wins the bus per color clock. Refresh
// claims the first four slots of every line unconditionally (this
// engine has no DRAM to actually refresh, but the slot must still be
// occupied so every lower-priority channel's cadence lines up with
// real hardware); disk DMA is not modelled at all (no floppy
// controller in this engine's scope, so DSKEN never claims a slot).
// Audio, sprite and bitplane delegate the "do you want this tick's
// slot" question to Paula/Denise, which own the state that answer
// depends on.
func (a *Agnus) scanSlots() {
	a.wantedThisTick = false
	a.grantedChannel = chanNone
	if !a.masterEnabled() {
		return
	}

	if a.hpos < 8 && a.hpos%2 == 0 {
		a.grantedChannel = chanRefresh
		a.wantedThisTick = true
		return
	}

	if a.paula != nil {
		for i, ch := range [...]dmaChannel{chanAudio0, chanAudio1, chanAudio2, chanAudio3} {
			if a.dmacon&(dmaconAUD0EN<<uint(i)) != 0 && a.paula.channelWantsFetch(i) {
				a.grantedChannel = ch
				a.wantedThisTick = true
				return
			}
		}
	}

	if a.dmacon&dmaconSPREN != 0 && a.denise != nil {
		if _, ok := a.denise.wantsSpriteFetch(a.vpos, a.hpos); ok {
			a.grantedChannel = chanSprite
			a.wantedThisTick = true
			return
		}
	}

	if a.dmacon&dmaconBPLEN != 0 && a.denise != nil && a.denise.wantsBitplaneFetch(a.hpos) {
		a.grantedChannel = chanBitplane
		a.wantedThisTick = true
		return
	}

	switch {
	case a.dmacon&dmaconCOPEN != 0 && a.copper.wantsSlot():
		a.grantedChannel = chanCopper
		a.wantedThisTick = true
	case a.dmacon&dmaconBLTEN != 0 && a.blitter.busy:
		a.grantedChannel = chanBlitter
		a.wantedThisTick = true
	}
}

// WantsSlot satisfies DMARequester: Agnus claims the bus whenever any
// of its channels won this tick's arbitration.
func (a *Agnus) WantsSlot() bool { return a.wantedThisTick }

func (a *Agnus) GrantedChannel() dmaChannel { return a.grantedChannel }

// VPos/HPos expose the raster position for Denise's per-scanline
// compositing and for tests asserting frame-boundary behaviour.
func (a *Agnus) VPos() uint16 { return a.vpos }
func (a *Agnus) HPos() uint16 { return a.hpos }

