// denise_video.go - Denise: bitplane shifter, sprites, colour expansion

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
denise_video.go - Denise

Denise rasterises whatever Agnus's bitplane DMA has fetched into
BPLnDAT into a display-resolution framebuffer: up to six bitplanes are
shifted out one pixel per low-res color clock (two per high-res clock),
combined into a playfield colour index, composited against up to eight
sprites by priority, expanded through the 32-entry COLORxx palette
(12-bit -> 24-bit), and written into an *image.RGBA-backed frame the
same shape video_backend_headless.go already consumes.

HAM (Hold-And-Modify) and EHB (Extra Half-Brite) reinterpret the same
playfield colour index instead of looking it up directly in the
palette; both are resolved in resolvePlayfieldColor.
*/

package main

import "image"

const (
	lowResWidth  = 320
	hiResWidth   = 640
	displayHeight = 256
)

type SpriteState struct {
	pos, ctl     uint16
	dataA, dataB uint16
	vstart, vstop uint16
	hstart        uint16
	attached      bool
	armed         bool

	sptr    uint32 // current DMA fetch pointer, SPRnPTH/PTL
	fetched bool   // true once this sprite's two data words have been
	               // DMA-fetched for the current frame; cleared at VBL
}

type Denise struct {
	bplcon0, bplcon1, bplcon2 uint16
	bpl1mod, bpl2mod          int16
	bplPtr                    [6]uint32
	bplDat                    [6]uint16
	bplFetchCount             int // bitplanes fetched so far this line, reset at hpos wrap
	colors                    [32]uint16 // 12-bit RGB (0x0RGB), COLOR00-COLOR31

	diwstrt, diwstop uint16
	ddfstrt, ddfstop uint16

	sprites [8]SpriteState

	frame  *image.RGBA
	hamColor uint32 // running HAM accumulator, reset each line

	agnus *Agnus
	bus   *AmigaBus
}

func NewDenise(bus *AmigaBus, agnus *Agnus) *Denise {
	d := &Denise{agnus: agnus, bus: bus}
	d.frame = image.NewRGBA(image.Rect(0, 0, hiResWidth, displayHeight))
	bus.MapCustom(regBPLCON0, regBPLCON2, nil, d.writeBplcon)
	bus.MapCustom(regBPL1MOD, regBPL2MOD, nil, d.writeBplmod)
	bus.MapCustom(regBPL1PTH, regBPL6PTL, nil, d.writeBplPtr)
	bus.MapCustom(regBPL1DAT, regBPL6DAT, nil, d.writeBplDat)
	bus.MapCustom(regDIWSTRT, regDDFSTOP, nil, d.writeWindow)
	bus.MapCustom(regColorBase, regColorBase+0x3E, d.readColor, d.writeColor)
	for i := range d.sprites {
		base := uint32(regSPR0PTH + i*4)
		bus.MapCustom(base, base+2, nil, d.writeSpritePtr(i))
		posBase := uint32(regSPR0POS + i*8)
		bus.MapCustom(posBase, posBase+6, nil, d.writeSpriteData(i))
	}
	return d
}

func (d *Denise) writeBplcon(offset uint32, v uint16) {
	switch offset {
	case regBPLCON0:
		d.bplcon0 = v
	case regBPLCON1:
		d.bplcon1 = v
	case regBPLCON2:
		d.bplcon2 = v
	}
}

func (d *Denise) writeBplmod(offset uint32, v uint16) {
	switch offset {
	case regBPL1MOD:
		d.bpl1mod = int16(v)
	case regBPL2MOD:
		d.bpl2mod = int16(v)
	}
}

func (d *Denise) writeWindow(offset uint32, v uint16) {
	switch offset {
	case regDIWSTRT:
		d.diwstrt = v
	case regDIWSTOP:
		d.diwstop = v
	case regDDFSTRT:
		d.ddfstrt = v
	case regDDFSTOP:
		d.ddfstop = v
	}
}

func (d *Denise) writeBplPtr(offset uint32, v uint16) {
	n := (offset - regBPL1PTH) / 4
	if (offset-regBPL1PTH)%4 == 0 {
		d.bplPtr[n] = (d.bplPtr[n] &^ 0xFFFF0000) | uint32(v)<<16
	} else {
		d.bplPtr[n] = (d.bplPtr[n] &^ 0xFFFF) | uint32(v&^1)
	}
}

func (d *Denise) writeBplDat(offset uint32, v uint16) {
	n := (offset - regBPL1DAT) / 2
	d.bplDat[n] = v
}

func (d *Denise) readColor(offset uint32) uint16 {
	return d.colors[(offset-regColorBase)/2]
}

func (d *Denise) writeColor(offset uint32, v uint16) {
	d.colors[(offset-regColorBase)/2] = v & 0xFFF
}

// writeSpritePtr accepts SPRnPTH/PTL writes, latching the pointer
// Agnus's beam-triggered fetch reads from (fetchSprite below performs
// the actual DMA access once the raster reaches SPRxPOS.v, per
// spec.md 4.4).
func (d *Denise) writeSpritePtr(i int) func(uint32, uint16) {
	base := uint32(regSPR0PTH + i*4)
	return func(offset uint32, v uint16) {
		s := &d.sprites[i]
		if offset == base {
			s.sptr = (s.sptr &^ 0xFFFF0000) | uint32(v)<<16
		} else {
			s.sptr = (s.sptr &^ 0xFFFF) | uint32(v&^1)
		}
	}
}

func (d *Denise) writeSpriteData(i int) func(uint32, uint16) {
	return func(offset uint32, v uint16) {
		s := &d.sprites[i]
		base := uint32(regSPR0POS + i*8)
		switch offset - base {
		case 0: // POS
			s.pos = v
			s.vstart = v >> 8
			s.hstart = (v & 0xFF) << 1
		case 2: // CTL
			s.ctl = v
			s.vstop = (v >> 8) | (v&0x2)<<7
			s.attached = v&0x80 != 0
			s.armed = true
			s.fetched = false // re-arm: this sprite is due a fresh DMA fetch
		case 4: // DATA (low word bitplane)
			s.dataA = v
		case 6: // DATB (high word bitplane)
			s.dataB = v
		}
	}
}

// wantsBitplaneFetch reports whether Agnus should grant the bitplane
// DMA channel this tick: true while hpos is within the DDFSTRT/DDFSTOP
// fetch window and fewer bitplane words have been fetched this line
// than BPLCON0 enables.
func (d *Denise) wantsBitplaneFetch(hpos uint16) bool {
	planes := d.bitplaneCount()
	if planes == 0 || hpos < d.ddfstrt || hpos > d.ddfstop {
		return false
	}
	return d.bplFetchCount < planes
}

// fetchBitplane performs one bitplane word's DMA fetch, called by
// Agnus only after it has granted the bitplane channel this tick.
func (d *Denise) fetchBitplane() {
	p := d.bplFetchCount
	if p >= len(d.bplPtr) {
		return
	}
	d.bplDat[p] = d.bus.ReadWord(d.bplPtr[p])
	d.bplPtr[p] += 2
	d.bplFetchCount++
}

// resetLineFetch is called by Agnus at every hpos wrap so each
// scanline's bitplane words are fetched fresh from the current
// pointers (which software or the Copper advances between lines).
func (d *Denise) resetLineFetch() { d.bplFetchCount = 0 }

// wantsSpriteFetch reports whether any armed, not-yet-fetched sprite's
// vstart matches the current raster line; only evaluated at hpos==0,
// matching "when the beam reaches SPRxPOS.v" (spec.md 4.4).
func (d *Denise) wantsSpriteFetch(vpos, hpos uint16) (int, bool) {
	if hpos != 0 {
		return 0, false
	}
	for i := range d.sprites {
		s := &d.sprites[i]
		if s.armed && !s.fetched && vpos == s.vstart {
			return i, true
		}
	}
	return 0, false
}

// fetchSprite performs the beam-triggered two-word DMA fetch (DATA
// then DATB) for whichever sprite wantsSpriteFetch found, called by
// Agnus only after granting the sprite channel this tick.
func (d *Denise) fetchSprite(vpos, hpos uint16) {
	i, ok := d.wantsSpriteFetch(vpos, hpos)
	if !ok {
		return
	}
	s := &d.sprites[i]
	s.dataA = d.bus.ReadWord(s.sptr)
	s.dataB = d.bus.ReadWord(s.sptr + 2)
	s.sptr += 4
	s.fetched = true
}

// resetSpriteFetch re-arms every sprite's fetch-due flag at VBL so
// each frame's sprites are re-fetched from their (possibly
// software-advanced) pointers.
func (d *Denise) resetSpriteFetch() {
	for i := range d.sprites {
		d.sprites[i].fetched = false
	}
}

// bitplaneCount returns how many of the six bitplanes BPLCON0 enables.
func (d *Denise) bitplaneCount() int { return int((d.bplcon0 >> 12) & 0x7) }

func (d *Denise) hiRes() bool { return d.bplcon0&0x8000 != 0 }
func (d *Denise) hamMode() bool { return d.bplcon0&0x0800 != 0 }
func (d *Denise) ehbMode() bool { return d.bplcon2&0x0200 != 0 }
func (d *Denise) dualPlayfield() bool { return d.bplcon0&0x0400 != 0 }

// RenderLine composites one scanline of the current raster position
// from the bitplane data latches Agnus's DMA has already fetched into
// BPLnDAT, plus sprite overlay, into the frame buffer. Called by
// Machine once per scanline (spec.md 5's Agnus -> Denise ordering:
// Agnus's bitplane DMA for this line has already happened by the time
// Denise is ticked for it).
func (d *Denise) RenderLine(line int) {
	if line < 0 || line >= displayHeight {
		return
	}
	width := lowResWidth
	if d.hiRes() {
		width = hiResWidth
	}
	planes := d.bitplaneCount()
	d.hamColor = 0
	for x := 0; x < width; x++ {
		bit := uint(15 - (x % 16))
		idx := uint8(0)
		for p := 0; p < planes && p < 6; p++ {
			if d.bplDat[p]&(1<<bit) != 0 {
				idx |= 1 << uint(p)
			}
		}
		colorIdx := d.resolvePlayfieldColor(idx)
		spriteColor, hit := d.spriteColorAt(x, line)
		var rgb12 uint16
		switch {
		case hit:
			rgb12 = d.colors[spriteColor&0x1F]
		case d.hamMode():
			rgb12 = uint16(d.hamColor)
		default:
			rgb12 = d.colors[colorIdx&0x1F]
		}
		d.setPixel(x, line, d.expand12to24(rgb12))
	}
}

// resolvePlayfieldColor reinterprets the raw bitplane index through
// HAM or EHB when BPLCON0/2 select them, otherwise it is a direct
// palette index.
func (d *Denise) resolvePlayfieldColor(idx uint8) uint8 {
	if d.hamMode() {
		ctrl := idx >> 4
		data := idx & 0xF
		switch ctrl {
		case 0: // hold: direct palette lookup, becomes the new base colour
			d.hamColor = uint32(d.colors[data])
		case 1: // modify blue
			d.hamColor = (d.hamColor &^ 0xF) | uint32(data)
		case 2: // modify red
			d.hamColor = (d.hamColor &^ 0xF00) | uint32(data)<<8
		case 3: // modify green
			d.hamColor = (d.hamColor &^ 0xF0) | uint32(data)<<4
		}
		return 0 // caller's palette lookup is bypassed below for HAM
	}
	if d.ehbMode() && idx < 32 {
		return idx // half-brite halving is applied in expand12to24 via the top bit
	}
	return idx & 0x1F
}

// spriteColorAt returns the sprite palette index (16-19/20-23 for the
// four sprite pairs) visible at (x,y), and whether any sprite pixel is
// opaque there at all.
func (d *Denise) spriteColorAt(x, y int) (uint8, bool) {
	for i := 0; i < 8; i++ {
		s := &d.sprites[i]
		if !s.armed || y < int(s.vstart) || y >= int(s.vstop) {
			continue
		}
		px := x - int(s.hstart)
		if px < 0 || px >= 16 {
			continue
		}
		bit := uint(15 - px)
		lo := (s.dataA >> bit) & 1
		hi := (s.dataB >> bit) & 1
		pixel := uint8(hi<<1 | lo)
		if pixel == 0 {
			continue
		}
		return 16 + uint8(i/2)*4 + pixel, true
	}
	return 0, false
}

func (d *Denise) expand12to24(rgb12 uint16) uint32 {
	r := uint32(rgb12>>8) & 0xF
	g := uint32(rgb12>>4) & 0xF
	b := uint32(rgb12) & 0xF
	// replicate the nibble into both halves of the byte, the standard
	// 4-bit -> 8-bit expansion (0xF -> 0xFF, not 0xF0).
	r = r<<4 | r
	g = g<<4 | g
	b = b<<4 | b
	if d.ehbMode() {
		r, g, b = r/2, g/2, b/2
	}
	return 0xFF000000 | r<<16 | g<<8 | b
}

func (d *Denise) setPixel(x, y int, argb uint32) {
	if d.frame == nil || x < 0 || x >= d.frame.Rect.Dx() || y < 0 || y >= d.frame.Rect.Dy() {
		return
	}
	o := d.frame.PixOffset(x, y)
	d.frame.Pix[o] = uint8(argb >> 16)
	d.frame.Pix[o+1] = uint8(argb >> 8)
	d.frame.Pix[o+2] = uint8(argb)
	d.frame.Pix[o+3] = uint8(argb >> 24)
}

// Frame returns the current framebuffer, addressable as an
// *image.RGBA per SPEC_FULL.md's dual framebuffer surface.
func (d *Denise) Frame() *image.RGBA { return d.frame }

