// denise_test.go - bitplane rasterisation and palette expansion tests

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import "testing"

func newTestDenise() (*Denise, *AmigaBus) {
	bus := NewAmigaBus(64*1024, make([]byte, KickstartSize))
	bus.SetOverlay(false)
	agnus := NewAgnus(bus, true)
	denise := NewDenise(bus, agnus)
	return denise, bus
}

func TestColorExpansion12To24(t *testing.T) {
	d, _ := newTestDenise()
	got := d.expand12to24(0x0F80)
	want := uint32(0xFF_FF_88_00) // A=FF R=FF G=88 B=00
	if got != want {
		t.Fatalf("expand12to24(0x0F80) = %#08x, want %#08x", got, want)
	}
}

func TestSinglePlaneRasterisation(t *testing.T) {
	d, bus := newTestDenise()
	bus.WriteWord(CustomChipBase+regBPLCON0, 1<<12) // one bitplane enabled
	bus.WriteWord(CustomChipBase+regColorBase, 0x000)
	bus.WriteWord(CustomChipBase+regColorBase+2, 0xFFF)
	bus.WriteWord(CustomChipBase+regBPL1DAT, 0x8000) // leftmost pixel set

	d.RenderLine(0)

	o := d.frame.PixOffset(0, 0)
	if d.frame.Pix[o] != 0xFF || d.frame.Pix[o+1] != 0xFF || d.frame.Pix[o+2] != 0xFF {
		t.Fatalf("pixel(0,0) = %v, want white", d.frame.Pix[o:o+4])
	}
	o2 := d.frame.PixOffset(1, 0)
	if d.frame.Pix[o2] != 0 || d.frame.Pix[o2+1] != 0 || d.frame.Pix[o2+2] != 0 {
		t.Fatalf("pixel(1,0) = %v, want black", d.frame.Pix[o2:o2+4])
	}
}

func TestEHBHalvesBrightness(t *testing.T) {
	d, bus := newTestDenise()
	bus.WriteWord(CustomChipBase+regBPLCON0, 1<<12)
	bus.WriteWord(CustomChipBase+regBPLCON2, 0x0200) // EHB
	bus.WriteWord(CustomChipBase+regColorBase+2, 0xFFF)
	bus.WriteWord(CustomChipBase+regBPL1DAT, 0x8000)

	d.RenderLine(0)

	o := d.frame.PixOffset(0, 0)
	if d.frame.Pix[o] >= 0xFF {
		t.Fatalf("expected EHB to halve brightness, got %d", d.frame.Pix[o])
	}
}

func TestSpriteOverridesPlayfield(t *testing.T) {
	d, bus := newTestDenise()
	bus.WriteWord(CustomChipBase+regSPR0POS, 0) // vstart=0, hstart=0
	bus.WriteWord(CustomChipBase+regSPR0CTL, 1<<8) // vstop=1, one-line-tall sprite
	bus.WriteWord(CustomChipBase+regSPR0DATA, 0x8000)       // leftmost pixel bit of sprite 0

	col, hit := d.spriteColorAt(0, 0)
	if !hit {
		t.Fatal("expected sprite pixel to be opaque at (0,0)")
	}
	if col != 17 {
		t.Fatalf("sprite colour index = %d, want 17", col)
	}
}
