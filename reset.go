// reset.go - Reset() methods for the chipset components (hard reset support)

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
reset.go - Component Reset

Collects the hard-reset behaviour of Agnus, Denise and Paula in one
place, as the teacher collects SoundChip.Reset/VideoChip.Reset in
component_reset.go. The CPU's own Reset (cpu_m68k.go) is excluded
here: it implements the 68000's RESET vector fetch, a core execution
behaviour rather than a peripheral's return-to-defaults, and Machine.Reset
calls it separately after these three.
*/

package main

// Reset restores Agnus to its post-power-on state: DMACON cleared,
// raster position at the top-left of the frame, Copper and blitter
// idle.
func (a *Agnus) Reset() {
	a.dmacon = 0
	a.hpos = 0
	a.vpos = 0
	a.copper.reset()
	a.blitter.reset()
}

// Reset restores Denise to its post-power-on state: all chip registers
// zeroed and the framebuffer retained (so a reset mid-run doesn't
// invalidate whatever a caller is holding a reference to).
func (d *Denise) Reset() {
	frame := d.frame
	*d = Denise{agnus: d.agnus, bus: d.bus, frame: frame}
}

// Reset restores Paula to its post-power-on state: all four channels
// idle, ADKCON/INTENA/INTREQ cleared.
func (p *Paula) Reset() {
	p.chan0, p.chan1, p.chan2, p.chan3 = AudioChannel{}, AudioChannel{}, AudioChannel{}, AudioChannel{}
	p.adkcon = 0
	p.intena = 0
	p.intreq = 0
}
