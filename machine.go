// machine.go - Root Machine object: component wiring and tick ordering

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
machine.go - Machine

Machine owns the bus, the CPU and the three custom chips and drives
them in spec.md 5's fixed order every master tick: Agnus, then Denise,
then Paula, then the CPU. Agnus and Paula both register themselves
against the bus's custom-register window in their own constructors;
Machine's job is purely sequencing and cold-boot initialisation, in
the same spirit as the teacher's own top-level wiring in main.go
(NewVideoChip/NewSoundChip/NewCPU, now replaced by NewAgnus/NewDenise/
NewPaula/NewM68KCPU).
*/

package main

import "errors"

// MachineConfig mirrors the teacher's constructor-parameter style
// (NewVideoChip(backend), NewSoundChip(backend)): no flag or env
// parsing lives in this package, only plain Go values.
type MachineConfig struct {
	PAL         bool // true: 312 lines/frame, 50Hz; false: NTSC, 262 lines/frame, 60Hz
	ChipRAMSize int  // bytes; a real Amiga size (256K/512K/1M/2M)
}

type Machine struct {
	cfg MachineConfig

	bus     *AmigaBus
	arbiter *BusArbiter
	cpu     *M68KCPU
	agnus   *Agnus
	denise  *Denise
	paula   *Paula

	audioOut AudioOutput
	videoOut VideoOutput

	lastLine int
}

// NewMachine wires the bus, the three custom chips and the CPU
// together. kickstart is copied into a KickstartSize ROM buffer with no
// size check (a shorter slice is zero-padded, a longer one truncated);
// LoadKickstart below is the boundary function that validates a
// caller-supplied ROM image.
func NewMachine(cfg MachineConfig, kickstart []byte) (*Machine, error) {
	if cfg.ChipRAMSize <= 0 {
		cfg.ChipRAMSize = 512 * 1024
	}
	bus := NewAmigaBus(cfg.ChipRAMSize, kickstart)
	arbiter := NewBusArbiter(bus)

	agnus := NewAgnus(bus, cfg.PAL)
	denise := NewDenise(bus, agnus)
	paula := NewPaula(bus, agnus)
	agnus.onBlitterDone = func() { paula.RequestInterrupt(intBLIT) }
	agnus.AttachPeripherals(denise, paula)

	arbiter.AddRequester(agnus)

	cpu := NewM68KCPU(bus)
	paula.onInterruptChange = cpu.SetInterruptLevel

	audioOut, err := NewAudioOutput(AUDIO_BACKEND_HEADLESS, sampleRateHz, paula)
	if err != nil {
		return nil, err
	}
	videoOut, err := NewVideoOutput(VIDEO_BACKEND_HEADLESS)
	if err != nil {
		return nil, err
	}
	if err := videoOut.SetDisplayConfig(DisplayConfig{Width: hiResWidth, Height: displayHeight, RefreshRate: 60, PixelFormat: PixelFormatRGBA}); err != nil {
		return nil, err
	}

	m := &Machine{
		cfg: cfg, bus: bus, arbiter: arbiter, cpu: cpu,
		agnus: agnus, denise: denise, paula: paula,
		audioOut: audioOut, videoOut: videoOut,
	}
	return m, nil
}

const sampleRateHz = 44100

// LoadKickstart validates and installs a Kickstart ROM image. This is
// the one Go error boundary the core exposes (SPEC_FULL.md's Error
// handling section): sourcing the bytes is out of scope, but a slice
// of the wrong size is a caller bug this function must catch.
func (m *Machine) LoadKickstart(rom []byte) error {
	if len(rom) != KickstartSize {
		return errors.New("amigacore: kickstart image must be exactly 512KB")
	}
	copy(m.bus.kickROM, rom)
	m.cpu.Reset()
	return nil
}

// Tick advances every component by exactly one color clock, in
// spec.md 5's fixed order: Agnus (DMA + Copper + blitter), Denise
// (rasterises the line Agnus's bitplane DMA just fetched, once per
// scanline boundary), Paula (audio channel state machines and the
// interrupt arbiter), then the CPU.
func (m *Machine) Tick() {
	m.agnus.Tick()
	if int(m.agnus.HPos()) == 0 {
		line := int(m.agnus.VPos()) - 1
		if line >= 0 {
			m.denise.RenderLine(line)
		}
	}
	m.paula.Tick()
	m.cpu.Tick(m.arbiter)
}

// RunFrame advances the machine by exactly one frame's worth of master
// ticks, per spec.md 5's run_frame helper: a PAL frame is 312 lines of
// 228 color clocks, NTSC 262 lines of the same width.
func (m *Machine) RunFrame() {
	lines := uint16(312)
	if !m.cfg.PAL {
		lines = 262
	}
	total := int(lines) * 228
	for i := 0; i < total; i++ {
		m.Tick()
	}
	m.videoOut.UpdateFrame(m.denise.Frame().Pix)
}

// Reset performs a cold reset of every component, mirroring the
// teacher's component_reset.go collection of per-chip Reset methods.
func (m *Machine) Reset() {
	m.bus.Reset()
	m.agnus.Reset()
	m.denise.Reset()
	m.paula.Reset()
	m.cpu.Reset()
}

func (m *Machine) CPU() *M68KCPU   { return m.cpu }
func (m *Machine) Bus() *AmigaBus  { return m.bus }
func (m *Machine) Agnus() *Agnus   { return m.agnus }
func (m *Machine) Denise() *Denise { return m.denise }
func (m *Machine) Paula() *Paula   { return m.paula }
