// machine_test.go - end-to-end Machine wiring and boot integration tests

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import "testing"

func TestNewMachineDefaults(t *testing.T) {
	m, err := NewMachine(MachineConfig{PAL: true}, make([]byte, KickstartSize))
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	if len(m.bus.chipRAM) != 512*1024 {
		t.Fatalf("chip RAM size = %d, want default 512K", len(m.bus.chipRAM))
	}
}

func TestLoadKickstartRejectsWrongSize(t *testing.T) {
	m, err := NewMachine(MachineConfig{PAL: true}, make([]byte, KickstartSize))
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	if err := m.LoadKickstart(make([]byte, 123)); err == nil {
		t.Fatal("expected an error loading a wrongly-sized kickstart image")
	}
}

// TestBlitterIRQPropagatesToCPU exercises the one cross-chip wiring
// Machine itself is responsible for (Agnus's blitter completion to
// Paula's INTREQ to the CPU's latched IPL) rather than any individual
// chip's own unit tests.
func TestBlitterIRQPropagatesToCPU(t *testing.T) {
	m, err := NewMachine(MachineConfig{PAL: true}, make([]byte, KickstartSize))
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	m.bus.WriteWord(CustomChipBase+regINTENA, intSETCLR|intINTEN|intBLIT)
	m.bus.WriteWord(CustomChipBase+regDMACON, dmaconSETCLR|dmaconDMAEN|dmaconBLTEN)

	b := &m.agnus.blitter
	b.con0 = 0x0100 // channel D only, minterm "false" (always clear) so no reads needed
	b.dptr = 0x2000
	b.start(1<<6 | 1)

	for i := 0; i < 4 && b.busy; i++ {
		m.agnus.Tick()
	}
	if m.paula.intreq&intBLIT == 0 {
		t.Fatal("expected BLIT interrupt request after blitter completion")
	}
	if m.cpu.ipl == 0 {
		t.Fatal("expected CPU IPL to be raised by the blitter-done interrupt")
	}
}

// TestKickstartBootIntegration loads a synthetic minimal ROM image (a
// reset vector pointing at a tight NOP loop) and asserts the machine
// runs several frames without halting, per spec.md 8's scenario 6,
// restated in SPEC_FULL.md as a testing.Short()-gated bounded-frame
// check rather than pixel-exact comparison against a real ROM.
func TestKickstartBootIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("boot integration test skipped in -short mode")
	}
	rom := make([]byte, KickstartSize)
	// Reset vectors: SSP = 0x00010000, PC = start of ROM's code area.
	rom[0], rom[1], rom[2], rom[3] = 0x00, 0x01, 0x00, 0x00
	rom[4], rom[5], rom[6], rom[7] = 0x00, 0xF8, 0x00, 0x08
	// NOP forever: 0x4E71 at 0xF80008, branch back to itself.
	nopAt := 0x000008
	rom[nopAt], rom[nopAt+1] = 0x4E, 0x71   // NOP
	rom[nopAt+2], rom[nopAt+3] = 0x60, 0xFE // BRA.S to itself

	m, err := NewMachine(MachineConfig{PAL: true}, rom)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}

	for i := 0; i < 3; i++ {
		m.RunFrame()
	}

	if m.cpu.state == cpuHalted {
		t.Fatal("CPU halted during boot loop, expected it to keep running")
	}
}
