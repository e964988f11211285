// paula_test.go - audio DMA cadence, interrupt arbiter and modulation tests

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import "testing"

func newTestPaula() (*Paula, *Agnus, *AmigaBus) {
	bus := NewAmigaBus(64*1024, make([]byte, KickstartSize))
	bus.SetOverlay(false)
	agnus := NewAgnus(bus, true)
	paula := NewPaula(bus, agnus)
	agnus.AttachPeripherals(nil, paula)
	return paula, agnus, bus
}

func TestINTENASetClrConvention(t *testing.T) {
	p, _, bus := newTestPaula()
	bus.WriteWord(CustomChipBase+regINTENA, intSETCLR|intINTEN|intAUD0)
	if p.intena&(intINTEN|intAUD0) == 0 {
		t.Fatalf("expected INTEN and AUD0 set, got %#04x", p.intena)
	}
	bus.WriteWord(CustomChipBase+regINTENA, intAUD0)
	if p.intena&intAUD0 != 0 {
		t.Fatal("expected AUD0 cleared")
	}
	if p.intena&intINTEN == 0 {
		t.Fatal("expected INTEN to remain set")
	}
}

func TestInterruptArbiterRaisesHighestPendingLevel(t *testing.T) {
	p, _, _ := newTestPaula()
	var gotIPL uint8
	p.onInterruptChange = func(ipl uint8) { gotIPL = ipl }

	p.intena = intINTEN | intTBE | intAUD0
	p.RequestInterrupt(intTBE) // level 1
	if gotIPL != 1 {
		t.Fatalf("IPL = %d, want 1", gotIPL)
	}
	p.RequestInterrupt(intAUD0) // level 4, higher than TBE's level 1
	if gotIPL != 4 {
		t.Fatalf("IPL = %d, want 4 once AUD0 also pending", gotIPL)
	}
}

func TestInterruptArbiterMasterDisable(t *testing.T) {
	p, _, _ := newTestPaula()
	var gotIPL uint8 = 99
	p.onInterruptChange = func(ipl uint8) { gotIPL = ipl }
	p.intena = intAUD0 // INTEN (master) bit not set
	p.RequestInterrupt(intAUD0)
	if gotIPL != 0 {
		t.Fatalf("IPL = %d, want 0 with master interrupt bit clear", gotIPL)
	}
}

// TestAudioChannelDMACadence drives one channel through a full
// fetch/play-hi/play-lo/refill cycle and checks AUDxIRQ fires exactly
// on the low-byte tick, per SPEC_FULL.md's word-boundary supplement.
func TestAudioChannelDMACadence(t *testing.T) {
	p, agnus, bus := newTestPaula()
	bus.WriteWord(0x1000, 0x1234)
	bus.WriteWord(CustomChipBase+regAUD0LCH, 0x0000)
	bus.WriteWord(CustomChipBase+regAUD0LCL, 0x1000)
	bus.WriteWord(CustomChipBase+regAUD0LEN, 1)
	bus.WriteWord(CustomChipBase+regAUD0PER, 1)
	bus.WriteWord(CustomChipBase+regINTENA, intSETCLR|intINTEN|intAUD0)
	bus.WriteWord(CustomChipBase+regDMACON, dmaconSETCLR|dmaconDMAEN|dmaconAUD0EN)

	// Agnus grants the slot (refresh claims hpos 0,2,4,6 first), Paula
	// consumes it - mirroring Machine.Tick's real per-tick ordering.
	irqTick := -1
	for i := 0; i < 20; i++ {
		agnus.Tick()
		p.Tick()
		if p.intreq&intAUD0 != 0 {
			irqTick = i
			break
		}
	}
	if irqTick < 0 {
		t.Fatal("AUD0 interrupt never raised")
	}
	if p.chan0.out != int8(uint8(0x34)) {
		t.Fatalf("channel output on IRQ tick = %#02x, want low byte 0x34", uint8(p.chan0.out))
	}
}

func TestModulationAttachesPeriodFromPreviousChannel(t *testing.T) {
	p, _, bus := newTestPaula()
	bus.WriteWord(CustomChipBase+regADKCON, adkconSETCLR|adkconAUD1AP)
	p.chan0.out = 5
	period := p.applyModulation(&p.chan1, &p.chan0)
	if period != 5 {
		t.Fatalf("attached period = %d, want 5 (channel 0's last output)", period)
	}
}

func TestReadSampleMixesEnabledChannels(t *testing.T) {
	p, _, _ := newTestPaula()
	p.chan0.state = statePlayHi
	p.chan0.out = 64
	p.chan0.vol = 64
	if s := p.ReadSample(); s <= 0 {
		t.Fatalf("ReadSample() = %f, want positive contribution from channel 0", s)
	}
}
