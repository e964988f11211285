// main.go - headless amigacore driver

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
main.go - amigacore

Minimal cobra-driven entry point, in the same spirit as the teacher's
own main.go exercising its constructors straight from os.Args, except
the flag surface itself is now cobra/pflag (SPEC_FULL.md's DOMAIN
STACK adopts this from the oisee/z80-optimizer pack entry rather than
the teacher's bare switch). There is no windowing, audio device, or
GUI frontend to select: the core is a conformance/reference engine,
and this binary just runs it for a bounded number of frames and
reports basic machine state.
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var pal bool
	var kickstartPath string
	var frames int

	root := &cobra.Command{
		Use:   "amigacore",
		Short: "Cycle-accurate 68000 + Amiga chipset conformance engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(pal, kickstartPath, frames)
		},
	}
	root.Flags().BoolVar(&pal, "pal", true, "use PAL timing (312 lines/frame); --pal=false selects NTSC")
	root.Flags().StringVar(&kickstartPath, "kickstart", "", "path to a 512KB Kickstart ROM image")
	root.Flags().IntVar(&frames, "frames", 1, "number of frames to run before exiting")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "amigacore:", err)
		os.Exit(1)
	}
}

func run(pal bool, kickstartPath string, frames int) error {
	rom := make([]byte, KickstartSize)
	if kickstartPath != "" {
		data, err := os.ReadFile(kickstartPath)
		if err != nil {
			return fmt.Errorf("reading kickstart image: %w", err)
		}
		copy(rom, data)
	}

	m, err := NewMachine(MachineConfig{PAL: pal, ChipRAMSize: 512 * 1024}, rom)
	if err != nil {
		return fmt.Errorf("constructing machine: %w", err)
	}
	if kickstartPath != "" {
		if err := m.LoadKickstart(rom); err != nil {
			return fmt.Errorf("loading kickstart: %w", err)
		}
	}

	for i := 0; i < frames; i++ {
		m.RunFrame()
	}

	fmt.Printf("amigacore: ran %d frame(s), cpu cycles=%d, pc=%#08x\n", frames, m.CPU().Cycles(), m.CPU().PC())
	return nil
}
