// registers.go - Master address map and custom chip register offsets

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
registers.go - Master I/O Register Address Map

Centralised reference for the Amiga's 24-bit address map and the custom
chip register offsets within 0xDFF000-0xDFF1FE. Agnus, Denise and Paula
each own their own register-handling code (agnus_dma.go, denise_video.go,
paula_audio.go); this file only names the offsets so every consumer of
the chip register window agrees on them.

MEMORY MAP OVERVIEW
====================

Address Range         Size     Device
----------------------------------------------------------------------
0x000000-0x1FFFFF      <=2MB    Chip RAM (Agnus/Denise/Paula DMA-visible)
0x200000-0xBFFFFF      -        Unmapped (autoconfig expansion space)
0xBFD000-0xBFDFFF      4KB      CIA B (even addresses, odd bytes read as FF)
0xBFE000-0xBFEFFF      4KB      CIA A (even addresses, odd bytes read as FF)
0xC00000-0xD7FFFF      1.5MB    Slow RAM (trapdoor expansion, no DMA access)
0xD80000-0xDEFFFF      -        Unmapped
0xDFF000-0xDFF1FE      512B     Custom chip registers (Agnus/Denise/Paula)
0xE00000-0xE7FFFF      -        Unmapped (Zorro II autoconfig space)
0xE80000-0xEFFFFF      512KB    Zorro II autoconfig space (not modelled)
0xF80000-0xFFFFFF      512KB    Kickstart ROM

On reset the OVL bit in CIA A's PRA maps the ROM additionally at
0x000000-0x07FFFF so the reset vectors can be fetched before any RAM
is initialised; software clears OVL once it has set up chip RAM.
*/

package main

const (
	ChipRAMBase  = 0x000000
	ChipRAMLimit = 0x1FFFFF

	CIABBase  = 0xBFD000
	CIABLimit = 0xBFDFFF
	CIAABase  = 0xBFE000
	CIAALimit = 0xBFEFFF

	SlowRAMBase  = 0xC00000
	SlowRAMLimit = 0xD7FFFF

	CustomChipBase  = 0xDFF000
	CustomChipLimit = 0xDFF1FE

	KickstartBase  = 0xF80000
	KickstartLimit = 0xFFFFFF
	KickstartSize  = 0x80000
)

// Custom chip register offsets from CustomChipBase, following the
// standard OCS/ECS naming. Only the subset Agnus/Denise/Paula implement
// is listed; reserved offsets fall through to the "unmapped custom
// register" read-as-zero/write-ignored behaviour in machine_bus.go.
const (
	regBLTDDAT = 0x000 // blitter dest, read only
	regDMACONR = 0x002 // DMA control, read
	regVPOSR   = 0x004
	regVHPOSR  = 0x006
	regDSKDATR = 0x008
	regJOY0DAT = 0x00A
	regJOY1DAT = 0x00C
	regCLXDAT  = 0x00E
	regADKCONR = 0x010
	regPOT0DAT = 0x012
	regPOT1DAT = 0x014
	regPOTGOR  = 0x016
	regSERDATR = 0x018
	regDSKBYTR = 0x01A
	regINTENAR = 0x01C
	regINTREQR = 0x01E

	regDSKPTH  = 0x020
	regDSKPTL  = 0x022
	regDSKLEN  = 0x024
	regDSKDAT  = 0x026
	regREFPTR  = 0x028
	regVPOSW   = 0x02A
	regVHPOSW  = 0x02C
	regCOPCON  = 0x02E
	regSERDAT  = 0x030
	regSERPER  = 0x032
	regPOTGO   = 0x034
	regJOYTEST = 0x036
	regSTREQU  = 0x038
	regSTRVBL  = 0x03A
	regSTRHOR  = 0x03C
	regSTRLONG = 0x03E

	regBLTCON0 = 0x040
	regBLTCON1 = 0x042
	regBLTAFWM = 0x044
	regBLTALWM = 0x046
	regBLTCPTH = 0x048
	regBLTCPTL = 0x04A
	regBLTBPTH = 0x04C
	regBLTBPTL = 0x04E
	regBLTAPTH = 0x050
	regBLTAPTL = 0x052
	regBLTDPTH = 0x054
	regBLTDPTL = 0x056
	regBLTSIZE = 0x058
	regBLTCMOD = 0x060
	regBLTBMOD = 0x062
	regBLTAMOD = 0x064
	regBLTDMOD = 0x066
	regBLTCDAT = 0x070
	regBLTBDAT = 0x072
	regBLTADAT = 0x074

	regCOPJMP1 = 0x088
	regCOPJMP2 = 0x08A
	regCOPINS  = 0x08C
	regCOP1LCH = 0x080
	regCOP1LCL = 0x082
	regCOP2LCH = 0x084
	regCOP2LCL = 0x086
)

// Display window, bitplane pointers, colour table and DMA control occupy
// the 0x08E-0x1FE range; listed explicitly since several of them
// (DIWSTRT/DIWSTOP/DDFSTRT/DDFSTOP) are read by both Agnus and Denise.
const (
	regDIWSTRT = 0x08E
	regDIWSTOP = 0x090
	regDDFSTRT  = 0x092
	regDDFSTOP  = 0x094
	regDMACON   = 0x096
	regCLXCON   = 0x098
	regINTENA   = 0x09A
	regINTREQ   = 0x09C
	regADKCON   = 0x09E

	regAUD0LCH = 0x0A0
	regAUD0LCL = 0x0A2
	regAUD0LEN = 0x0A4
	regAUD0PER = 0x0A6
	regAUD0VOL = 0x0A8
	regAUD0DAT = 0x0AA

	regAUD1LCH = 0x0B0
	regAUD1LCL = 0x0B2
	regAUD1LEN = 0x0B4
	regAUD1PER = 0x0B6
	regAUD1VOL = 0x0B8
	regAUD1DAT = 0x0BA

	regAUD2LCH = 0x0C0
	regAUD2LCL = 0x0C2
	regAUD2LEN = 0x0C4
	regAUD2PER = 0x0C6
	regAUD2VOL = 0x0C8
	regAUD2DAT = 0x0CA

	regAUD3LCH = 0x0D0
	regAUD3LCL = 0x0D2
	regAUD3LEN = 0x0D4
	regAUD3PER = 0x0D6
	regAUD3VOL = 0x0D8
	regAUD3DAT = 0x0DA

	regBPL1PTH = 0x0E0
	regBPL1PTL = 0x0E2
	regBPL2PTH = 0x0E4
	regBPL2PTL = 0x0E6
	regBPL3PTH = 0x0E8
	regBPL3PTL = 0x0EA
	regBPL4PTH = 0x0EC
	regBPL4PTL = 0x0EE
	regBPL5PTH = 0x0F0
	regBPL5PTL = 0x0F2
	regBPL6PTH = 0x0F4
	regBPL6PTL = 0x0F6

	regBPLCON0 = 0x100
	regBPLCON1 = 0x102
	regBPLCON2 = 0x104
	regBPL1MOD = 0x108
	regBPL2MOD = 0x10A

	regBPL1DAT = 0x110
	regBPL2DAT = 0x112
	regBPL3DAT = 0x114
	regBPL4DAT = 0x116
	regBPL5DAT = 0x118
	regBPL6DAT = 0x11A

	regSPR0PTH = 0x120
	regSPR0PTL = 0x122
	// SPRnPTH/PTL follow at +4 per sprite, n=0..7

	regSPR0POS  = 0x140
	regSPR0CTL  = 0x142
	regSPR0DATA = 0x144
	regSPR0DATB = 0x146
	// SPRnPOS/CTL/DATA/DATB follow at +8 per sprite, n=0..7

	regColorBase = 0x180 // COLOR00..COLOR31, 2 bytes each
)

// DMACON bit positions (spec.md Agnus section).
const (
	dmaconBBUSY = 1 << 14
	dmaconBZERO = 1 << 13
	dmaconBLTPRI = 1 << 10
	dmaconDMAEN  = 1 << 9
	dmaconBPLEN  = 1 << 8
	dmaconCOPEN  = 1 << 7
	dmaconBLTEN  = 1 << 6
	dmaconSPREN  = 1 << 5
	dmaconDSKEN  = 1 << 4
	dmaconAUD3EN = 1 << 3
	dmaconAUD2EN = 1 << 2
	dmaconAUD1EN = 1 << 1
	dmaconAUD0EN = 1 << 0
	dmaconSETCLR = 1 << 15
)

// INTENA/INTREQ bit positions, lowest to highest priority (spec.md
// Paula "15-source interrupt arbiter").
const (
	intSETCLR = 1 << 15
	intTBE    = 1 << 0
	intDSKBLK = 1 << 1
	intSOFT   = 1 << 2
	intPORTS  = 1 << 3
	intCOPER  = 1 << 4
	intVERTB  = 1 << 5
	intBLIT   = 1 << 6
	intAUD0   = 1 << 7
	intAUD1   = 1 << 8
	intAUD2   = 1 << 9
	intAUD3   = 1 << 10
	intRBF    = 1 << 11
	intDSKSYN = 1 << 12
	intEXTER  = 1 << 13
	intINTEN  = 1 << 14
)

// ADKCON bits relevant to audio channel modulation (spec.md "combined
// modulation" Open Question).
const (
	adkconSETCLR = 1 << 15
	adkconPRE1   = 1 << 14
	adkconPRE2   = 1 << 13
	adkconUARTBRK = 1 << 11
	adkconMFMPREC = 1 << 10
	adkconWORDSYNC = 1 << 9
	adkconMSBSYNC = 1 << 8
	adkconFAST    = 1 << 7
	adkconAUD3AM  = 1 << 6 // audio channel 3 takes its volume from channel 2's output
	adkconAUD2AM  = 1 << 5
	adkconAUD1AM  = 1 << 4
	adkconAUD0AM  = 1 << 3
	adkconAUD3AP  = 1 << 2 // attach to period only
	adkconAUD2AP  = 1 << 1
	adkconAUD1AP  = 1 << 0
)
