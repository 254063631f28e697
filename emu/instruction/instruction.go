package instruction

/*
 * TX2  - Instruction word decoding
 *
 * Copyright 2025, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import (
	"fmt"

	"github.com/rcornwell/TX2/emu/word"
)

// Instruction word layout:
//
//	bit  35     hold bit
//	bits 30-34  configuration number
//	bits 24-29  opcode
//	bits 18-23  index register j
//	bit  17     defer bit
//	bits 0-16   operand address

const (
	holdBit   word.Word = 1 << 35
	cfgShift            = 30
	cfgMask             = 0o37
	opShift             = 24
	opMask              = 0o77
	idxShift            = 18
	idxMask             = 0o77
)

// Opcode is the 6 bit operation field.
type Opcode uint8

const (
	OpIOS Opcode = 0o04
	OpJMP Opcode = 0o05
	OpJPX Opcode = 0o06
	OpJNX Opcode = 0o07
	OpAUX Opcode = 0o10
	OpRSX Opcode = 0o11
	OpSKX Opcode = 0o12
	OpEXX Opcode = 0o14
	OpADX Opcode = 0o15
	OpDPX Opcode = 0o16
	OpSKM Opcode = 0o17
	OpLDE Opcode = 0o20
	OpSPF Opcode = 0o21
	OpSPG Opcode = 0o22
	OpLDA Opcode = 0o24
	OpLDB Opcode = 0o25
	OpLDC Opcode = 0o26
	OpLDD Opcode = 0o27
	OpSTE Opcode = 0o30
	OpFLF Opcode = 0o31
	OpFLG Opcode = 0o32
	OpSTA Opcode = 0o34
	OpSTB Opcode = 0o35
	OpSTC Opcode = 0o36
	OpSTD Opcode = 0o37
	OpITE Opcode = 0o40
	OpITA Opcode = 0o41
	OpUNA Opcode = 0o42
	OpSED Opcode = 0o43
	OpJOV Opcode = 0o45
	OpJPA Opcode = 0o46
	OpJNA Opcode = 0o47
	OpEXA Opcode = 0o54
	OpINS Opcode = 0o55
	OpCOM Opcode = 0o56
	OpTSD Opcode = 0o57
	OpCYA Opcode = 0o60
	OpCYB Opcode = 0o61
	OpCAB Opcode = 0o62
	OpNOA Opcode = 0o64
	OpDSA Opcode = 0o65
	OpNAB Opcode = 0o66
	OpADD Opcode = 0o67
	OpSCA Opcode = 0o70
	OpSCB Opcode = 0o71
	OpSAB Opcode = 0o72
	OpTLY Opcode = 0o74
	OpDIV Opcode = 0o75
	OpMUL Opcode = 0o76
	OpSUB Opcode = 0o77
)

var opNames = map[Opcode]string{
	OpIOS: "IOS", OpJMP: "JMP", OpJPX: "JPX", OpJNX: "JNX",
	OpAUX: "AUX", OpRSX: "RSX", OpSKX: "SKX", OpEXX: "EXX",
	OpADX: "ADX", OpDPX: "DPX", OpSKM: "SKM", OpLDE: "LDE",
	OpSPF: "SPF", OpSPG: "SPG", OpLDA: "LDA", OpLDB: "LDB",
	OpLDC: "LDC", OpLDD: "LDD", OpSTE: "STE", OpFLF: "FLF",
	OpFLG: "FLG", OpSTA: "STA", OpSTB: "STB", OpSTC: "STC",
	OpSTD: "STD", OpITE: "ITE", OpITA: "ITA", OpUNA: "UNA",
	OpSED: "SED", OpJOV: "JOV", OpJPA: "JPA", OpJNA: "JNA",
	OpEXA: "EXA", OpINS: "INS", OpCOM: "COM", OpTSD: "TSD",
	OpCYA: "CYA", OpCYB: "CYB", OpCAB: "CAB", OpNOA: "NOA",
	OpDSA: "DSA", OpNAB: "NAB", OpADD: "ADD", OpSCA: "SCA",
	OpSCB: "SCB", OpSAB: "SAB", OpTLY: "TLY", OpDIV: "DIV",
	OpMUL: "MUL", OpSUB: "SUB",
}

// Valid reports whether the opcode is defined by the machine.
func (o Opcode) Valid() bool {
	_, ok := opNames[o]
	return ok
}

func (o Opcode) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return fmt.Sprintf("OP%02o", uint8(o))
}

// Lookup finds an opcode by mnemonic.
func Lookup(name string) (Opcode, bool) {
	for op, n := range opNames {
		if n == name {
			return op, true
		}
	}
	return 0, false
}

// Operand is the decoded operand address field. Address holds the low
// 17 bits, the defer bit is carried separately.
type Operand struct {
	Deferred bool
	Address  word.Address
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Held    bool
	Config  uint32
	Opcode  Opcode
	Index   uint8
	Operand Operand
}

// Decode splits a machine word into instruction fields. Decoding never
// fails; an undefined opcode is caught at dispatch.
func Decode(w word.Word) Instruction {
	oper := word.Address(w.Right())
	return Instruction{
		Held:    w&holdBit != 0,
		Config:  uint32(w>>cfgShift) & cfgMask,
		Opcode:  Opcode(w>>opShift) & opMask,
		Index:   uint8(w>>idxShift) & idxMask,
		Operand: Operand{
			Deferred: oper.Marked(),
			Address:  oper.Physical(),
		},
	}
}

// Build assembles an instruction word from its fields. Used by tests,
// the deposit command and the plugboard images.
func Build(op Opcode, cfg uint32, j uint8, deferred bool, addr word.Address, held bool) word.Word {
	w := word.Word(cfg&cfgMask)<<cfgShift |
		word.Word(op&opMask)<<opShift |
		word.Word(j&idxMask)<<idxShift |
		word.Word(addr.WithMark(deferred))
	if held {
		w |= holdBit
	}
	return w
}

// String renders the instruction in listing form.
func (i Instruction) String() string {
	h := ""
	if i.Held {
		h = "h "
	}
	d := ""
	if i.Operand.Deferred {
		d = "*"
	}
	return fmt.Sprintf("%s%s %02o %02o %s%06o", h, i.Opcode, i.Config, i.Index, d, i.Operand.Address)
}
