// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mi2

import "strings"

// Render renders a Value back to MI2 text, the inverse of parseValue. It
// exists chiefly so the parser round-trip property in spec.md §8 can be
// tested: Render(v) then ParseRecord of a synthetic "x=<rendered>" result
// line must reproduce an equal Value.
func Render(v Value) string {
	switch v.Kind {
	case KindString:
		return renderCString(v.str)
	case KindTuple:
		var b strings.Builder
		b.WriteByte('{')
		renderResults(&b, v.tuple)
		b.WriteByte('}')
		return b.String()
	case KindList:
		var b strings.Builder
		b.WriteByte('[')
		if v.list.Kind == ValueList {
			for i, e := range v.list.values {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(Render(e))
			}
		} else {
			renderResults(&b, v.list.results)
		}
		b.WriteByte(']')
		return b.String()
	}
	return ""
}

func renderResults(b *strings.Builder, rs []Result) {
	for i, r := range rs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(r.Key)
		b.WriteByte('=')
		b.WriteString(Render(r.Value))
	}
}

func renderCString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
