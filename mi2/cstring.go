// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mi2

import "strings"

// decodeCString strips the surrounding quotes from a raw MI c-string token
// (the bytes between, but not including, the outer '"' pair) and unescapes
// \", \\, \', \n and \t; any other backslash sequence is kept as is. This
// is the only escaping the grammar itself performs; hex/decimal/symbol-
// decoration parsing belongs to higher layers.
func decodeCString(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			switch raw[i+1] {
			case '"', '\\', '\'':
				b.WriteByte(raw[i+1])
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 't':
				b.WriteByte('\t')
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
