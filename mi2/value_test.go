// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mi2

import (
	"fmt"
	"testing"
)

func valuesEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindString:
		as, _ := a.AsString()
		bs, _ := b.AsString()
		return as == bs
	case KindTuple:
		at, _ := a.AsTuple()
		bt, _ := b.AsTuple()
		if len(at) != len(bt) {
			return false
		}
		for i := range at {
			if at[i].Key != bt[i].Key || !valuesEqual(at[i].Value, bt[i].Value) {
				return false
			}
		}
		return true
	case KindList:
		al, _ := a.AsList()
		bl, _ := b.AsList()
		if al.Kind != bl.Kind {
			return false
		}
		if al.Kind == ValueList {
			av, _ := al.Values()
			bv, _ := bl.Values()
			if len(av) != len(bv) {
				return false
			}
			for i := range av {
				if !valuesEqual(av[i], bv[i]) {
					return false
				}
			}
			return true
		}
		ar, _ := al.Results()
		br, _ := bl.Results()
		if len(ar) != len(br) {
			return false
		}
		for i := range ar {
			if ar[i].Key != br[i].Key || !valuesEqual(ar[i].Value, br[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// genValues returns a bounded set of Value trees up to the given depth,
// exercising every shape the grammar supports (spec.md §8's "parser
// round-trip for values" property).
func genValues(depth int) []Value {
	leaves := []Value{
		String(""),
		String("plain"),
		String(`has "quote" and \ backslash`),
		ListValue(newValueList(nil)),
	}
	if depth <= 0 {
		return leaves
	}
	var out []Value
	out = append(out, leaves...)
	sub := genValues(depth - 1)
	out = append(out, TupleValue(Tuple{{Key: "a", Value: sub[0]}, {Key: "b", Value: sub[len(sub)-1]}}))
	out = append(out, ListValue(newValueList([]Value{sub[0], sub[len(sub)/2]})))
	out = append(out, ListValue(newResultList([]Result{{Key: "x", Value: sub[0]}})))
	return out
}

func TestValueRoundTrip(t *testing.T) {
	for i, v := range genValues(3) {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			rendered := Render(v)
			rec, err := ParseRecord("1^done,x="+rendered, 0)
			if err != nil {
				t.Fatalf("reparse %q: %v", rendered, err)
			}
			got, ok := rec.Get("x")
			if !ok {
				t.Fatalf("missing x in %#v", rec)
			}
			if !valuesEqual(v, got) {
				t.Fatalf("round-trip mismatch: rendered=%q original=%#v got=%#v", rendered, v, got)
			}
		})
	}
}

func TestTupleGetReturnsFirstOnDuplicateKeys(t *testing.T) {
	tup := Tuple{{Key: "k", Value: String("first")}, {Key: "k", Value: String("second")}}
	v, ok := tup.Get("k")
	if !ok {
		t.Fatal("missing k")
	}
	s, _ := v.AsString()
	if s != "first" {
		t.Fatalf("got %q, want first", s)
	}
}
