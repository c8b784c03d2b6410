// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mi2 implements the value grammar and record framing of the GDB
// machine-interface (MI2) protocol: a tokenized, line-oriented text dialect
// in which every line is a Stream, Async or Result record (or the bare
// "(gdb)" prompt, parsed as a Prompt record) and every field
// inside a record is a Value (a c-string, an ordered Tuple, or a List).
//
// The package is a pure parser: it has no notion of a debugger subprocess,
// commands, or tokens-as-correlation (that lives in mi2/interp). It only
// turns one line of MI2 text into a typed tree.
package mi2

import "fmt"

// ValueKind identifies which alternative of the Value sum a Value holds.
// Mirrors the three-case "string | tuple | list" grammar of spec.md §4.2,
// following the Kind-plus-subset-of-fields idiom used throughout this
// codebase's sum types rather than a Go interface per alternative.
type ValueKind uint8

const (
	// KindString holds a decoded c-string (quotes stripped, escapes undone).
	KindString ValueKind = iota
	// KindTuple holds an ordered, possibly-duplicate-keyed Result list.
	KindTuple
	// KindList holds either a ValueList or a ResultList, never mixed.
	KindList
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindTuple:
		return "tuple"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// ListKind distinguishes the two shapes a List can take. The grammar
// decides which shape a list has by inspecting its first element; an empty
// list is a ValueList of length zero.
type ListKind uint8

const (
	ValueList ListKind = iota
	ResultList
)

// Value is one node of the MI2 value tree: a c-string, a Tuple, or a List.
type Value struct {
	Kind ValueKind

	str    string
	tuple  Tuple
	list   List
}

// String constructs a KindString value.
func String(s string) Value { return Value{Kind: KindString, str: s} }

// TupleValue constructs a KindTuple value.
func TupleValue(t Tuple) Value { return Value{Kind: KindTuple, tuple: t} }

// ListValue constructs a KindList value.
func ListValue(l List) Value { return Value{Kind: KindList, list: l} }

// AsString returns the decoded c-string, or UnexpectedType if v is not a
// KindString value.
func (v Value) AsString() (string, error) {
	if v.Kind != KindString {
		return "", &UnexpectedType{Want: KindString, Got: v.Kind}
	}
	return v.str, nil
}

// AsTuple returns the Tuple, or UnexpectedType if v is not a KindTuple value.
func (v Value) AsTuple() (Tuple, error) {
	if v.Kind != KindTuple {
		return nil, &UnexpectedType{Want: KindTuple, Got: v.Kind}
	}
	return v.tuple, nil
}

// AsList returns the List, or UnexpectedType if v is not a KindList value.
func (v Value) AsList() (List, error) {
	if v.Kind != KindList {
		return List{}, &UnexpectedType{Want: KindList, Got: v.Kind}
	}
	return v.list, nil
}

// MustString is a convenience for call sites that have already established
// the shape (e.g. immediately after a successful parse of a known field)
// and want a panic instead of plumbing an error that cannot occur.
func (v Value) MustString() string {
	s, err := v.AsString()
	if err != nil {
		panic(err)
	}
	return s
}

// Result is one "key = value" entry of a Tuple, or one element of a
// ResultList. Field order is preserved; duplicate keys are legal and
// Tuple.Get returns the first match, per spec.md §3.
type Result struct {
	Key   string
	Value Value
}

// Tuple is an ordered sequence of Result entries.
type Tuple []Result

// Get returns the value for the first Result whose key matches, following
// spec.md §3's "duplicates are permitted but lookup by key returns the
// first" rule.
func (t Tuple) Get(key string) (Value, bool) {
	for _, r := range t {
		if r.Key == key {
			return r.Value, true
		}
	}
	return Value{}, false
}

// GetString looks up key and returns its decoded string, raising
// MissingValue if absent and UnexpectedType if present but not a string.
func (t Tuple) GetString(key string) (string, error) {
	v, ok := t.Get(key)
	if !ok {
		return "", &MissingValue{Key: key}
	}
	return v.AsString()
}

// List is either a sequence of bare Values or of keyed Results, tagged by
// Kind so callers never have to guess which shape a given list took.
type List struct {
	Kind    ListKind
	values  []Value
	results []Result
}

// Values returns the []Value payload, or UnexpectedType if l is a ResultList.
func (l List) Values() ([]Value, error) {
	if l.Kind != ValueList {
		return nil, &UnexpectedType{Want: KindList, Got: KindList, Detail: "list holds results, not values"}
	}
	return l.values, nil
}

// Results returns the []Result payload, or UnexpectedType if l is a ValueList.
func (l List) Results() ([]Result, error) {
	if l.Kind != ResultList {
		return nil, &UnexpectedType{Want: KindList, Got: KindList, Detail: "list holds values, not results"}
	}
	return l.results, nil
}

// Len reports the number of elements regardless of shape.
func (l List) Len() int {
	if l.Kind == ValueList {
		return len(l.values)
	}
	return len(l.results)
}

func newValueList(vs []Value) List     { return List{Kind: ValueList, values: vs} }
func newResultList(rs []Result) List   { return List{Kind: ResultList, results: rs} }

// UnexpectedType is raised when a typed accessor is used against a Value
// (or List) of another shape. Per spec.md §7 this is a programmer error
// and is always fatal to the calling operation.
type UnexpectedType struct {
	Want, Got ValueKind
	Detail    string
}

func (e *UnexpectedType) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("mi2: unexpected type: %s", e.Detail)
	}
	return fmt.Sprintf("mi2: unexpected type: want %s, got %s", e.Want, e.Got)
}

// MissingValue is raised when a required field is absent from a Tuple.
type MissingValue struct {
	Key string
}

func (e *MissingValue) Error() string {
	return fmt.Sprintf("mi2: missing value for key %q", e.Key)
}
