// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"fmt"

	"github.com/mgordner/mi2run/mi2"
)

// VarCreate issues "-var-create name frame expr" and returns the reply
// tuple (name, numchild, type, ...).
func (ip *Interp) VarCreate(name, frame, expr string) (mi2.Record, error) {
	return ip.exec("var-create", fmt.Sprintf(" %s %s %s", name, frame, expr), mi2.ClassDone)
}

// VarDelete issues "-var-delete name".
func (ip *Interp) VarDelete(name string) error {
	_, err := ip.exec("var-delete", " "+name, mi2.ClassDone)
	return err
}

// VarSetFormat issues "-var-set-format name format".
func (ip *Interp) VarSetFormat(name, format string) error {
	_, err := ip.exec("var-set-format", fmt.Sprintf(" %s %s", name, format), mi2.ClassDone)
	return err
}

// VarShowFormat issues "-var-show-format name" and returns the format string.
func (ip *Interp) VarShowFormat(name string) (string, error) {
	rec, err := ip.exec("var-show-format", " "+name, mi2.ClassDone)
	if err != nil {
		return "", err
	}
	return rec.Results.GetString("format")
}

// VarInfoNumChildren issues "-var-info-num-children name".
func (ip *Interp) VarInfoNumChildren(name string) (string, error) {
	rec, err := ip.exec("var-info-num-children", " "+name, mi2.ClassDone)
	if err != nil {
		return "", err
	}
	return rec.Results.GetString("numchild")
}

// VarListChildren issues "-var-list-children name".
func (ip *Interp) VarListChildren(name string) (mi2.Record, error) {
	return ip.exec("var-list-children", " "+name, mi2.ClassDone)
}

// VarInfoType issues "-var-info-type name" and returns the type string.
func (ip *Interp) VarInfoType(name string) (string, error) {
	rec, err := ip.exec("var-info-type", " "+name, mi2.ClassDone)
	if err != nil {
		return "", err
	}
	return rec.Results.GetString("type")
}

// VarInfoExpression issues "-var-info-expression name".
func (ip *Interp) VarInfoExpression(name string) (mi2.Record, error) {
	return ip.exec("var-info-expression", " "+name, mi2.ClassDone)
}

// VarInfoPathExpression issues "-var-info-path-expression name".
func (ip *Interp) VarInfoPathExpression(name string) (string, error) {
	rec, err := ip.exec("var-info-path-expression", " "+name, mi2.ClassDone)
	if err != nil {
		return "", err
	}
	return rec.Results.GetString("path_expr")
}

// VarShowAttributes issues "-var-show-attributes name".
func (ip *Interp) VarShowAttributes(name string) (string, error) {
	rec, err := ip.exec("var-show-attributes", " "+name, mi2.ClassDone)
	if err != nil {
		return "", err
	}
	return rec.Results.GetString("status")
}

// VarEvaluateExpression issues "-var-evaluate-expression name".
func (ip *Interp) VarEvaluateExpression(name string) (string, error) {
	rec, err := ip.exec("var-evaluate-expression", " "+name, mi2.ClassDone)
	if err != nil {
		return "", err
	}
	return rec.Results.GetString("value")
}

// VarAssign issues "-var-assign name value".
func (ip *Interp) VarAssign(name, value string) (string, error) {
	rec, err := ip.exec("var-assign", fmt.Sprintf(" %s %s", name, value), mi2.ClassDone)
	if err != nil {
		return "", err
	}
	return rec.Results.GetString("value")
}

// VarUpdate issues "-var-update name" (or "*" for all root variables).
func (ip *Interp) VarUpdate(name string) (mi2.Record, error) {
	return ip.exec("var-update", " "+name, mi2.ClassDone)
}

// VarSetFrozen issues "-var-set-frozen name flag".
func (ip *Interp) VarSetFrozen(name string, frozen bool) error {
	flag := "0"
	if frozen {
		flag = "1"
	}
	_, err := ip.exec("var-set-frozen", fmt.Sprintf(" %s %s", name, flag), mi2.ClassDone)
	return err
}

// VarSetUpdateRange issues "-var-set-update-range name from to".
func (ip *Interp) VarSetUpdateRange(name string, from, to int) error {
	_, err := ip.exec("var-set-update-range", fmt.Sprintf(" %s %d %d", name, from, to), mi2.ClassDone)
	return err
}

// VarSetVisualizer issues "-var-set-visualizer name visualizer".
func (ip *Interp) VarSetVisualizer(name, visualizer string) error {
	_, err := ip.exec("var-set-visualizer", fmt.Sprintf(" %s %s", name, visualizer), mi2.ClassDone)
	return err
}
