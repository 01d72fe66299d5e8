// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqn

import (
	"strings"
	"testing"

	"github.com/goki/mat32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestCompileSystem(t *testing.T) {
	sy, err := CompileSystem(`
		dv/dt = 0.04*pow(v, 2) + 5*v + 140 - u + I
		du/dt = 0.02 * (0.2*v - u)
	`)
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	if sy.NDeriv() != 2 {
		t.Errorf("NDeriv: %v != 2", sy.NDeriv())
	}
	if sy.VarNames[0] != "v" || sy.VarNames[1] != "u" {
		t.Errorf("var names: %v", sy.VarNames)
	}

	st := []float32{-65, -13}
	d := make([]float32, 2)
	sy.Deriv(st, 10, 0, d)
	corv := float32(0.04*65*65 - 5*65 + 140 + 13 + 10)
	coru := float32(0.02 * (0.2*-65 + 13))
	if dif := mat32.Abs(d[0] - corv); dif > difTol {
		t.Errorf("dv: %v, cor: %v, dif: %v", d[0], corv, dif)
	}
	if dif := mat32.Abs(d[1] - coru); dif > difTol {
		t.Errorf("du: %v, cor: %v, dif: %v", d[1], coru, dif)
	}
}

func TestExpBuiltins(t *testing.T) {
	sy, err := CompileSystem("dv/dt = exp(v/2) + I - t")
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	d := make([]float32, 1)
	sy.Deriv([]float32{3}, 1.5, 0.5, d)
	cor := mat32.Exp(1.5) + 1.5 - 0.5
	if dif := mat32.Abs(d[0] - cor); dif > difTol {
		t.Errorf("deriv: %v, cor: %v, dif: %v", d[0], cor, dif)
	}
}

func TestCond(t *testing.T) {
	sy, err := CompileSystem("dv/dt = I - v")
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	cd, err := sy.CompileCond("v >= 30")
	if err != nil {
		t.Fatalf("cond err: %v", err)
	}
	if cd.Eval([]float32{29.9}, 0, 0) {
		t.Errorf("29.9 >= 30 should be false")
	}
	if !cd.Eval([]float32{30}, 0, 0) {
		t.Errorf("30 >= 30 should be true")
	}
	if !cd.Eval([]float32{31}, 0, 0) {
		t.Errorf("31 >= 30 should be true")
	}
}

func TestAssignsSequential(t *testing.T) {
	sy, err := CompileSystem(`
		dv/dt = I - v
		du/dt = v - u
	`)
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	as, err := sy.CompileAssigns("v = -65; u += v")
	if err != nil {
		t.Fatalf("assigns err: %v", err)
	}
	// second clause must see the first clause's write
	st := []float32{30, 2}
	as.Apply(st, 0, 0)
	if st[0] != -65 {
		t.Errorf("v after reset: %v != -65", st[0])
	}
	if st[1] != 2-65 {
		t.Errorf("u after reset: %v != %v", st[1], 2-65)
	}
}

func TestRejects(t *testing.T) {
	sy, err := CompileSystem("dv/dt = I - v")
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	bad := []string{
		"v % 3",     // operator not in grammar
		"v ** 2",    // parses as v * (*2), deref rejected
		"w + 1",     // unknown variable
		"sin(v)",    // unknown function
		"exp(v, 2)", // wrong arity
		"pow(v)",    // wrong arity
		"v > 1",     // comparison is not a value
		`"s"`,       // string literal
	}
	for _, src := range bad {
		if _, err := sy.CompileExpr(src); err == nil {
			t.Errorf("compile %q should fail", src)
		}
	}
	if _, err := sy.CompileCond("v == 30"); err == nil {
		t.Errorf("== condition should fail")
	}
	if _, err := sy.CompileCond("v"); err == nil {
		t.Errorf("bare expression condition should fail")
	}
	if _, err := sy.CompileAssigns("I = 3"); err == nil {
		t.Errorf("assignment to I should fail")
	}
	if _, err := sy.CompileAssigns("w = 3"); err == nil {
		t.Errorf("assignment to undeclared variable should fail")
	}
	if _, err := CompileSystem("dv/dt = v\ndv/dt = 2*v"); err == nil {
		t.Errorf("duplicate variable should fail")
	}
	if _, err := CompileSystem("   \n  "); err == nil {
		t.Errorf("empty system should fail")
	}
	if _, err := CompileSystem("v = I - v"); err == nil {
		t.Errorf("non-derivative line should fail")
	}
}

func TestParseErrorText(t *testing.T) {
	sy, err := CompileSystem("dv/dt = I - v")
	if err != nil {
		t.Fatalf("compile err: %v", err)
	}
	_, err = sy.CompileExpr("v + w")
	if err == nil {
		t.Fatalf("expected error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type: %T", err)
	}
	if !strings.Contains(pe.Msg, "w") {
		t.Errorf("message should name the variable: %q", pe.Msg)
	}
	if pe.Pos != 4 {
		t.Errorf("pos: %v != 4", pe.Pos)
	}
}
