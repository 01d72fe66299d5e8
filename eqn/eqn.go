// Copyright (c) 2024, The SpikeNet Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package eqn compiles user-supplied neuron equations into closed evaluators
over a float32 state vector.

The accepted grammar is deliberately small: the four arithmetic operators,
unary minus, parentheses, numeric literals, the functions exp(x) and
pow(x, y), the declared state variables, and the built-in inputs I (drive
current) and t (time in ms).  Everything is compiled once, before a run
starts, so a malformed model is rejected up front with a ParseError naming
the offending token -- nothing is interpreted or re-parsed inside the
stepping loop.

A derivative system is a set of lines of the form:

	dv/dt = (I - v) / 10
	du/dt = 0.02 * (0.2*v - u)

which fixes the state variable names and their order.  Threshold conditions
are a single comparison between two expressions (v >= 30), and reset
programs are semicolon-separated assignments (v = -65; u += 2) applied in
order against the updating state.
*/
package eqn

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/goki/mat32"
)

func expf(x float32) float32 { return mat32.Exp(x) }

func powf(x, y float32) float32 { return mat32.Pow(x, y) }

// ParseError is a rejected equation: the source text, the byte position of
// the offending token within it, and what was expected instead.
type ParseError struct {
	Src string
	Pos int
	Msg string
}

func (pe *ParseError) Error() string {
	return fmt.Sprintf("eqn: %s at pos %d in %q", pe.Msg, pe.Pos, pe.Src)
}

func parseErr(src string, pos int, format string, args ...any) error {
	return &ParseError{Src: src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// evalFn evaluates one compiled node against the state vector, the drive
// current in, and the current time in ms.
type evalFn func(st []float32, in, t float32) float32

// Expr is one compiled expression.
type Expr struct {
	src string
	fn  evalFn
}

// Eval evaluates the expression against state st, drive current in, and
// time t (ms).
func (ex *Expr) Eval(st []float32, in, t float32) float32 {
	return ex.fn(st, in, t)
}

func (ex *Expr) String() string {
	return ex.src
}

// CondOp is the comparison operator of a threshold condition.
type CondOp int

const (
	GT CondOp = iota
	GE
	LT
	LE
)

// Cond is a compiled threshold condition: lhs op rhs.
type Cond struct {
	src      string
	op       CondOp
	lhs, rhs evalFn
}

// Eval reports whether the condition holds for state st, drive current in,
// and time t (ms).
func (cd *Cond) Eval(st []float32, in, t float32) bool {
	l := cd.lhs(st, in, t)
	r := cd.rhs(st, in, t)
	switch cd.op {
	case GT:
		return l > r
	case GE:
		return l >= r
	case LT:
		return l < r
	default:
		return l <= r
	}
}

func (cd *Cond) String() string {
	return cd.src
}

// Assign is one compiled reset assignment: st[Idx] = rhs, or
// st[Idx] += rhs when Add is set.
type Assign struct {
	Var string
	Idx int
	Add bool
	rhs *Expr
}

// Assigns is a compiled reset program, applied in order so later
// assignments see the effect of earlier ones.
type Assigns []Assign

// Apply runs the assignments against state st.
func (as Assigns) Apply(st []float32, in, t float32) {
	for i := range as {
		v := as[i].rhs.Eval(st, in, t)
		if as[i].Add {
			st[as[i].Idx] += v
		} else {
			st[as[i].Idx] = v
		}
	}
}

// System is a compiled derivative system: the ordered state variable names
// and one derivative expression per variable.
type System struct {
	VarNames []string
	VarIdx   map[string]int
	derivs   []*Expr
}

// CompileSystem parses and compiles a derivative system from eqs, one
// derivative line per state variable.  Blank lines are skipped.  The
// variable order of the returned System is the line order of eqs.
func CompileSystem(eqs string) (*System, error) {
	sy := &System{VarIdx: make(map[string]int)}
	var exprs []string
	for _, ln := range strings.Split(eqs, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		nm, ex, err := splitDerivLine(ln)
		if err != nil {
			return nil, err
		}
		if _, dup := sy.VarIdx[nm]; dup {
			return nil, parseErr(ln, 0, "duplicate state variable %q", nm)
		}
		sy.VarIdx[nm] = len(sy.VarNames)
		sy.VarNames = append(sy.VarNames, nm)
		exprs = append(exprs, ex)
	}
	if len(sy.VarNames) == 0 {
		return nil, parseErr(eqs, 0, "no derivative lines (want d<var>/dt = <expr>)")
	}
	for _, ex := range exprs {
		cex, err := sy.CompileExpr(ex)
		if err != nil {
			return nil, err
		}
		sy.derivs = append(sy.derivs, cex)
	}
	return sy, nil
}

// splitDerivLine splits one "d<var>/dt = <expr>" line into the variable
// name and the expression source.
func splitDerivLine(ln string) (nm, ex string, err error) {
	eq := strings.Index(ln, "=")
	if eq < 0 {
		return "", "", parseErr(ln, 0, "missing = in derivative line")
	}
	lhs := strings.TrimSpace(ln[:eq])
	ex = strings.TrimSpace(ln[eq+1:])
	if !strings.HasPrefix(lhs, "d") || !strings.HasSuffix(lhs, "/dt") {
		return "", "", parseErr(ln, 0, "left side must be d<var>/dt, got %q", lhs)
	}
	nm = strings.TrimSpace(lhs[1 : len(lhs)-3])
	if !validIdent(nm) {
		return "", "", parseErr(ln, 0, "invalid state variable name %q", nm)
	}
	if ex == "" {
		return "", "", parseErr(ln, eq, "empty derivative expression")
	}
	return nm, ex, nil
}

func validIdent(nm string) bool {
	if nm == "" || nm == "I" || nm == "t" {
		return false
	}
	for i, r := range nm {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// NDeriv returns a System's number of state variables.
func (sy *System) NDeriv() int {
	return len(sy.VarNames)
}

// Deriv evaluates all derivatives for state st, drive current in, and time
// t (ms) into d, which must have NDeriv elements.
func (sy *System) Deriv(st []float32, in, t float32, d []float32) {
	for i, dx := range sy.derivs {
		d[i] = dx.Eval(st, in, t)
	}
}

// CompileExpr compiles one expression against the system's variables.
func (sy *System) CompileExpr(src string) (*Expr, error) {
	an, err := parser.ParseExpr(src)
	if err != nil {
		return nil, parseErr(src, 0, "not a valid expression: %v", err)
	}
	fn, err := sy.compile(src, an)
	if err != nil {
		return nil, err
	}
	return &Expr{src: src, fn: fn}, nil
}

// CompileCond compiles a threshold condition: <expr> (>|>=|<|<=) <expr>.
func (sy *System) CompileCond(src string) (*Cond, error) {
	an, err := parser.ParseExpr(src)
	if err != nil {
		return nil, parseErr(src, 0, "not a valid condition: %v", err)
	}
	bin, ok := an.(*ast.BinaryExpr)
	if !ok {
		return nil, parseErr(src, nodePos(an), "condition must compare two expressions")
	}
	var op CondOp
	switch bin.Op {
	case token.GTR:
		op = GT
	case token.GEQ:
		op = GE
	case token.LSS:
		op = LT
	case token.LEQ:
		op = LE
	default:
		return nil, parseErr(src, int(bin.OpPos)-1, "condition operator must be > >= < <=, got %s", bin.Op)
	}
	lhs, err := sy.compile(src, bin.X)
	if err != nil {
		return nil, err
	}
	rhs, err := sy.compile(src, bin.Y)
	if err != nil {
		return nil, err
	}
	return &Cond{src: src, op: op, lhs: lhs, rhs: rhs}, nil
}

// CompileAssigns compiles a reset program: semicolon-separated
// <var> = <expr> or <var> += <expr> assignments.
func (sy *System) CompileAssigns(src string) (Assigns, error) {
	var as Assigns
	for _, cl := range strings.Split(src, ";") {
		cl = strings.TrimSpace(cl)
		if cl == "" {
			continue
		}
		nm, rhs, add, err := splitAssign(cl)
		if err != nil {
			return nil, err
		}
		idx, ok := sy.VarIdx[nm]
		if !ok {
			return nil, parseErr(cl, 0, "assignment to undeclared variable %q", nm)
		}
		cex, err := sy.CompileExpr(rhs)
		if err != nil {
			return nil, err
		}
		as = append(as, Assign{Var: nm, Idx: idx, Add: add, rhs: cex})
	}
	if len(as) == 0 {
		return nil, parseErr(src, 0, "no assignments (want <var> = <expr>)")
	}
	return as, nil
}

func splitAssign(cl string) (nm, rhs string, add bool, err error) {
	eq := strings.Index(cl, "=")
	if eq < 0 {
		return "", "", false, parseErr(cl, 0, "missing = in assignment")
	}
	lhs := strings.TrimSpace(cl[:eq])
	if strings.HasSuffix(lhs, "+") {
		add = true
		lhs = strings.TrimSpace(lhs[:len(lhs)-1])
	}
	rhs = strings.TrimSpace(cl[eq+1:])
	if !validIdent(lhs) {
		return "", "", false, parseErr(cl, 0, "invalid assignment target %q", lhs)
	}
	if rhs == "" {
		return "", "", false, parseErr(cl, eq, "empty assignment expression")
	}
	return lhs, rhs, add, nil
}

// nodePos converts an ast position to a byte offset in the parsed source.
func nodePos(an ast.Node) int {
	return int(an.Pos()) - 1
}

// compile walks the parsed tree, rejecting anything outside the grammar,
// and returns the evaluator for this node.
func (sy *System) compile(src string, an ast.Expr) (evalFn, error) {
	switch n := an.(type) {
	case *ast.ParenExpr:
		return sy.compile(src, n.X)

	case *ast.BasicLit:
		if n.Kind != token.INT && n.Kind != token.FLOAT {
			return nil, parseErr(src, nodePos(n), "literal must be numeric, got %s", n.Kind)
		}
		f, err := strconv.ParseFloat(n.Value, 32)
		if err != nil {
			return nil, parseErr(src, nodePos(n), "bad number %q", n.Value)
		}
		c := float32(f)
		return func(st []float32, in, t float32) float32 { return c }, nil

	case *ast.Ident:
		switch n.Name {
		case "I":
			return func(st []float32, in, t float32) float32 { return in }, nil
		case "t":
			return func(st []float32, in, t float32) float32 { return t }, nil
		}
		idx, ok := sy.VarIdx[n.Name]
		if !ok {
			return nil, parseErr(src, nodePos(n), "unknown variable %q", n.Name)
		}
		return func(st []float32, in, t float32) float32 { return st[idx] }, nil

	case *ast.UnaryExpr:
		if n.Op != token.SUB {
			return nil, parseErr(src, int(n.OpPos)-1, "unary operator %s not allowed", n.Op)
		}
		x, err := sy.compile(src, n.X)
		if err != nil {
			return nil, err
		}
		return func(st []float32, in, t float32) float32 { return -x(st, in, t) }, nil

	case *ast.BinaryExpr:
		x, err := sy.compile(src, n.X)
		if err != nil {
			return nil, err
		}
		y, err := sy.compile(src, n.Y)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case token.ADD:
			return func(st []float32, in, t float32) float32 { return x(st, in, t) + y(st, in, t) }, nil
		case token.SUB:
			return func(st []float32, in, t float32) float32 { return x(st, in, t) - y(st, in, t) }, nil
		case token.MUL:
			return func(st []float32, in, t float32) float32 { return x(st, in, t) * y(st, in, t) }, nil
		case token.QUO:
			return func(st []float32, in, t float32) float32 { return x(st, in, t) / y(st, in, t) }, nil
		}
		return nil, parseErr(src, int(n.OpPos)-1, "operator %s not allowed (use pow(x, y) for powers)", n.Op)

	case *ast.CallExpr:
		fid, ok := n.Fun.(*ast.Ident)
		if !ok {
			return nil, parseErr(src, nodePos(n.Fun), "only exp and pow calls allowed")
		}
		switch fid.Name {
		case "exp":
			if len(n.Args) != 1 {
				return nil, parseErr(src, nodePos(n), "exp takes 1 argument, got %d", len(n.Args))
			}
			x, err := sy.compile(src, n.Args[0])
			if err != nil {
				return nil, err
			}
			return func(st []float32, in, t float32) float32 { return expf(x(st, in, t)) }, nil
		case "pow":
			if len(n.Args) != 2 {
				return nil, parseErr(src, nodePos(n), "pow takes 2 arguments, got %d", len(n.Args))
			}
			x, err := sy.compile(src, n.Args[0])
			if err != nil {
				return nil, err
			}
			y, err := sy.compile(src, n.Args[1])
			if err != nil {
				return nil, err
			}
			return func(st []float32, in, t float32) float32 { return powf(x(st, in, t), y(st, in, t)) }, nil
		}
		return nil, parseErr(src, nodePos(fid), "unknown function %q (only exp and pow)", fid.Name)
	}
	return nil, parseErr(src, nodePos(an), "construct not allowed in equations")
}
