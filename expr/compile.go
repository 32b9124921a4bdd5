// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"math"
	"strconv"

	"github.com/aclements/go-gglayer/render"
)

type compiler struct {
	schema Schema
	cols   map[string]bool
}

func newCompiler(schema Schema) *compiler {
	return &compiler{schema, make(map[string]bool)}
}

func (c *compiler) compile(src string) (node, error) {
	fset := token.NewFileSet()
	ast, err := parser.ParseExprFrom(fset, "", src, 0)
	if err != nil {
		return nil, err
	}

	// Translate AST into nested closures and type-check.
	var fn node
	func() {
		defer func() {
			err2 := recover()
			switch e := err2.(type) {
			case nil:
			case *compileError:
				err = e
			case *UndefinedError:
				err = e
			default:
				panic(err2)
			}
		}()
		fn = c.expr(ast)
	}()
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// bad panics with a compileError for the given message.
func (c *compiler) bad(format string, a ...interface{}) {
	panic(&compileError{format, a})
}

// An UndefinedError reports an identifier or col("...") reference that
// names no column in the schema.
type UndefinedError struct {
	Name string
}

func (e *UndefinedError) Error() string {
	return "undefined: " + e.Name
}

type compileError struct {
	format string
	a      []interface{}
}

func (e *compileError) Error() string {
	return fmt.Sprintf(e.format, e.a...)
}

type node interface {
	// typ returns the type of this node's result.
	typ() Type

	// value returns an evaluation function that boxes its result.
	value() func(Env) any
}

type (
	boolNode   func(env Env) bool
	numberNode func(env Env) float64
	stringNode func(env Env) string
)

func (boolNode) typ() Type   { return Bool }
func (numberNode) typ() Type { return Number }
func (stringNode) typ() Type { return String }

func (n boolNode) value() func(Env) any {
	return func(env Env) any { return n(env) }
}

func (n numberNode) value() func(Env) any {
	return func(env Env) any {
		v := n(env)
		if math.IsNaN(v) {
			return nil
		}
		return v
	}
}

func (n stringNode) value() func(Env) any {
	return func(env Env) any { return n(env) }
}

// bool returns n as a boolNode or panics with a type error.
func (c *compiler) bool(e ast.Expr, n node) boolNode {
	fn, ok := n.(boolNode)
	if !ok {
		c.bad("want bool, but %s has type %s", show(e), n.typ())
	}
	return fn
}

// number returns n as a numberNode or panics with a type error.
func (c *compiler) number(e ast.Expr, n node) numberNode {
	fn, ok := n.(numberNode)
	if !ok {
		c.bad("want number, but %s has type %s", show(e), n.typ())
	}
	return fn
}

// str converts n to a stringNode. Numbers are formatted the same way
// render.Key formats them, so factor(x) groups like a column of x.
func (c *compiler) str(n node) stringNode {
	switch n := n.(type) {
	case stringNode:
		return n
	case numberNode:
		return func(env Env) string {
			v := n(env)
			if math.IsNaN(v) {
				return "NA"
			}
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
	case boolNode:
		return func(env Env) string {
			return strconv.FormatBool(n(env))
		}
	}
	panic("unreachable")
}

// sameType requires that x and y have the same type and that both are
// one of typs.
func (c *compiler) sameType(e *ast.BinaryExpr, x, y node, typs ...Type) {
	ok := false
	for _, typ := range typs {
		if x.typ() == typ {
			ok = true
		}
	}
	if !ok {
		c.bad("operator %s not defined on %s (type %s)", e.Op, show(e.X), x.typ())
	}
	if x.typ() != y.typ() {
		c.bad("operands of %s must have same type, not %s and %s", show(e), x.typ(), y.typ())
	}
}

// column returns the node for a column reference.
func (c *compiler) column(name string) node {
	typ, ok := c.schema[name]
	if !ok {
		panic(&UndefinedError{name})
	}
	c.cols[name] = true
	switch typ {
	case Number:
		return numberNode(func(env Env) float64 {
			v, ok := render.Float(env.Lookup(name))
			if !ok {
				return math.NaN()
			}
			return v
		})
	case Bool:
		return boolNode(func(env Env) bool {
			v, _ := env.Lookup(name).(bool)
			return v
		})
	}
	return stringNode(func(env Env) string {
		v := env.Lookup(name)
		if v == nil {
			return "NA"
		}
		return render.Key(v)
	})
}

// expr type-checks and compiles e to a node.
func (c *compiler) expr(e ast.Expr) node {
	switch e := e.(type) {
	case *ast.BasicLit:
		v := constant.MakeFromLiteral(e.Value, e.Kind, 0)
		switch e.Kind {
		case token.INT, token.FLOAT:
			f, _ := constant.Float64Val(constant.ToFloat(v))
			return numberNode(func(env Env) float64 {
				return f
			})
		case token.STRING:
			str := constant.StringVal(v)
			return stringNode(func(env Env) string {
				return str
			})
		}

	case *ast.BinaryExpr:
		x, y := c.expr(e.X), c.expr(e.Y)
		switch e.Op {
		case token.ADD:
			c.sameType(e, x, y, Number, String)
			switch x := x.(type) {
			case numberNode:
				y := y.(numberNode)
				return numberNode(func(env Env) float64 {
					return x(env) + y(env)
				})
			case stringNode:
				y := y.(stringNode)
				return stringNode(func(env Env) string {
					return x(env) + y(env)
				})
			}
		case token.SUB, token.MUL, token.QUO, token.REM:
			x, y := c.number(e.X, x), c.number(e.Y, y)
			op := e.Op
			return numberNode(func(env Env) float64 {
				a, b := x(env), y(env)
				switch op {
				case token.SUB:
					return a - b
				case token.MUL:
					return a * b
				case token.QUO:
					return a / b
				}
				return math.Mod(a, b)
			})
		case token.LAND:
			x, y := c.bool(e.X, x), c.bool(e.Y, y)
			return boolNode(func(env Env) bool {
				return x(env) && y(env)
			})
		case token.LOR:
			x, y := c.bool(e.X, x), c.bool(e.Y, y)
			return boolNode(func(env Env) bool {
				return x(env) || y(env)
			})
		case token.LSS, token.GTR, token.LEQ, token.GEQ:
			c.sameType(e, x, y, Number, String)
			fallthrough
		case token.EQL, token.NEQ:
			c.sameType(e, x, y, Bool, Number, String)
			return compare(e.Op, x, y)
		}

	case *ast.CallExpr:
		id, ok := e.Fun.(*ast.Ident)
		if !ok {
			c.bad("bad call %s", show(e))
		}
		return c.call(id.Name, e)

	case *ast.Ident:
		if _, ok := c.schema[e.Name]; ok {
			return c.column(e.Name)
		}
		switch e.Name {
		case "true", "false":
			v := e.Name == "true"
			return boolNode(func(env Env) bool { return v })
		case "pi":
			return numberNode(func(env Env) float64 { return math.Pi })
		case "NA":
			return numberNode(func(env Env) float64 { return math.NaN() })
		}
		panic(&UndefinedError{e.Name})

	case *ast.ParenExpr:
		return c.expr(e.X)

	case *ast.UnaryExpr:
		x := c.expr(e.X)
		switch e.Op {
		case token.ADD:
			return c.number(e.X, x)
		case token.SUB:
			x := c.number(e.X, x)
			return numberNode(func(env Env) float64 {
				return -x(env)
			})
		case token.NOT:
			x := c.bool(e.X, x)
			return boolNode(func(env Env) bool {
				return !x(env)
			})
		}
	}
	c.bad("unsupported expression %s", show(e))
	return nil
}

func compare(op token.Token, x, y node) boolNode {
	switch x := x.(type) {
	case numberNode:
		y := y.(numberNode)
		return func(env Env) bool {
			a, b := x(env), y(env)
			return constant.Compare(constant.MakeFloat64(a), op, constant.MakeFloat64(b))
		}
	case stringNode:
		y := y.(stringNode)
		return func(env Env) bool {
			return constant.Compare(constant.MakeString(x(env)), op, constant.MakeString(y(env)))
		}
	}
	x1, y1 := x.(boolNode), y.(boolNode)
	return func(env Env) bool {
		return constant.Compare(constant.MakeBool(x1(env)), op, constant.MakeBool(y1(env)))
	}
}

var unaryMath = map[string]func(float64) float64{
	"log":   math.Log,
	"log10": math.Log10,
	"log2":  math.Log2,
	"log1p": math.Log1p,
	"exp":   math.Exp,
	"sqrt":  math.Sqrt,
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": math.Round,
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
}

var binaryMath = map[string]func(float64, float64) float64{
	"pow": math.Pow,
	"min": math.Min,
	"max": math.Max,
}

func (c *compiler) call(name string, e *ast.CallExpr) node {
	args := e.Args
	nargs := func(n int) {
		if len(args) != n {
			c.bad("%s takes %d argument(s), got %d", name, n, len(args))
		}
	}
	if f, ok := unaryMath[name]; ok {
		nargs(1)
		x := c.number(args[0], c.expr(args[0]))
		return numberNode(func(env Env) float64 {
			return f(x(env))
		})
	}
	if f, ok := binaryMath[name]; ok {
		nargs(2)
		x := c.number(args[0], c.expr(args[0]))
		y := c.number(args[1], c.expr(args[1]))
		return numberNode(func(env Env) float64 {
			return f(x(env), y(env))
		})
	}
	switch name {
	case "col":
		// col("name") references columns whose names are not
		// identifiers.
		nargs(1)
		lit, ok := args[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			c.bad("col wants a string literal, got %s", show(args[0]))
		}
		return c.column(constant.StringVal(constant.MakeFromLiteral(lit.Value, lit.Kind, 0)))
	case "factor", "string":
		nargs(1)
		return c.str(c.expr(args[0]))
	case "ifelse":
		nargs(3)
		cond := c.bool(args[0], c.expr(args[0]))
		x, y := c.expr(args[1]), c.expr(args[2])
		if x.typ() != y.typ() {
			c.bad("ifelse branches must have same type, not %s and %s", x.typ(), y.typ())
		}
		switch x := x.(type) {
		case numberNode:
			y := y.(numberNode)
			return numberNode(func(env Env) float64 {
				if cond(env) {
					return x(env)
				}
				return y(env)
			})
		case stringNode:
			y := y.(stringNode)
			return stringNode(func(env Env) string {
				if cond(env) {
					return x(env)
				}
				return y(env)
			})
		case boolNode:
			y := y.(boolNode)
			return boolNode(func(env Env) bool {
				if cond(env) {
					return x(env)
				}
				return y(env)
			})
		}
	}
	c.bad("undefined: %s", name)
	return nil
}

func show(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.BasicLit:
		return e.Value
	case *ast.BinaryExpr:
		return show(e.X) + " " + e.Op.String() + " " + show(e.Y)
	case *ast.UnaryExpr:
		return e.Op.String() + show(e.X)
	case *ast.ParenExpr:
		return "(" + show(e.X) + ")"
	case *ast.CallExpr:
		s := show(e.Fun) + "("
		for i, a := range e.Args {
			if i > 0 {
				s += ", "
			}
			s += show(a)
		}
		return s + ")"
	}
	return fmt.Sprintf("%T", e)
}
