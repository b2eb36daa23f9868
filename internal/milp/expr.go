package milp

import "sort"

type term struct {
	v    *Variable
	coef float64
}

// Expr is a linear expression: a sum of coefficient*variable terms plus a constant.
// Expressions are values; every method returns a new Expr.
type Expr struct {
	terms    []term
	constant float64
}

// Term returns coef*v.
func Term(coef float64, v *Variable) Expr {
	return Expr{terms: []term{{v: v, coef: coef}}}
}

// Sum returns the unit-coefficient sum of vars.
func Sum(vars ...*Variable) Expr {
	e := Expr{terms: make([]term, 0, len(vars))}
	for _, v := range vars {
		e.terms = append(e.terms, term{v: v, coef: 1})
	}
	return e
}

// WeightedSum returns sum(coefs[k]*vars[k]). Extra entries in the longer slice are ignored.
func WeightedSum(coefs []float64, vars []*Variable) Expr {
	n := len(vars)
	if len(coefs) < n {
		n = len(coefs)
	}
	e := Expr{terms: make([]term, 0, n)}
	for k := 0; k < n; k++ {
		e.terms = append(e.terms, term{v: vars[k], coef: coefs[k]})
	}
	return e
}

// Const returns the constant expression c.
func Const(c float64) Expr {
	return Expr{constant: c}
}

func (e Expr) clone() Expr {
	out := Expr{terms: make([]term, len(e.terms)), constant: e.constant}
	copy(out.terms, e.terms)
	return out
}

// AddTerm returns e + coef*v.
func (e Expr) AddTerm(coef float64, v *Variable) Expr {
	out := e.clone()
	out.terms = append(out.terms, term{v: v, coef: coef})
	return out
}

// Plus returns e + o.
func (e Expr) Plus(o Expr) Expr {
	out := e.clone()
	out.terms = append(out.terms, o.terms...)
	out.constant += o.constant
	return out
}

// Minus returns e - o.
func (e Expr) Minus(o Expr) Expr {
	return e.Plus(o.Scale(-1))
}

// Scale returns k*e.
func (e Expr) Scale(k float64) Expr {
	out := e.clone()
	for i := range out.terms {
		out.terms[i].coef *= k
	}
	out.constant *= k
	return out
}

// Constant returns the constant part of the expression.
func (e Expr) Constant() float64 { return e.constant }

// Len returns the number of terms before merging.
func (e Expr) Len() int { return len(e.terms) }

// Eval evaluates the expression for the given column values.
func (e Expr) Eval(values []float64) float64 {
	sum := e.constant
	for _, t := range e.terms {
		if t.v.index < len(values) {
			sum += t.coef * values[t.v.index]
		}
	}
	return sum
}

// compact merges repeated variables and drops zero coefficients.
// Columns are returned in ascending order.
func (e Expr) compact() ([]int, []float64) {
	merged := make(map[int]float64, len(e.terms))
	for _, t := range e.terms {
		merged[t.v.index] += t.coef
	}
	cols := make([]int, 0, len(merged))
	for col, coef := range merged {
		if coef != 0 {
			cols = append(cols, col)
		}
	}
	sort.Ints(cols)
	coefs := make([]float64, len(cols))
	for k, col := range cols {
		coefs[k] = merged[col]
	}
	return cols, coefs
}
