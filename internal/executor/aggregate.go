package executor

import (
	"github.com/ritamzico/graphdb/internal/cypher"
	"github.com/ritamzico/graphdb/internal/runtime"
	"github.com/ritamzico/graphdb/internal/store"
)

// accumulator folds a sequence of row-local values into one aggregate
// result, per the COUNT/SUM/AVG/MIN/MAX table in spec §4.3.
type accumulator interface {
	add(v store.Value, isStar bool)
	result() store.Value
}

func newAccumulator(fn string) accumulator {
	switch fn {
	case "COUNT":
		return &countAcc{}
	case "SUM":
		return &sumAcc{}
	case "AVG":
		return &avgAcc{}
	case "MIN":
		return &minMaxAcc{wantMax: false}
	case "MAX":
		return &minMaxAcc{wantMax: true}
	default:
		return &countAcc{}
	}
}

type countAcc struct{ n int64 }

func (a *countAcc) add(v store.Value, isStar bool) {
	if isStar || !v.IsNull() {
		a.n++
	}
}
func (a *countAcc) result() store.Value { return store.Int(a.n) }

type sumAcc struct {
	total float64
	isInt bool
	any   bool
}

func (a *sumAcc) add(v store.Value, isStar bool) {
	if v.IsNull() || !v.IsNumeric() {
		return
	}
	if !a.any {
		a.isInt = v.Kind == store.KindInt
	} else if v.Kind != store.KindInt {
		a.isInt = false
	}
	a.any = true
	a.total += v.AsFloat()
}
func (a *sumAcc) result() store.Value {
	if !a.any {
		return store.Null()
	}
	if a.isInt {
		return store.Int(int64(a.total))
	}
	return store.Float(a.total)
}

type avgAcc struct {
	total float64
	count int64
}

func (a *avgAcc) add(v store.Value, isStar bool) {
	if v.IsNull() || !v.IsNumeric() {
		return
	}
	a.total += v.AsFloat()
	a.count++
}
func (a *avgAcc) result() store.Value {
	if a.count == 0 {
		return store.Null()
	}
	return store.Float(a.total / float64(a.count))
}

type minMaxAcc struct {
	wantMax bool
	have    bool
	best    store.Value
}

func (a *minMaxAcc) add(v store.Value, isStar bool) {
	if v.IsNull() {
		return
	}
	if !a.have {
		a.best = v
		a.have = true
		return
	}
	if a.wantMax {
		if a.best.Less(v) {
			a.best = v
		}
	} else {
		if v.Less(a.best) {
			a.best = v
		}
	}
}
func (a *minMaxAcc) result() store.Value {
	if !a.have {
		return store.Null()
	}
	return a.best
}

// aggregateValue evaluates an aggregate's argument against a single row,
// returning the value to feed the accumulator and whether it's the bare
// "*" form.
func aggregateValue(agg *cypher.AggregateCall, row runtime.Row) (store.Value, bool, error) {
	if agg.Arg.Star {
		return store.Null(), true, nil
	}
	v, err := runtime.Evaluate(agg.Arg.Expr, row)
	if err != nil {
		return store.Null(), false, err
	}
	return v, false, nil
}
