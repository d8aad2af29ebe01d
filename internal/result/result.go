// Package result is the tabular result type produced by internal/executor:
// an ordered set of named columns and the rows beneath them, adapted from
// this lineage's Result interface (formerly one variant per probabilistic
// query kind) to the single shape a Cypher RETURN clause always produces.
package result

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ritamzico/graphdb/internal/runtime"
)

// Kind discriminates a Result the way the original probabilistic-query
// variants did; a Cypher query always yields a table, so there is only
// one kind, kept so callers that switch on Kind() still compile.
type Kind int

const TableResultKind Kind = 0

// Record is one result row: a Binding per column, in Set.Columns order.
type Record struct {
	Columns []string
	Values  []runtime.Binding
}

// Get returns the value bound to the named column, or the zero Binding
// and false if no such column exists.
func (r Record) Get(name string) (runtime.Binding, bool) {
	for i, c := range r.Columns {
		if c == name {
			return r.Values[i], true
		}
	}
	return runtime.Binding{}, false
}

// First returns the record's sole value, for callers that only asked for
// one column (e.g. a scalar RETURN count(*)).
func (r Record) First() (runtime.Binding, bool) {
	if len(r.Values) == 0 {
		return runtime.Binding{}, false
	}
	return r.Values[0], true
}

// Set is the full result of a query: its column names and every row.
type Set struct {
	Columns []string
	Records []Record
}

func (s Set) Kind() Kind { return TableResultKind }

// String renders the result as an aligned text table.
func (s Set) String() string {
	if len(s.Columns) == 0 {
		return "(no columns)"
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 2, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(s.Columns, "\t"))
	for _, rec := range s.Records {
		cells := make([]string, len(rec.Values))
		for i, v := range rec.Values {
			cells[i] = v.String()
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
	if len(s.Records) == 0 {
		b.WriteString("(0 rows)\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
