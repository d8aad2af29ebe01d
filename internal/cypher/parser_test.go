package cypher

import "testing"

func TestParseEmptyQuery(t *testing.T) {
	if _, err := Parse("   "); err == nil {
		t.Fatal("expected ParseError for blank input")
	} else if _, ok := err.(ParseError); !ok {
		t.Errorf("expected ParseError, got %T: %v", err, err)
	}
}

func TestParseSimpleMatchReturn(t *testing.T) {
	q, err := Parse(`MATCH (p:Person) RETURN p.name`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(q.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(q.Clauses))
	}
	m := q.Clauses[0].Match
	if m == nil || len(m.Patterns) != 1 {
		t.Fatalf("expected one MATCH pattern, got %+v", m)
	}
	first := m.Patterns[0].First
	if first.Var != "p" || len(first.Labels) != 1 || first.Labels[0] != "Person" {
		t.Errorf("unexpected node pattern: %+v", first)
	}

	r := q.Clauses[1].Return
	if r == nil || len(r.Projections) != 1 {
		t.Fatalf("expected one RETURN projection, got %+v", r)
	}
}

func TestParseRelationshipPatternWithTypeAndDirection(t *testing.T) {
	q, err := Parse(`MATCH (a)-[:KNOWS]->(b) RETURN a, b`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	chain := q.Clauses[0].Match.Patterns[0]
	if len(chain.Steps) != 1 {
		t.Fatalf("expected one pattern step, got %d", len(chain.Steps))
	}
	rel := chain.Steps[0].Rel
	if rel.Direction() != DirOut {
		t.Errorf("expected DirOut, got %v", rel.Direction())
	}
	if len(rel.Body.Types) != 1 || rel.Body.Types[0] != "KNOWS" {
		t.Errorf("unexpected relationship types: %+v", rel.Body.Types)
	}
}

func TestParseVariableLengthRange(t *testing.T) {
	cases := map[string]struct {
		hasMin, hasRange bool
	}{
		`MATCH (a)-[*]->(b) RETURN a`:      {false, false},
		`MATCH (a)-[*2]->(b) RETURN a`:     {true, false},
		`MATCH (a)-[*2..]->(b) RETURN a`:   {true, true},
		`MATCH (a)-[*2..5]->(b) RETURN a`:  {true, true},
		`MATCH (a)-[*..5]->(b) RETURN a`:   {false, true},
	}
	for src, want := range cases {
		q, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		rng := q.Clauses[0].Match.Patterns[0].Steps[0].Rel.Body.Range
		if rng == nil {
			t.Fatalf("Parse(%q): expected a range spec", src)
		}
		if (rng.Min != nil) != want.hasMin {
			t.Errorf("Parse(%q): Min presence = %v, want %v", src, rng.Min != nil, want.hasMin)
		}
		if (rng.Range != nil) != want.hasRange {
			t.Errorf("Parse(%q): Range presence = %v, want %v", src, rng.Range != nil, want.hasRange)
		}
	}
}

func TestParseWhereExpression(t *testing.T) {
	q, err := Parse(`MATCH (p:Person) WHERE p.age >= 18 AND NOT p.banned RETURN p`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w := q.Clauses[1].Where
	if w == nil {
		t.Fatal("expected a WHERE clause")
	}
}

func TestParseDetachDelete(t *testing.T) {
	q, err := Parse(`MATCH (p:Person) DETACH DELETE p`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	d := q.Clauses[1].Delete
	if d == nil || !d.Detach || len(d.Vars) != 1 || d.Vars[0] != "p" {
		t.Errorf("unexpected delete clause: %+v", d)
	}
}

func TestParseAggregateAndOrderByLimit(t *testing.T) {
	q, err := Parse(`MATCH (p:Person) RETURN p.city, COUNT(p) AS n ORDER BY n DESC LIMIT 10`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(q.Clauses) != 4 {
		t.Fatalf("expected 4 clauses, got %d", len(q.Clauses))
	}
	ret := q.Clauses[1].Return
	if len(ret.Projections) != 2 || ret.Projections[1].Alias != "n" {
		t.Errorf("unexpected projections: %+v", ret.Projections)
	}
	ob := q.Clauses[2].OrderBy
	if ob == nil || ob.Items[0].Dir != "DESC" {
		t.Errorf("unexpected order by: %+v", ob)
	}
	lim := q.Clauses[3].Limit
	if lim == nil || lim.N != 10 {
		t.Errorf("unexpected limit: %+v", lim)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse(`MATCH (p RETURN p`); err == nil {
		t.Fatal("expected a syntax error for an unclosed node pattern")
	}
}
