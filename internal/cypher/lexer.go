// Package cypher implements the tokeniser, grammar, and parser for the
// query language's Cypher subset (spec §4.4): MATCH/WHERE/CREATE/WITH/
// DELETE/RETURN/ORDER BY/SKIP/LIMIT clauses built from node and
// relationship patterns, plus a precedence-climbing expression grammar.
//
// Parsing is grammar-driven via alecthomas/participle/v2, the same
// lexer-plus-tagged-struct approach this lineage uses for its own query
// language (see internal/dsl in the sibling probabilistic-graph tree),
// generalised here to a clause sequence instead of a flat statement.
package cypher

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var cypherLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Arrow", Pattern: `->|<-`},
	{Name: "Range", Pattern: `\.\.`},
	{Name: "Neq", Pattern: `<>`},
	{Name: "Le", Pattern: `<=`},
	{Name: "Ge", Pattern: `>=`},
	{Name: "RegexOp", Pattern: `=~`},
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"|'([^'\\]|\\.)*'`},
	{Name: "Keyword", Pattern: `(?i)\b(MATCH|WHERE|CREATE|WITH|DELETE|DETACH|RETURN|DISTINCT|AS|ORDER|BY|ASC|DESC|SKIP|LIMIT|AND|OR|NOT|CONTAINS|STARTS|ENDS|TRUE|FALSE|NULL|COUNT|SUM|AVG|MIN|MAX)\b`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[(){}\[\]:,.=<>+\-*/|]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var cypherParser = participle.MustBuild[Query](
	participle.Lexer(cypherLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
