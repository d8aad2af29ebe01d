package cypher

import (
	"strings"

	"github.com/alecthomas/participle/v2"
)

// Parse tokenises and parses input into a Query AST. A syntactically
// empty or blank input is rejected with ParseError rather than handed to
// participle, which would otherwise report a confusing "unexpected EOF".
func Parse(input string) (*Query, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ParseError{Offset: 0, Message: "empty query"}
	}

	query, err := cypherParser.ParseString("", input)
	if err != nil {
		return nil, toParseError(err)
	}
	return query, nil
}

func toParseError(err error) error {
	if perr, ok := err.(participle.Error); ok {
		pos := perr.Position()
		return ParseError{Offset: pos.Offset, Message: perr.Message()}
	}
	return ParseError{Offset: -1, Message: err.Error()}
}
