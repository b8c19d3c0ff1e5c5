package diag

import (
	"fmt"
)

// Code identifies one diagnostic kind. Lexical and syntactic codes cover
// input the tool could not read; style codes are the rules themselves and
// are the ones fix providers are registered for.
type Code uint16

const (
	// UnknownCode is the zero value.
	UnknownCode Code = 0

	// Lexical problems.

	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedChar         Code = 1003
	LexUnterminatedBlockComment Code = 1004
	LexBadNumber                Code = 1005

	// Parser problems.

	SynUnexpectedToken Code = 2001
	SynMissingToken    Code = 2002
	SynUnclosedBrace   Code = 2003
	SynUnclosedParen   Code = 2004

	// Style rules. IDs are stable and user-facing.

	StyStatementsOnLine    Code = 3001 // STY1001
	StyCombinedDeclarators Code = 3002 // STY1002
	StyTrailingWhitespace  Code = 3003 // STY1003

	// Host/driver problems.

	IOLoadFile   Code = 4001
	FixConflict  Code = 4002
	FixWriteFile Code = 4003
)

var codeIDs = map[Code]string{
	UnknownCode:                 "SFX0000",
	LexUnknownChar:              "SFX1001",
	LexUnterminatedString:       "SFX1002",
	LexUnterminatedChar:         "SFX1003",
	LexUnterminatedBlockComment: "SFX1004",
	LexBadNumber:                "SFX1005",
	SynUnexpectedToken:          "SFX2001",
	SynMissingToken:             "SFX2002",
	SynUnclosedBrace:            "SFX2003",
	SynUnclosedParen:            "SFX2004",
	StyStatementsOnLine:         "STY1001",
	StyCombinedDeclarators:      "STY1002",
	StyTrailingWhitespace:       "STY1003",
	IOLoadFile:                  "SFX4001",
	FixConflict:                 "SFX4002",
	FixWriteFile:                "SFX4003",
}

// ID returns the stable user-facing identifier for the code.
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return fmt.Sprintf("SFX%04d", uint16(c))
}

func (c Code) String() string { return c.ID() }

// IsStyleRule reports whether the code belongs to a style rule, i.e. a
// diagnostic a fix provider may exist for.
func (c Code) IsStyleRule() bool {
	return c >= StyStatementsOnLine && c < IOLoadFile
}

// RuleByID resolves a user-facing rule identifier like "STY1001" back to
// its code. Only style rules are resolvable.
func RuleByID(id string) (Code, bool) {
	for c, s := range codeIDs {
		if s == id && c.IsStyleRule() {
			return c, true
		}
	}
	return UnknownCode, false
}
