package syntax

// TokenKind represents the category of a source token.
type TokenKind uint8

const (
	// TokInvalid indicates an erroneous token.
	TokInvalid TokenKind = iota
	// TokEOF marks the end of the source input.
	TokEOF

	// TokIdent represents an identifier token.
	TokIdent
	// TokIntLit represents an integer literal.
	TokIntLit
	// TokFloatLit represents a floating point literal.
	TokFloatLit
	// TokStringLit represents a string literal.
	TokStringLit
	// TokCharLit represents a character literal.
	TokCharLit

	// Declaration and statement keywords.

	KwUsing     // using
	KwNamespace // namespace
	KwClass     // class
	KwStruct    // struct
	KwInterface // interface
	KwEnum      // enum
	KwEvent     // event
	KwDelegate  // delegate
	KwNew       // new
	KwReturn    // return
	KwIf        // if
	KwElse      // else
	KwWhile     // while
	KwFor       // for
	KwForeach   // foreach
	KwIn        // in
	KwSwitch    // switch
	KwCase      // case
	KwDefault   // default
	KwBreak     // break
	KwContinue  // continue
	KwVar       // var
	KwTrue      // true
	KwFalse     // false
	KwNull      // null
	KwThis      // this

	// Modifier keywords.

	KwPublic    // public
	KwPrivate   // private
	KwProtected // protected
	KwInternal  // internal
	KwStatic    // static
	KwReadonly  // readonly
	KwConst     // const
	KwAbstract  // abstract
	KwSealed    // sealed
	KwOverride  // override
	KwVirtual   // virtual

	// Predefined type keywords.

	KwVoid    // void
	KwInt     // int
	KwUint    // uint
	KwLong    // long
	KwUlong   // ulong
	KwShort   // short
	KwByte    // byte
	KwBool    // bool
	KwDouble  // double
	KwFloat   // float
	KwDecimal // decimal
	KwChar    // char
	KwString  // string
	KwObject  // object

	// Query comprehension keywords.

	KwFrom       // from
	KwWhere      // where
	KwSelect     // select
	KwOrderBy    // orderby
	KwLet        // let
	KwJoin       // join
	KwOn         // on
	KwEquals     // equals
	KwGroup      // group
	KwBy         // by
	KwInto       // into
	KwAscending  // ascending
	KwDescending // descending

	// Punctuation and operators.

	TokLBrace           // {
	TokRBrace           // }
	TokLParen           // (
	TokRParen           // )
	TokLBracket         // [
	TokRBracket         // ]
	TokSemicolon        // ;
	TokComma            // ,
	TokDot              // .
	TokColon            // :
	TokQuestion         // ?
	TokQuestionQuestion // ??
	TokFatArrow         // =>
	TokAssign           // =
	TokPlusAssign       // +=
	TokMinusAssign      // -=
	TokStarAssign       // *=
	TokSlashAssign      // /=
	TokPercentAssign    // %=
	TokEqEq             // ==
	TokBangEq           // !=
	TokLt               // <
	TokGt               // >
	TokLtEq             // <=
	TokGtEq             // >=
	TokAndAnd           // &&
	TokOrOr             // ||
	TokPlus             // +
	TokMinus            // -
	TokStar             // *
	TokSlash            // /
	TokPercent          // %
	TokBang             // !
	TokAmp              // &
	TokPipe             // |
	TokCaret            // ^
	TokTilde            // ~
	TokShl              // <<
	TokShr              // >>
	TokPlusPlus         // ++
	TokMinusMinus       // --

	tokenKindCount
)

var tokenKindNames = [...]string{
	TokInvalid:          "Invalid",
	TokEOF:              "EOF",
	TokIdent:            "Ident",
	TokIntLit:           "IntLit",
	TokFloatLit:         "FloatLit",
	TokStringLit:        "StringLit",
	TokCharLit:          "CharLit",
	KwUsing:             "using",
	KwNamespace:         "namespace",
	KwClass:             "class",
	KwStruct:            "struct",
	KwInterface:         "interface",
	KwEnum:              "enum",
	KwEvent:             "event",
	KwDelegate:          "delegate",
	KwNew:               "new",
	KwReturn:            "return",
	KwIf:                "if",
	KwElse:              "else",
	KwWhile:             "while",
	KwFor:               "for",
	KwForeach:           "foreach",
	KwIn:                "in",
	KwSwitch:            "switch",
	KwCase:              "case",
	KwDefault:           "default",
	KwBreak:             "break",
	KwContinue:          "continue",
	KwVar:               "var",
	KwTrue:              "true",
	KwFalse:             "false",
	KwNull:              "null",
	KwThis:              "this",
	KwPublic:            "public",
	KwPrivate:           "private",
	KwProtected:         "protected",
	KwInternal:          "internal",
	KwStatic:            "static",
	KwReadonly:          "readonly",
	KwConst:             "const",
	KwAbstract:          "abstract",
	KwSealed:            "sealed",
	KwOverride:          "override",
	KwVirtual:           "virtual",
	KwVoid:              "void",
	KwInt:               "int",
	KwUint:              "uint",
	KwLong:              "long",
	KwUlong:             "ulong",
	KwShort:             "short",
	KwByte:              "byte",
	KwBool:              "bool",
	KwDouble:            "double",
	KwFloat:             "float",
	KwDecimal:           "decimal",
	KwChar:              "char",
	KwString:            "string",
	KwObject:            "object",
	KwFrom:              "from",
	KwWhere:             "where",
	KwSelect:            "select",
	KwOrderBy:           "orderby",
	KwLet:               "let",
	KwJoin:              "join",
	KwOn:                "on",
	KwEquals:            "equals",
	KwGroup:             "group",
	KwBy:                "by",
	KwInto:              "into",
	KwAscending:         "ascending",
	KwDescending:        "descending",
	TokLBrace:           "{",
	TokRBrace:           "}",
	TokLParen:           "(",
	TokRParen:           ")",
	TokLBracket:         "[",
	TokRBracket:         "]",
	TokSemicolon:        ";",
	TokComma:            ",",
	TokDot:              ".",
	TokColon:            ":",
	TokQuestion:         "?",
	TokQuestionQuestion: "??",
	TokFatArrow:         "=>",
	TokAssign:           "=",
	TokPlusAssign:       "+=",
	TokMinusAssign:      "-=",
	TokStarAssign:       "*=",
	TokSlashAssign:      "/=",
	TokPercentAssign:    "%=",
	TokEqEq:             "==",
	TokBangEq:           "!=",
	TokLt:               "<",
	TokGt:               ">",
	TokLtEq:             "<=",
	TokGtEq:             ">=",
	TokAndAnd:           "&&",
	TokOrOr:             "||",
	TokPlus:             "+",
	TokMinus:            "-",
	TokStar:             "*",
	TokSlash:            "/",
	TokPercent:          "%",
	TokBang:             "!",
	TokAmp:              "&",
	TokPipe:             "|",
	TokCaret:            "^",
	TokTilde:            "~",
	TokShl:              "<<",
	TokShr:              ">>",
	TokPlusPlus:         "++",
	TokMinusMinus:       "--",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) && tokenKindNames[k] != "" {
		return tokenKindNames[k]
	}
	return "TokenKind(?)"
}

// IsKeyword reports whether the token kind is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return k >= KwUsing && k <= KwDescending
}

// IsModifier reports whether the kind is a declaration modifier keyword.
func (k TokenKind) IsModifier() bool {
	return k >= KwPublic && k <= KwVirtual
}

// IsPredefinedType reports whether the kind names a built-in type.
func (k TokenKind) IsPredefinedType() bool {
	return k >= KwVoid && k <= KwObject
}

// IsQueryKeyword reports whether the kind introduces or continues a
// comprehension clause.
func (k TokenKind) IsQueryKeyword() bool {
	return k >= KwFrom && k <= KwDescending
}

// IsLiteral reports whether the token is a literal value.
func (k TokenKind) IsLiteral() bool {
	switch k {
	case TokIntLit, TokFloatLit, TokStringLit, TokCharLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

var keywords = func() map[string]TokenKind {
	m := make(map[string]TokenKind, int(TokLBrace-KwUsing))
	for k := KwUsing; k < TokLBrace; k++ {
		m[tokenKindNames[k]] = k
	}
	return m
}()

// KeywordKind returns the keyword kind for text, or TokIdent when the text
// is not reserved.
func KeywordKind(text string) TokenKind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return TokIdent
}
