package syntax

// NodeKind identifies the grammatical form of a tree node. The enumeration
// is closed: code that dispatches over node kinds switches exhaustively so
// that adding a kind is a compile-visible change.
type NodeKind uint8

const (
	// KindInvalid is the zero node kind.
	KindInvalid NodeKind = iota
	// KindCompilationUnit is the root of every parsed file.
	KindCompilationUnit
	// KindSkipped wraps tokens the parser could not place.
	KindSkipped

	KindUsingDirective
	KindQualifiedName
	KindNamespaceDeclaration
	KindTypeDeclaration
	KindBaseList
	KindFieldDeclaration
	KindEventFieldDeclaration
	KindVariableDeclarator
	KindEqualsValueClause
	KindMethodDeclaration
	KindParameterList
	KindParameter

	KindBlock
	KindLocalDeclarationStatement
	KindExpressionStatement
	KindIfStatement
	KindElseClause
	KindWhileStatement
	KindForeachStatement
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindSwitchStatement
	KindSwitchSection
	KindCaseLabel
	KindEmptyStatement

	KindIdentifierName
	KindPredefinedType
	KindGenericName
	KindTypeArgumentList
	KindMemberAccessExpression
	KindInvocationExpression
	KindArgumentList
	KindArgument
	KindObjectCreationExpression
	KindParenthesizedExpression
	KindBinaryExpression
	KindAssignmentExpression
	KindPrefixUnaryExpression
	KindPostfixUnaryExpression
	KindConditionalExpression
	KindLiteralExpression
	KindElementAccessExpression

	// KindLambdaExpression covers simple (x => e) and parenthesized
	// ((x, y) => e) lambda forms.
	KindLambdaExpression

	// Query comprehension forms.

	KindQueryExpression
	KindFromClause
	KindLetClause
	KindWhereClause
	KindJoinClause
	KindOrderByClause
	KindOrdering
	KindSelectClause
	KindGroupClause
	KindQueryContinuation

	nodeKindCount
)

var nodeKindNames = [...]string{
	KindInvalid:                   "Invalid",
	KindCompilationUnit:           "CompilationUnit",
	KindSkipped:                   "Skipped",
	KindUsingDirective:            "UsingDirective",
	KindQualifiedName:             "QualifiedName",
	KindNamespaceDeclaration:      "NamespaceDeclaration",
	KindTypeDeclaration:           "TypeDeclaration",
	KindBaseList:                  "BaseList",
	KindFieldDeclaration:          "FieldDeclaration",
	KindEventFieldDeclaration:     "EventFieldDeclaration",
	KindVariableDeclarator:        "VariableDeclarator",
	KindEqualsValueClause:         "EqualsValueClause",
	KindMethodDeclaration:         "MethodDeclaration",
	KindParameterList:             "ParameterList",
	KindParameter:                 "Parameter",
	KindBlock:                     "Block",
	KindLocalDeclarationStatement: "LocalDeclarationStatement",
	KindExpressionStatement:       "ExpressionStatement",
	KindIfStatement:               "IfStatement",
	KindElseClause:                "ElseClause",
	KindWhileStatement:            "WhileStatement",
	KindForeachStatement:          "ForeachStatement",
	KindReturnStatement:           "ReturnStatement",
	KindBreakStatement:            "BreakStatement",
	KindContinueStatement:         "ContinueStatement",
	KindSwitchStatement:           "SwitchStatement",
	KindSwitchSection:             "SwitchSection",
	KindCaseLabel:                 "CaseLabel",
	KindEmptyStatement:            "EmptyStatement",
	KindIdentifierName:            "IdentifierName",
	KindPredefinedType:            "PredefinedType",
	KindGenericName:               "GenericName",
	KindTypeArgumentList:          "TypeArgumentList",
	KindMemberAccessExpression:    "MemberAccessExpression",
	KindInvocationExpression:      "InvocationExpression",
	KindArgumentList:              "ArgumentList",
	KindArgument:                  "Argument",
	KindObjectCreationExpression:  "ObjectCreationExpression",
	KindParenthesizedExpression:   "ParenthesizedExpression",
	KindBinaryExpression:          "BinaryExpression",
	KindAssignmentExpression:      "AssignmentExpression",
	KindPrefixUnaryExpression:     "PrefixUnaryExpression",
	KindPostfixUnaryExpression:    "PostfixUnaryExpression",
	KindConditionalExpression:     "ConditionalExpression",
	KindLiteralExpression:         "LiteralExpression",
	KindElementAccessExpression:   "ElementAccessExpression",
	KindLambdaExpression:          "LambdaExpression",
	KindQueryExpression:           "QueryExpression",
	KindFromClause:                "FromClause",
	KindLetClause:                 "LetClause",
	KindWhereClause:               "WhereClause",
	KindJoinClause:                "JoinClause",
	KindOrderByClause:             "OrderByClause",
	KindOrdering:                  "Ordering",
	KindSelectClause:              "SelectClause",
	KindGroupClause:               "GroupClause",
	KindQueryContinuation:         "QueryContinuation",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// IsStatement reports whether the kind is a statement form that can appear
// directly inside a block.
func (k NodeKind) IsStatement() bool {
	switch k {
	case KindBlock, KindLocalDeclarationStatement, KindExpressionStatement,
		KindIfStatement, KindWhileStatement, KindForeachStatement,
		KindReturnStatement, KindBreakStatement, KindContinueStatement,
		KindSwitchStatement, KindEmptyStatement:
		return true
	default:
		return false
	}
}

// IsQueryClause reports whether the kind is a comprehension clause.
func (k NodeKind) IsQueryClause() bool {
	switch k {
	case KindFromClause, KindLetClause, KindWhereClause, KindJoinClause,
		KindOrderByClause, KindSelectClause, KindGroupClause:
		return true
	default:
		return false
	}
}

// IntroducesIndent reports whether the construct adds one indentation step
// to its body. Namespace and type bodies, blocks, switch statements (for
// their sections), and switch sections (for their statements) each count
// one step.
func (k NodeKind) IntroducesIndent() bool {
	switch k {
	case KindNamespaceDeclaration, KindTypeDeclaration, KindBlock,
		KindSwitchStatement, KindSwitchSection:
		return true
	default:
		return false
	}
}
