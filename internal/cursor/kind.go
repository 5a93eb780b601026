package cursor

// Kind classifies a cursor's syntactic role. Names follow libclang's
// CXCursorKind spelling so dumps line up with clang tooling output.
type Kind int

const (
	KindInvalid Kind = iota

	// Declarations.
	KindTranslationUnit
	KindFunctionDecl
	KindVarDecl
	KindParmDecl
	KindFieldDecl
	KindTypedefDecl
	KindStructDecl
	KindUnionDecl
	KindEnumDecl
	KindEnumConstantDecl
	KindTypeRef

	// Statements.
	KindCompoundStmt
	KindDeclStmt
	KindIfStmt
	KindForStmt
	KindWhileStmt
	KindDoStmt
	KindSwitchStmt
	KindCaseStmt
	KindDefaultStmt
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindGotoStmt
	KindLabelStmt
	KindNullStmt

	// Expressions.
	KindCallExpr
	KindDeclRefExpr
	KindMemberRefExpr
	KindUnaryOperator
	KindBinaryOperator
	KindCompoundAssignOperator
	KindConditionalOperator
	KindCStyleCastExpr
	KindParenExpr
	KindUnexposedExpr
	KindArraySubscriptExpr
	KindUnaryExpr
	KindInitListExpr
	KindCompoundLiteralExpr
	KindIntegerLiteral
	KindFloatingLiteral
	KindStringLiteral
	KindCharacterLiteral

	KindNotImplemented

	kindCount
)

var kindNames = [...]string{
	KindInvalid:                "INVALID",
	KindTranslationUnit:        "TRANSLATION_UNIT",
	KindFunctionDecl:           "FUNCTION_DECL",
	KindVarDecl:                "VAR_DECL",
	KindParmDecl:               "PARM_DECL",
	KindFieldDecl:              "FIELD_DECL",
	KindTypedefDecl:            "TYPEDEF_DECL",
	KindStructDecl:             "STRUCT_DECL",
	KindUnionDecl:              "UNION_DECL",
	KindEnumDecl:               "ENUM_DECL",
	KindEnumConstantDecl:       "ENUM_CONSTANT_DECL",
	KindTypeRef:                "TYPE_REF",
	KindCompoundStmt:           "COMPOUND_STMT",
	KindDeclStmt:               "DECL_STMT",
	KindIfStmt:                 "IF_STMT",
	KindForStmt:                "FOR_STMT",
	KindWhileStmt:              "WHILE_STMT",
	KindDoStmt:                 "DO_STMT",
	KindSwitchStmt:             "SWITCH_STMT",
	KindCaseStmt:               "CASE_STMT",
	KindDefaultStmt:            "DEFAULT_STMT",
	KindReturnStmt:             "RETURN_STMT",
	KindBreakStmt:              "BREAK_STMT",
	KindContinueStmt:           "CONTINUE_STMT",
	KindGotoStmt:               "GOTO_STMT",
	KindLabelStmt:              "LABEL_STMT",
	KindNullStmt:               "NULL_STMT",
	KindCallExpr:               "CALL_EXPR",
	KindDeclRefExpr:            "DECL_REF_EXPR",
	KindMemberRefExpr:          "MEMBER_REF_EXPR",
	KindUnaryOperator:          "UNARY_OPERATOR",
	KindBinaryOperator:         "BINARY_OPERATOR",
	KindCompoundAssignOperator: "COMPOUND_ASSIGNMENT_OPERATOR",
	KindConditionalOperator:    "CONDITIONAL_OPERATOR",
	KindCStyleCastExpr:         "CSTYLE_CAST_EXPR",
	KindParenExpr:              "PAREN_EXPR",
	KindUnexposedExpr:          "UNEXPOSED_EXPR",
	KindArraySubscriptExpr:     "ARRAY_SUBSCRIPT_EXPR",
	KindUnaryExpr:              "CXX_UNARY_EXPR",
	KindInitListExpr:           "INIT_LIST_EXPR",
	KindCompoundLiteralExpr:    "COMPOUND_LITERAL_EXPR",
	KindIntegerLiteral:         "INTEGER_LITERAL",
	KindFloatingLiteral:        "FLOATING_LITERAL",
	KindStringLiteral:          "STRING_LITERAL",
	KindCharacterLiteral:       "CHARACTER_LITERAL",
	KindNotImplemented:         "NOT_IMPLEMENTED",
}

// String returns the libclang-style name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// Kinds returns every defined kind, KindInvalid excluded.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind maps a libclang-style name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k := KindInvalid; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// StorageClass is the declared storage duration/linkage specifier.
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageExtern
	StorageStatic
	StorageAuto
	StorageRegister
)

func (s StorageClass) String() string {
	switch s {
	case StorageNone:
		return "NONE"
	case StorageExtern:
		return "EXTERN"
	case StorageStatic:
		return "STATIC"
	case StorageAuto:
		return "AUTO"
	case StorageRegister:
		return "REGISTER"
	default:
		return "INVALID"
	}
}
