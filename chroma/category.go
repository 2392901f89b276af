package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/revi-dev/revi"
)

// CategoryFor maps a chroma token type to a revi span category.
// Returns an empty string for tokens that carry no highlighting
// (plain text, whitespace, generic names).
func CategoryFor(tt chromalib.TokenType) string {
	switch tt {
	// Keywords that name types or constants
	case chromalib.KeywordType:
		return revi.CategoryTypeBuiltin
	case chromalib.KeywordConstant:
		return revi.CategoryConstantBuiltin

	// Names
	case chromalib.NameClass, chromalib.NameException:
		return revi.CategoryType
	case chromalib.NameFunction, chromalib.NameFunctionMagic:
		return revi.CategoryFunction
	case chromalib.NameBuiltin:
		return revi.CategoryFunctionBuiltin
	case chromalib.NameBuiltinPseudo, chromalib.NameVariableMagic:
		return revi.CategoryVariableBuiltin
	case chromalib.NameDecorator:
		return revi.CategoryFunctionMacro
	case chromalib.NameConstant, chromalib.NameEntity:
		return revi.CategoryConstant
	case chromalib.NameNamespace:
		return revi.CategoryNamespace
	case chromalib.NameTag:
		return revi.CategoryTag
	case chromalib.NameAttribute:
		return revi.CategoryAttribute
	case chromalib.NameLabel:
		return revi.CategoryLabel
	case chromalib.NameProperty:
		return revi.CategoryProperty
	case chromalib.NameVariable, chromalib.NameVariableClass, chromalib.NameVariableGlobal,
		chromalib.NameVariableInstance, chromalib.NameVariableAnonymous:
		return revi.CategoryVariable

	// Strings with special meaning
	case chromalib.StringEscape:
		return revi.CategoryEscape
	case chromalib.StringRegex, chromalib.StringSymbol, chromalib.StringInterpol:
		return revi.CategoryStringSpecial

	// Operators
	case chromalib.Operator, chromalib.OperatorWord:
		return revi.CategoryOperator

	// Punctuation
	case chromalib.Punctuation:
		return revi.CategoryPunctuation
	}

	switch {
	case tt.InCategory(chromalib.Keyword):
		return revi.CategoryKeyword
	case tt.InCategory(chromalib.Comment):
		return revi.CategoryComment
	case tt.InSubCategory(chromalib.String):
		return revi.CategoryString
	case tt.InSubCategory(chromalib.Number):
		return revi.CategoryNumber
	default:
		return ""
	}
}
