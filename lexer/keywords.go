// Package lexer is the reference syntax.Lexer implementation: a
// hand-written scanner over syntax.Scanner. The core parser package never
// imports it — the parser only depends on the syntax.Lexer interface.
package lexer

import (
	"golang.org/x/text/cases"

	"github.com/tolerantparse/php/config"
	"github.com/tolerantparse/php/syntax"
)

// keywordFold case-folds keyword spellings before table lookup. PHP keywords
// are ASCII case-insensitive (ECHO, Echo, echo all match); cases.Fold is
// used rather than strings.ToLower because it is the ecosystem's dedicated
// caseless-matching transform, not just a display-casing one.
var keywordFold = cases.Fold()

// keywords maps a case-folded spelling to its TokenKind. Identifier
// scanning folds the matched text and probes this table before falling
// back to syntax.Name.
var keywords = map[string]syntax.TokenKind{
	"if":         syntax.If,
	"else":       syntax.Else,
	"elseif":     syntax.ElseIf,
	"endif":      syntax.EndIf,
	"while":      syntax.While,
	"endwhile":   syntax.EndWhile,
	"do":         syntax.Do,
	"for":        syntax.For,
	"endfor":     syntax.EndFor,
	"foreach":    syntax.Foreach,
	"endforeach": syntax.EndForeach,
	"switch":     syntax.Switch,
	"endswitch":  syntax.EndSwitch,
	"case":       syntax.Case,
	"default":    syntax.Default,
	"break":      syntax.Break,
	"continue":   syntax.Continue,
	"return":     syntax.Return,
	"goto":       syntax.Goto,
	"declare":    syntax.Declare,
	"enddeclare": syntax.EndDeclare,
	"try":        syntax.Try,
	"catch":      syntax.Catch,
	"finally":    syntax.Finally,
	"throw":      syntax.Throw,

	"function":   syntax.Function,
	"class":      syntax.Class,
	"interface":  syntax.Interface,
	"trait":      syntax.Trait,
	"extends":    syntax.Extends,
	"implements": syntax.Implements,
	"namespace":  syntax.Namespace,
	"use":        syntax.Use,
	"const":      syntax.Const,
	"global":     syntax.Global,
	"new":        syntax.New,
	"clone":      syntax.Clone,
	"insteadof":  syntax.InsteadOf,
	"as":         syntax.As,

	"public":    syntax.Public,
	"protected": syntax.Protected,
	"private":   syntax.Private,
	"static":    syntax.Static,
	"abstract":  syntax.Abstract,
	"final":     syntax.Final,
	"var":       syntax.Var,

	"echo":         syntax.Echo,
	"print":        syntax.Print,
	"list":         syntax.ListKw,
	"unset":        syntax.Unset,
	"empty":        syntax.Empty,
	"eval":         syntax.Eval,
	"exit":         syntax.Exit,
	"die":          syntax.Die,
	"isset":        syntax.Isset,
	"include":      syntax.Include,
	"include_once": syntax.IncludeOnce,
	"require":      syntax.Require,
	"require_once": syntax.RequireOnce,
	"instanceof":   syntax.InstanceOf,

	"and": syntax.LogicalAnd,
	"or":  syntax.LogicalOr,
	"xor": syntax.LogicalXor,

	"true":  syntax.True,
	"false": syntax.False,
	"null":  syntax.Null,

	"int":     syntax.IntType,
	"integer": syntax.IntegerType,
	"bool":    syntax.BoolType,
	"boolean": syntax.BooleanType,
	"float":   syntax.FloatType,
	"double":  syntax.DoubleType,
	"real":    syntax.RealType,
	"string":  syntax.StringType,
	"array":   syntax.ArrayType,
	"object":  syntax.ObjectType,
}

// lookupKeyword reports the TokenKind for a case-folded identifier spelling,
// or (0, false) if text names no keyword (caller falls back to syntax.Name).
// dialect's ExtraKeywords is consulted first, so a project-specific alias
// (e.g. "elif" for "elseif") takes effect without shadowing the core table.
func lookupKeyword(text string, dialect *config.Dialect) (syntax.TokenKind, bool) {
	folded := keywordFold.String(text)
	if dialect != nil {
		if canonical, ok := dialect.ExtraKeywords[folded]; ok {
			if k, ok := keywords[keywordFold.String(canonical)]; ok {
				return k, true
			}
		}
	}
	k, ok := keywords[folded]
	return k, ok
}
