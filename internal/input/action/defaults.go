package action

import (
	"github.com/veldin/keyweave/internal/input/mode"
)

// Set bundles the per-mode command trees with the registry of every action
// they reference.
type Set struct {
	registry *StaticRegistry
	trees    map[mode.Kind]*Tree
}

// Registry returns the registry backing the set.
func (s *Set) Registry() *StaticRegistry { return s.registry }

// Tree returns the command tree for a mode kind. Visual and Select share a
// tree, as do Insert and Replace.
func (s *Set) Tree(k mode.Kind) *Tree {
	switch k {
	case mode.Visual, mode.Select:
		return s.trees[mode.Visual]
	case mode.Replace:
		return s.trees[mode.Insert]
	default:
		return s.trees[k]
	}
}

// Motion definitions shared by normal, visual, and operator-pending trees.
var (
	DefLeft         = Def{Name: "cursor.left", Motion: true}
	DefRight        = Def{Name: "cursor.right", Motion: true}
	DefUp           = Def{Name: "cursor.up", Motion: true, Wise: LineWise}
	DefDown         = Def{Name: "cursor.down", Motion: true, Wise: LineWise}
	DefWordForward  = Def{Name: "cursor.wordForward", Motion: true}
	DefWordBackward = Def{Name: "cursor.wordBackward", Motion: true}
	DefWordEnd      = Def{Name: "cursor.wordEnd", Motion: true, Inclusive: true}
	DefWORDForward  = Def{Name: "cursor.WORDForward", Motion: true}
	DefWORDBackward = Def{Name: "cursor.WORDBackward", Motion: true}
	DefWORDEnd      = Def{Name: "cursor.WORDEnd", Motion: true, Inclusive: true}
	DefLineStart    = Def{Name: "cursor.lineStart", Motion: true}
	DefLineEnd      = Def{Name: "cursor.lineEnd", Motion: true, Inclusive: true}
	DefFirstNonBlank = Def{Name: "cursor.firstNonBlank", Motion: true}
	DefFirstLine    = Def{Name: "cursor.firstLine", Motion: true, Wise: LineWise}
	DefLastLine     = Def{Name: "cursor.lastLine", Motion: true, Wise: LineWise}
	DefParagraphFwd = Def{Name: "cursor.paragraphForward", Motion: true}
	DefParagraphBwd = Def{Name: "cursor.paragraphBackward", Motion: true}
	DefMatchPair    = Def{Name: "cursor.matchPair", Motion: true, Inclusive: true}

	DefFindForward  = Def{Name: "cursor.findForward", Arg: ArgCharacter, Motion: true, Inclusive: true}
	DefFindBackward = Def{Name: "cursor.findBackward", Arg: ArgCharacter, Motion: true}
	DefTillForward  = Def{Name: "cursor.tillForward", Arg: ArgCharacter, Motion: true, Inclusive: true}
	DefTillBackward = Def{Name: "cursor.tillBackward", Arg: ArgCharacter, Motion: true}

	DefMarkSet  = Def{Name: "mark.set", Arg: ArgCharacter, Mutating: false}
	DefMarkGoto = Def{Name: "mark.goto", Arg: ArgCharacter, Motion: true}
	DefMarkGotoLine = Def{Name: "mark.gotoLine", Arg: ArgCharacter, Motion: true, Wise: LineWise}
)

// Operator definitions.
var (
	DefDelete = Def{
		Name: "edit.delete", Arg: ArgMotion, Mutating: true,
		LinewiseName: "edit.deleteLine", OperatorKey: 'd',
	}
	DefChange = Def{
		Name: "edit.change", Arg: ArgMotion, Mutating: true,
		LinewiseName: "edit.changeLine", OperatorKey: 'c', EntersInsert: true,
	}
	DefYank = Def{
		Name: "edit.yank", Arg: ArgMotion,
		LinewiseName: "edit.yankLine", OperatorKey: 'y',
	}
	DefIndentRight = Def{
		Name: "edit.indentRight", Arg: ArgMotion, Mutating: true,
		LinewiseName: "edit.indentLineRight", OperatorKey: '>',
	}
	DefIndentLeft = Def{
		Name: "edit.indentLeft", Arg: ArgMotion, Mutating: true,
		LinewiseName: "edit.indentLineLeft", OperatorKey: '<',
	}
	DefLowercase = Def{
		Name: "edit.lowercase", Arg: ArgMotion, Mutating: true,
		LinewiseName: "edit.lowercaseLine", OperatorKey: 'u',
	}
	DefUppercase = Def{
		Name: "edit.uppercase", Arg: ArgMotion, Mutating: true,
		LinewiseName: "edit.uppercaseLine", OperatorKey: 'U',
	}
	DefToggleCase = Def{
		Name: "edit.toggleCase", Arg: ArgMotion, Mutating: true,
		LinewiseName: "edit.toggleCaseLine", OperatorKey: '~',
	}

	// Linewise variants, reached through the doubled operator key.
	DefDeleteLine     = Def{Name: "edit.deleteLine", Mutating: true, Wise: LineWise}
	DefChangeLine     = Def{Name: "edit.changeLine", Mutating: true, Wise: LineWise, EntersInsert: true}
	DefYankLine       = Def{Name: "edit.yankLine", Wise: LineWise}
	DefIndentLineRight = Def{Name: "edit.indentLineRight", Mutating: true, Wise: LineWise}
	DefIndentLineLeft = Def{Name: "edit.indentLineLeft", Mutating: true, Wise: LineWise}
	DefLowercaseLine  = Def{Name: "edit.lowercaseLine", Mutating: true, Wise: LineWise}
	DefUppercaseLine  = Def{Name: "edit.uppercaseLine", Mutating: true, Wise: LineWise}
	DefToggleCaseLine = Def{Name: "edit.toggleCaseLine", Mutating: true, Wise: LineWise}
)

// Immediate normal-mode edits and mode changes.
var (
	DefDeleteChar       = Def{Name: "edit.deleteChar", Mutating: true}
	DefDeleteCharBefore = Def{Name: "edit.deleteCharBefore", Mutating: true}
	DefDeleteToEnd      = Def{Name: "edit.deleteToEnd", Mutating: true}
	DefChangeToEnd      = Def{Name: "edit.changeToEnd", Mutating: true, EntersInsert: true}
	DefReplaceChar      = Def{Name: "edit.replaceChar", Arg: ArgCharacter, Mutating: true}
	DefPasteAfter       = Def{Name: "edit.pasteAfter", Mutating: true}
	DefPasteBefore      = Def{Name: "edit.pasteBefore", Mutating: true}
	DefJoinLines        = Def{Name: "edit.joinLines", Mutating: true}
	DefUndo             = Def{Name: "edit.undo", Mutating: true}
	DefRedo             = Def{Name: "edit.redo", Mutating: true}
	DefRepeat           = Def{Name: "edit.repeat", Mutating: true}
	DefInsertText       = Def{Name: "edit.insertText", Mutating: true}
	DefOverstrikeText   = Def{Name: "edit.overstrikeText", Mutating: true}
	DefInsertDigraph    = Def{Name: "edit.insertDigraph", Arg: ArgDigraph, Mutating: true}
	DefInsertLiteral    = Def{Name: "edit.insertLiteral", Arg: ArgDigraph, Mutating: true}

	DefModeInsert      = Def{Name: "mode.insert"}
	DefModeInsertAfter = Def{Name: "mode.insertAfter"}
	DefModeInsertBOL   = Def{Name: "mode.insertLineStart"}
	DefModeInsertEOL   = Def{Name: "mode.insertLineEnd"}
	DefModeOpenBelow   = Def{Name: "mode.openBelow", Mutating: true}
	DefModeOpenAbove   = Def{Name: "mode.openAbove", Mutating: true}
	DefModeReplace     = Def{Name: "mode.replace"}
	DefModeVisual      = Def{Name: "mode.visual"}
	DefModeVisualLine  = Def{Name: "mode.visualLine"}
	DefModeVisualBlock = Def{Name: "mode.visualBlock"}
	DefModeSelect      = Def{Name: "mode.select"}
	DefModeNormal      = Def{Name: "mode.normal"}
	DefModeCommandLine = Def{Name: "mode.commandLine", Arg: ArgExString, ExpectsInput: true}
	DefOneShotNormal   = Def{Name: "mode.oneShotNormal", ExpectsInput: true}

	DefExExecute = Def{Name: "ex.execute", Arg: ArgExString}

	DefMacroRecord = Def{Name: "macro.record", Arg: ArgCharacter}
	DefMacroPlay   = Def{Name: "macro.play", Arg: ArgCharacter}

	DefScrollDown     = Def{Name: "view.scrollDown"}
	DefScrollUp       = Def{Name: "view.scrollUp"}
	DefScrollPageDown = Def{Name: "view.scrollPageDown"}
	DefScrollPageUp   = Def{Name: "view.scrollPageUp"}
)

// Text objects, valid after an operator or in visual mode.
var (
	DefInnerWord      = Def{Name: "object.innerWord", Motion: true}
	DefAroundWord     = Def{Name: "object.aroundWord", Motion: true}
	DefInnerWORD      = Def{Name: "object.innerWORD", Motion: true}
	DefAroundWORD     = Def{Name: "object.aroundWORD", Motion: true}
	DefInnerParagraph = Def{Name: "object.innerParagraph", Motion: true, Wise: LineWise}
	DefAroundParagraph = Def{Name: "object.aroundParagraph", Motion: true, Wise: LineWise}
	DefInnerQuote     = Def{Name: "object.innerQuote", Motion: true}
	DefAroundQuote    = Def{Name: "object.aroundQuote", Motion: true}
	DefInnerParen     = Def{Name: "object.innerParen", Motion: true}
	DefAroundParen    = Def{Name: "object.aroundParen", Motion: true}
	DefInnerBrace     = Def{Name: "object.innerBrace", Motion: true}
	DefAroundBrace    = Def{Name: "object.aroundBrace", Motion: true}
	DefInnerBracket   = Def{Name: "object.innerBracket", Motion: true}
	DefAroundBracket  = Def{Name: "object.aroundBracket", Motion: true}
)

// allDefs lists every definition the default trees reference.
var allDefs = []*Def{
	&DefLeft, &DefRight, &DefUp, &DefDown,
	&DefWordForward, &DefWordBackward, &DefWordEnd,
	&DefWORDForward, &DefWORDBackward, &DefWORDEnd,
	&DefLineStart, &DefLineEnd, &DefFirstNonBlank,
	&DefFirstLine, &DefLastLine, &DefParagraphFwd, &DefParagraphBwd,
	&DefMatchPair,
	&DefFindForward, &DefFindBackward, &DefTillForward, &DefTillBackward,
	&DefMarkSet, &DefMarkGoto, &DefMarkGotoLine,

	&DefDelete, &DefChange, &DefYank, &DefIndentRight, &DefIndentLeft,
	&DefLowercase, &DefUppercase, &DefToggleCase,
	&DefDeleteLine, &DefChangeLine, &DefYankLine,
	&DefIndentLineRight, &DefIndentLineLeft,
	&DefLowercaseLine, &DefUppercaseLine, &DefToggleCaseLine,

	&DefDeleteChar, &DefDeleteCharBefore, &DefDeleteToEnd, &DefChangeToEnd,
	&DefReplaceChar, &DefPasteAfter, &DefPasteBefore, &DefJoinLines,
	&DefUndo, &DefRedo, &DefRepeat,
	&DefInsertText, &DefOverstrikeText, &DefInsertDigraph, &DefInsertLiteral,

	&DefModeInsert, &DefModeInsertAfter, &DefModeInsertBOL, &DefModeInsertEOL,
	&DefModeOpenBelow, &DefModeOpenAbove, &DefModeReplace,
	&DefModeVisual, &DefModeVisualLine, &DefModeVisualBlock,
	&DefModeSelect, &DefModeNormal, &DefModeCommandLine, &DefOneShotNormal,
	&DefExExecute,
	&DefMacroRecord, &DefMacroPlay,
	&DefScrollDown, &DefScrollUp, &DefScrollPageDown, &DefScrollPageUp,

	&DefInnerWord, &DefAroundWord, &DefInnerWORD, &DefAroundWORD,
	&DefInnerParagraph, &DefAroundParagraph,
	&DefInnerQuote, &DefAroundQuote,
	&DefInnerParen, &DefAroundParen,
	&DefInnerBrace, &DefAroundBrace,
	&DefInnerBracket, &DefAroundBracket,
}

// bindMotions installs the shared motion set into a tree.
func bindMotions(t *Tree) {
	t.BindSpec("h", &DefLeft)
	t.BindSpec("l", &DefRight)
	t.BindSpec("k", &DefUp)
	t.BindSpec("j", &DefDown)
	t.BindSpec("<Left>", &DefLeft)
	t.BindSpec("<Right>", &DefRight)
	t.BindSpec("<Up>", &DefUp)
	t.BindSpec("<Down>", &DefDown)
	t.BindSpec("w", &DefWordForward)
	t.BindSpec("b", &DefWordBackward)
	t.BindSpec("e", &DefWordEnd)
	t.BindSpec("W", &DefWORDForward)
	t.BindSpec("B", &DefWORDBackward)
	t.BindSpec("E", &DefWORDEnd)
	t.BindSpec("0", &DefLineStart)
	t.BindSpec("$", &DefLineEnd)
	t.BindSpec("^", &DefFirstNonBlank)
	t.BindSpec("gg", &DefFirstLine)
	t.BindSpec("G", &DefLastLine)
	t.BindSpec("}", &DefParagraphFwd)
	t.BindSpec("{", &DefParagraphBwd)
	t.BindSpec("%", &DefMatchPair)
	t.BindSpec("f", &DefFindForward)
	t.BindSpec("F", &DefFindBackward)
	t.BindSpec("t", &DefTillForward)
	t.BindSpec("T", &DefTillBackward)
	t.BindSpec("`", &DefMarkGoto)
	t.BindSpec("'", &DefMarkGotoLine)
}

// bindTextObjects installs text objects into a tree.
func bindTextObjects(t *Tree) {
	t.BindSpec("iw", &DefInnerWord)
	t.BindSpec("aw", &DefAroundWord)
	t.BindSpec("iW", &DefInnerWORD)
	t.BindSpec("aW", &DefAroundWORD)
	t.BindSpec("ip", &DefInnerParagraph)
	t.BindSpec("ap", &DefAroundParagraph)
	t.BindSpec("i\"", &DefInnerQuote)
	t.BindSpec("a\"", &DefAroundQuote)
	t.BindSpec("i'", &DefInnerQuote)
	t.BindSpec("a'", &DefAroundQuote)
	t.BindSpec("i(", &DefInnerParen)
	t.BindSpec("a(", &DefAroundParen)
	t.BindSpec("i)", &DefInnerParen)
	t.BindSpec("a)", &DefAroundParen)
	t.BindSpec("i{", &DefInnerBrace)
	t.BindSpec("a{", &DefAroundBrace)
	t.BindSpec("i}", &DefInnerBrace)
	t.BindSpec("a}", &DefAroundBrace)
	t.BindSpec("i[", &DefInnerBracket)
	t.BindSpec("a[", &DefAroundBracket)
	t.BindSpec("i]", &DefInnerBracket)
	t.BindSpec("a]", &DefAroundBracket)
}

// bindOperators installs the operator set into a tree.
func bindOperators(t *Tree) {
	t.BindSpec("d", &DefDelete)
	t.BindSpec("c", &DefChange)
	t.BindSpec("y", &DefYank)
	t.BindSpec(">", &DefIndentRight)
	t.BindSpec("<lt>", &DefIndentLeft)
	t.BindSpec("gu", &DefLowercase)
	t.BindSpec("gU", &DefUppercase)
	t.BindSpec("g~", &DefToggleCase)
}

// Defaults builds the standard command trees and their registry.
func Defaults() *Set {
	s := &Set{
		registry: NewStaticRegistry(),
		trees:    make(map[mode.Kind]*Tree),
	}
	for _, def := range allDefs {
		_ = s.registry.Register(def)
	}

	normal := NewTree()
	bindMotions(normal)
	bindOperators(normal)
	normal.BindSpec("x", &DefDeleteChar)
	normal.BindSpec("X", &DefDeleteCharBefore)
	normal.BindSpec("D", &DefDeleteToEnd)
	normal.BindSpec("C", &DefChangeToEnd)
	normal.BindSpec("r", &DefReplaceChar)
	normal.BindSpec("p", &DefPasteAfter)
	normal.BindSpec("P", &DefPasteBefore)
	normal.BindSpec("J", &DefJoinLines)
	normal.BindSpec("u", &DefUndo)
	normal.BindSpec("<C-r>", &DefRedo)
	normal.BindSpec(".", &DefRepeat)
	normal.BindSpec("m", &DefMarkSet)
	normal.BindSpec("i", &DefModeInsert)
	normal.BindSpec("a", &DefModeInsertAfter)
	normal.BindSpec("I", &DefModeInsertBOL)
	normal.BindSpec("A", &DefModeInsertEOL)
	normal.BindSpec("o", &DefModeOpenBelow)
	normal.BindSpec("O", &DefModeOpenAbove)
	normal.BindSpec("R", &DefModeReplace)
	normal.BindSpec("v", &DefModeVisual)
	normal.BindSpec("V", &DefModeVisualLine)
	normal.BindSpec("<C-v>", &DefModeVisualBlock)
	normal.BindSpec("gh", &DefModeSelect)
	normal.BindSpec(":", &DefModeCommandLine)
	normal.BindSpec("q", &DefMacroRecord)
	normal.BindSpec("@", &DefMacroPlay)
	normal.BindSpec("<C-e>", &DefScrollDown)
	normal.BindSpec("<C-y>", &DefScrollUp)
	normal.BindSpec("<C-f>", &DefScrollPageDown)
	normal.BindSpec("<C-b>", &DefScrollPageUp)
	s.trees[mode.Normal] = normal

	visual := NewTree()
	bindMotions(visual)
	bindTextObjects(visual)
	visual.BindSpec("d", &DefDelete)
	visual.BindSpec("c", &DefChange)
	visual.BindSpec("y", &DefYank)
	visual.BindSpec(">", &DefIndentRight)
	visual.BindSpec("<lt>", &DefIndentLeft)
	visual.BindSpec("u", &DefLowercase)
	visual.BindSpec("U", &DefUppercase)
	visual.BindSpec("~", &DefToggleCase)
	visual.BindSpec("x", &DefDeleteChar)
	visual.BindSpec("r", &DefReplaceChar)
	visual.BindSpec("p", &DefPasteAfter)
	visual.BindSpec("v", &DefModeVisual)
	visual.BindSpec("V", &DefModeVisualLine)
	visual.BindSpec(":", &DefModeCommandLine)
	s.trees[mode.Visual] = visual

	opPending := NewTree()
	bindMotions(opPending)
	bindTextObjects(opPending)
	s.trees[mode.OperatorPending] = opPending

	insert := NewTree()
	insert.BindSpec("<C-k>", &DefInsertDigraph)
	insert.BindSpec("<C-v>", &DefInsertLiteral)
	insert.BindSpec("<C-q>", &DefInsertLiteral)
	insert.BindSpec("<C-o>", &DefOneShotNormal)
	s.trees[mode.Insert] = insert

	cmdline := NewTree()
	cmdline.BindSpec("<C-k>", &DefInsertDigraph)
	s.trees[mode.CommandLine] = cmdline

	return s
}
