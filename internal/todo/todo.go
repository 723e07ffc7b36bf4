// Package todo carries unfinished to-do items over from the previous page.
package todo

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// SectionTitle is the level-2 heading that holds the to-do list.
const SectionTitle = "TODOs"

var parser = goldmark.New(goldmark.WithExtensions(extension.TaskList))

// FindOpen returns the raw markdown of every unchecked top-level task in
// the TODOs section, in document order. Nested content of an open task is
// kept with it; anything nested under a checked task is dropped.
func FindOpen(markdown string) []string {
	source := []byte(markdown)
	document := parser.Parser().Parse(text.NewReader(source))

	var todos []string
	inSection := false
	for node := document.FirstChild(); node != nil; node = node.NextSibling() {
		if heading, ok := node.(*ast.Heading); ok {
			if inSection {
				break
			}
			inSection = heading.Level == 2 && headingText(heading, source) == SectionTitle
			continue
		}
		if !inSection {
			continue
		}
		list, ok := node.(*ast.List)
		if !ok {
			continue
		}
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			if isOpenTask(item) {
				todos = append(todos, rawItem(item, source))
			}
		}
	}
	return todos
}

func headingText(heading *ast.Heading, source []byte) string {
	return strings.TrimSpace(string(heading.Lines().Value(source)))
}

func isOpenTask(item ast.Node) bool {
	block := item.FirstChild()
	if block == nil {
		return false
	}
	checkbox, ok := block.FirstChild().(*extast.TaskCheckBox)
	return ok && !checkbox.IsChecked
}

// rawItem slices the item's source from the start of its marker line to the
// end of its last line, newline included.
func rawItem(item ast.Node, source []byte) string {
	start, stop, ok := span(item)
	if !ok {
		return ""
	}
	start = bytes.LastIndexByte(source[:start], '\n') + 1
	if nl := bytes.IndexByte(source[stop:], '\n'); nl >= 0 {
		stop += nl + 1
	} else {
		stop = len(source)
	}
	return string(source[start:stop])
}

func span(node ast.Node) (start, stop int, ok bool) {
	if node.Type() == ast.TypeBlock {
		if lines := node.Lines(); lines.Len() > 0 {
			start, stop, ok = lines.At(0).Start, lines.At(lines.Len()-1).Stop, true
		}
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}
		s, e, found := span(child)
		if !found {
			continue
		}
		if !ok || s < start {
			start = s
		}
		if !ok || e > stop {
			stop = e
		}
		ok = true
	}
	return start, stop, ok
}
