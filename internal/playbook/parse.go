// Package playbook loads the best-practice playbook and matches its tips
// against candidate ideas.
//
// A playbook is Markdown: "##" headings name categories, "###" headings name
// sections within a category, and top-level bullet items are tips.
package playbook

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section is a titled group of tips within a category.
type Section struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Tips     []string `json:"tips"`
}

var md = goldmark.New()

// Parse extracts sections from playbook Markdown. Sections without tips are
// dropped. Bullets that appear under a category heading before any section
// heading form a section titled after the category.
func Parse(src []byte) []Section {
	doc := md.Parser().Parse(text.NewReader(src))

	var (
		sections []Section
		category string
		current  *Section
	)
	flush := func() {
		if current != nil && len(current.Tips) > 0 {
			sections = append(sections, *current)
		}
		current = nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			switch node.Level {
			case 2:
				flush()
				category = headingText(node, src)
			case 3:
				flush()
				current = &Section{Title: headingText(node, src), Category: category}
			}
		case *ast.List:
			if node.IsOrdered() {
				continue
			}
			if current == nil {
				if category == "" {
					continue
				}
				current = &Section{Title: category, Category: category}
			}
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				if tip := itemText(item, src); tip != "" {
					current.Tips = append(current.Tips, tip)
				}
			}
		}
	}
	flush()

	return sections
}

func headingText(h *ast.Heading, src []byte) string {
	return strings.TrimSpace(linesText(h, src))
}

// itemText returns the raw Markdown of a list item's first block, so inline
// markup in a tip survives. Nested lists are not tips.
func itemText(item ast.Node, src []byte) string {
	first := item.FirstChild()
	if first == nil {
		return ""
	}
	return strings.TrimSpace(linesText(first, src))
}

func linesText(n ast.Node, src []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(src))))
	}
	return strings.Join(parts, " ")
}
