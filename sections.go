package main

// Markdown section lookup for the [ and ] motions. The note is parsed with
// tree-sitter and the rows where headings start are collected.

import (
	"context"
	"sort"
	"strings"

	sitter "github.com/mitjafelicijan/go-tree-sitter"
	markdown "github.com/mitjafelicijan/go-tree-sitter/markdown/tree-sitter-markdown"
)

const headingQuery = `
(atx_heading) @heading
(setext_heading) @heading
`

// HeadingRows returns the sorted rows at which markdown headings start.
func HeadingRows(lines []string) []int {
	lang := markdown.GetLanguage()
	q, err := sitter.NewQuery([]byte(headingQuery), lang)
	if err != nil {
		return scanHeadingRows(lines)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	content := []byte(strings.Join(lines, "\n") + "\n")
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil || tree == nil {
		return scanHeadingRows(lines)
	}

	seen := make(map[int]bool)
	qc := sitter.NewQueryCursor()
	qc.Exec(q, tree.RootNode())
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			row := int(c.Node.StartPoint().Row)
			if row < len(lines) {
				seen[row] = true
			}
		}
	}

	rows := make([]int, 0, len(seen))
	for r := range seen {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

// scanHeadingRows is the line-prefix fallback used when the grammar cannot be
// loaded.
func scanHeadingRows(lines []string) []int {
	var rows []int
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			rows = append(rows, i)
		}
	}
	return rows
}
