// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"sort"
	"strings"
)

// DefaultSuggestLimit caps Suggest results when no limit is given.
const DefaultSuggestLimit = 10

// titleTrie is a case-insensitive prefix tree over catalog titles. Each node
// keeps the rows whose title ends there. It is filled once by New and only
// read afterwards, so it carries no lock.
type titleTrie struct {
	root *trieNode
}

type trieNode struct {
	children map[rune]*trieNode
	rows     []int
}

func newTitleTrie() *titleTrie {
	return &titleTrie{root: newTrieNode()}
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (t *titleTrie) insert(title string, row int) {
	node := t.root
	for _, r := range normalizeTitle(title) {
		child, ok := node.children[r]
		if !ok {
			child = newTrieNode()
			node.children[r] = child
		}
		node = child
	}
	node.rows = append(node.rows, row)
}

// withPrefix returns the lowest limit rows under prefix, ascending.
// An empty prefix matches nothing.
func (t *titleTrie) withPrefix(prefix string, limit int) []int {
	key := normalizeTitle(prefix)
	if key == "" {
		return nil
	}

	node := t.root
	for _, r := range key {
		child, ok := node.children[r]
		if !ok {
			return nil
		}
		node = child
	}

	var rows []int
	collectRows(node, &rows)
	sort.Ints(rows)
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func collectRows(node *trieNode, rows *[]int) {
	*rows = append(*rows, node.rows...)
	for _, child := range node.children {
		collectRows(child, rows)
	}
}
