// Package index is the core of wordtrie: a character-keyed prefix tree holding a set of words
// and answering "every word that starts with X" queries.
//
// Nodes live in a single arena and refer to their children by integer handle. Each node keeps
// its outgoing edges in a small slice sorted by rune, so lookups are a binary search and a
// depth-first walk that visits edges in that order yields words in lexicographic (code point) order.
//
// An index is built by a single writer and may then be read by any number of goroutines.
// Insert must not run concurrently with reads or with another Insert; callers that need both
// provide their own locking (see the suggest package).
package index

import (
	"slices"
	"unicode/utf8"
)

// root is the handle of the root node in the arena.
const root int32 = 0

// node is one character position in the tree.
// labels[i] is the rune on the edge leading to kids[i]; labels is kept sorted.
type node struct {
	labels []rune
	kids   []int32
	end    bool
}

// PrefixIndex is a trie of words. The zero value is an empty index ready to use.
type PrefixIndex struct {
	nodes []node
	words int
}

// New returns an empty index.
func New() *PrefixIndex {
	return &PrefixIndex{nodes: make([]node, 1, 64)}
}

// Insert adds word to the index. Inserting a word that is already present changes nothing.
// The word is stored as given; callers normalize (trim, lower-case) before calling.
// An empty word is ignored.
func (ix *PrefixIndex) Insert(word string) {
	if word == "" {
		return
	}
	if len(ix.nodes) == 0 {
		ix.nodes = append(ix.nodes, node{})
	}

	cur := root
	for _, r := range word {
		pos, ok := slices.BinarySearch(ix.nodes[cur].labels, r)
		if ok {
			cur = ix.nodes[cur].kids[pos]
			continue
		}
		next := int32(len(ix.nodes))
		ix.nodes = append(ix.nodes, node{})
		// take the pointer after append, the arena may have moved
		n := &ix.nodes[cur]
		n.labels = slices.Insert(n.labels, pos, r)
		n.kids = slices.Insert(n.kids, pos, next)
		cur = next
	}

	if !ix.nodes[cur].end {
		ix.nodes[cur].end = true
		ix.words++
	}
}

// WordsWithPrefix returns every stored word beginning with prefix, in lexicographic order.
// An empty prefix returns all words. No match yields an empty, non-nil slice.
func (ix *PrefixIndex) WordsWithPrefix(prefix string) []string {
	words := make([]string, 0)
	ix.Walk(prefix, func(word string) bool {
		words = append(words, word)
		return true
	})
	return words
}

// Walk calls fn for every stored word beginning with prefix, in the same order as
// WordsWithPrefix. Walking stops early when fn returns false.
func (ix *PrefixIndex) Walk(prefix string, fn func(word string) bool) {
	start, ok := ix.find(prefix)
	if !ok {
		return
	}

	type frame struct {
		id    int32
		label rune
		base  int
	}

	buf := make([]byte, 0, len(prefix)+16)
	buf = append(buf, prefix...)
	stack := []frame{{id: start, label: -1, base: len(buf)}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		buf = buf[:f.base]
		if f.label >= 0 {
			buf = utf8.AppendRune(buf, f.label)
		}

		n := &ix.nodes[f.id]
		if n.end && !fn(string(buf)) {
			return
		}

		// push in reverse so the smallest rune is popped first
		base := len(buf)
		for i := len(n.labels) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: n.kids[i], label: n.labels[i], base: base})
		}
	}
}

// Contains reports whether word itself was inserted.
func (ix *PrefixIndex) Contains(word string) bool {
	id, ok := ix.find(word)
	return ok && ix.nodes[id].end
}

// Len returns the number of distinct words in the index.
func (ix *PrefixIndex) Len() int {
	return ix.words
}

// Nodes returns the number of allocated tree nodes, root included.
func (ix *PrefixIndex) Nodes() int {
	return len(ix.nodes)
}

// find follows prefix from the root and returns the node it ends on.
func (ix *PrefixIndex) find(prefix string) (int32, bool) {
	if len(ix.nodes) == 0 {
		return 0, false
	}
	cur := root
	for _, r := range prefix {
		n := &ix.nodes[cur]
		pos, ok := slices.BinarySearch(n.labels, r)
		if !ok {
			return 0, false
		}
		cur = n.kids[pos]
	}
	return cur, true
}
