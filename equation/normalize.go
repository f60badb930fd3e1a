package equation

import (
	"sort"
)

// Link is one (source, sink) connection of a canonical form: the source
// property needs the sink property.
type Link struct {
	Source Leaf
	Sink   Leaf
}

// atom is one element of a fully distributed product chain. A nil leaf
// marks the terminal.
type atom struct {
	leaf *Leaf
}

func (a atom) terminal() bool {
	return a.leaf == nil
}

// expand distributes products over sums, producing every flat chain of the
// term. Identity contributes an empty chain segment, so it vanishes from
// products; each rewrite strictly shrinks the remaining tree, which bounds
// the recursion.
func expand(t Term) [][]atom {
	switch t.kind {
	case kindIdentity:
		return [][]atom{{}}
	case kindTerminal:
		return [][]atom{{atom{}}}
	case kindLeaf:
		return [][]atom{{atom{leaf: t.leaf}}}
	case kindSum:
		var chains [][]atom
		for _, op := range t.operands {
			chains = append(chains, expand(op)...)
		}
		return chains
	case kindProduct:
		chains := [][]atom{{}}
		for _, op := range t.operands {
			segments := expand(op)
			next := make([][]atom, 0, len(chains)*len(segments))
			for _, chain := range chains {
				for _, segment := range segments {
					joined := make([]atom, 0, len(chain)+len(segment))
					joined = append(joined, chain...)
					joined = append(joined, segment...)
					next = append(next, joined)
				}
			}
			chains = next
		}
		return chains
	default:
		return nil
	}
}

// decompose reduces a term to its connection components: every leaf that
// appears anywhere in it, and every adjacent (source, sink) leaf pair of its
// distributed chains. Links touching the terminal are boundary markers and
// are dropped, so an interior terminal splits a chain. hasTerminal reports
// whether any terminal appeared at all.
func decompose(t Term) (leaves []Leaf, links []Link, hasTerminal bool) {
	seenLeaf := make(map[string]bool)
	seenLink := make(map[string]bool)

	for _, chain := range expand(t) {
		for i, a := range chain {
			if a.terminal() {
				hasTerminal = true
				continue
			}
			if !seenLeaf[a.leaf.Name] {
				seenLeaf[a.leaf.Name] = true
				leaves = append(leaves, *a.leaf)
			}
			if i == 0 {
				continue
			}
			prev := chain[i-1]
			if prev.terminal() {
				continue
			}
			key := prev.leaf.Name + "\x00" + a.leaf.Name
			if !seenLink[key] {
				seenLink[key] = true
				links = append(links, Link{Source: *prev.leaf, Sink: *a.leaf})
			}
		}
	}

	sort.Slice(leaves, func(i, j int) bool {
		return leaves[i].Name < leaves[j].Name
	})
	sort.Slice(links, func(i, j int) bool {
		if links[i].Source.Name != links[j].Source.Name {
			return links[i].Source.Name < links[j].Source.Name
		}
		return links[i].Sink.Name < links[j].Sink.Name
	})

	return leaves, links, hasTerminal
}

// Normalize returns the canonical form of t: the sorted sum of its
// connection components, where each component is either a bare leaf or a
// two-operand product link. Equivalent parenthesizations of the same
// equation always produce the same canonical form, and normalizing a
// canonical form returns it unchanged.
func Normalize(t Term) Term {
	leaves, links, hasTerminal := decompose(t)

	components := make([]Term, 0, len(leaves)+len(links))
	for i := range links {
		link := links[i]
		components = append(components, Term{
			kind:     kindProduct,
			operands: []Term{leafTerm(&link.Source), leafTerm(&link.Sink)},
		})
	}
	for i := range leaves {
		leaf := leaves[i]
		components = append(components, leafTerm(&leaf))
	}

	if len(components) == 0 {
		if hasTerminal {
			return Terminal()
		}
		return Identity()
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i].String() < components[j].String()
	})

	if len(components) == 1 {
		return components[0]
	}
	return Term{kind: kindSum, operands: components}
}

// Equivalent reports whether two terms denote the same equation: their
// canonical forms are structurally identical.
func Equivalent(a, b Term) bool {
	return Normalize(a).Equal(Normalize(b))
}

// Connections returns every leaf of t and every (source, sink) link of its
// canonical form, both in deterministic order. This is the registration feed
// consumed by the property graph. Unlike canonical comparison, the leaf list
// keeps distinct metadata variants of the same name so that registration can
// surface the collision.
func Connections(t Term) ([]Leaf, []Link) {
	_, links, _ := decompose(t)
	return collectLeaves(t), links
}

// collectLeaves gathers every distinct leaf of the term, deduplicated by the
// full leaf value and sorted by name.
func collectLeaves(t Term) []Leaf {
	seen := make(map[Leaf]bool)
	var leaves []Leaf

	var walk func(Term)
	walk = func(node Term) {
		if node.kind == kindLeaf && !seen[*node.leaf] {
			seen[*node.leaf] = true
			leaves = append(leaves, *node.leaf)
		}
		for _, op := range node.operands {
			walk(op)
		}
	}
	walk(t)

	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].Name != leaves[j].Name {
			return leaves[i].Name < leaves[j].Name
		}
		return leaves[i].Kind < leaves[j].Kind
	})
	return leaves
}
