package equation

import (
	"sort"
)

// IntermediateTerms returns the closed product subterms of t: products whose
// rightmost operand is the terminal. These denote finished groupings that
// are candidates for extraction into an intermediate composite type.
//
// The walk runs over the flattened form of t (identities eliminated, nested
// sums and products spliced, but no distribution), so the groupings the
// modeler wrote remain visible as single subterms. Matches are deduplicated
// by canonical form and ordered largest first. The result is recomputed from
// t on every call.
func IntermediateTerms(t Term) []Term {
	var matches []Term
	seen := make(map[string]bool)

	var walk func(Term)
	walk = func(node Term) {
		if node.kind == kindProduct && isClosed(node) {
			key := Normalize(node).String()
			if !seen[key] {
				seen[key] = true
				matches = append(matches, node)
			}
		}
		for _, op := range node.operands {
			walk(op)
		}
	}
	walk(flatten(t))

	sort.SliceStable(matches, func(i, j int) bool {
		ni, nj := matches[i].nodeCount(), matches[j].nodeCount()
		if ni != nj {
			return ni > nj
		}
		return Normalize(matches[i]).String() < Normalize(matches[j]).String()
	})

	return matches
}

// isClosed reports whether a product ends in the terminal and still carries
// structure beyond the closing marker.
func isClosed(t Term) bool {
	n := len(t.operands)
	if n < 2 || !t.operands[n-1].IsTerminal() {
		return false
	}
	for _, op := range t.operands[:n-1] {
		if !op.IsTerminal() {
			return true
		}
	}
	return false
}

// flatten eliminates identities and splices nested same-kind sums and
// products without distributing.
func flatten(t Term) Term {
	switch t.kind {
	case kindSum:
		operands := make([]Term, 0, len(t.operands))
		for _, op := range t.operands {
			f := flatten(op)
			if f.kind == kindSum {
				operands = append(operands, f.operands...)
				continue
			}
			operands = append(operands, f)
		}
		if len(operands) == 1 {
			return operands[0]
		}
		return Term{kind: kindSum, operands: operands}
	case kindProduct:
		operands := make([]Term, 0, len(t.operands))
		for _, op := range t.operands {
			f := flatten(op)
			switch f.kind {
			case kindIdentity:
				continue
			case kindProduct:
				operands = append(operands, f.operands...)
			default:
				operands = append(operands, f)
			}
		}
		if len(operands) == 0 {
			return Identity()
		}
		if len(operands) == 1 {
			return operands[0]
		}
		return Term{kind: kindProduct, operands: operands}
	default:
		return t
	}
}
