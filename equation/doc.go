// Package equation implements the algebraic core of the domain equation
// system: immutable terms built from a small set of combinators, structural
// normalization under the algebra's axioms, and extraction of closed
// subterms.
//
// A term is one of five shapes: the identity I (neutral under composition),
// the terminal O (closes a product chain), a named leaf, a sum ("needs one
// of", order-insensitive) or a product ("needs all of, in sequence",
// order-sensitive). The identity law, the distribution of products over
// sums, and the associativity of both operators hold up to Equivalent:
//
//	product(a, identity())          ≡ a
//	product(a, sum(b, c))           ≡ sum(product(a, b), product(a, c))
//	product(product(a, b), c)       ≡ product(a, product(b, c))
//	sum(a, b)                       ≡ sum(b, a)
//
// Normalize reduces any term to a canonical form that is identical for every
// equivalent parenthesization of the same equation, and Connections exposes
// the canonical (source, sink) relation that the property graph registers.
// All operations are pure: terms are never mutated and normalization always
// terminates.
package equation
