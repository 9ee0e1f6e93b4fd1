// Package automaton implements one-dimensional cellular automata addressed by
// Wolfram rule numbers.
//
// The package has two parts:
//
//   - [DeriveRule]: expands a rule identifier into a total lookup [Table]
//     covering every neighborhood for a given state count and radius
//   - [Engine]: steps a finite ring of cells generation by generation using
//     a [Table], with wrap-around boundaries and synchronous update
//
// [ExpandBase] is the shared digit expansion both parts rely on.
//
// # Example
//
//	table, _ := automaton.DeriveRule(big.NewInt(90), 2, 1)
//	eng, _ := automaton.NewEngine(automaton.Generation{0, 0, 0, 1, 0, 0, 0}, table)
//	for g, err := range eng.All() {
//	    ...
//	}
//
// # Thread Safety
//
// Tables are immutable after construction and may be shared freely. Engine
// instances are NOT thread-safe; use one engine per goroutine.
package automaton
