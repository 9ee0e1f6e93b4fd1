package automaton_test

import (
	"errors"
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wolfca/internal/automaton"
)

func derive(id int64, states, neighbors int) *automaton.Table {
	table, err := automaton.DeriveRule(big.NewInt(id), states, neighbors)
	Expect(err).NotTo(HaveOccurred())
	return table
}

// tableFrom builds a table whose output is fn applied to each neighborhood.
func tableFrom(states, neighbors int, fn func(automaton.Neighborhood) automaton.State) *automaton.Table {
	hoods, err := automaton.Neighborhoods(states, neighbors)
	Expect(err).NotTo(HaveOccurred())
	outputs := make([]automaton.State, len(hoods))
	for i, n := range hoods {
		outputs[i] = fn(n)
	}
	table, err := automaton.NewTable(states, neighbors, outputs)
	Expect(err).NotTo(HaveOccurred())
	return table
}

func take(eng *automaton.Engine, n int) []automaton.Generation {
	out := make([]automaton.Generation, 0, n)
	for i := 0; i < n; i++ {
		g, err := eng.Next()
		Expect(err).NotTo(HaveOccurred())
		out = append(out, g)
	}
	return out
}

var _ = Describe("Engine", func() {
	Describe("construction", func() {
		It("rejects generations narrower than two cells", func() {
			table := derive(90, 2, 1)
			for _, g := range []automaton.Generation{nil, {}, {1}} {
				_, err := automaton.NewEngine(g, table)
				Expect(err).To(MatchError(automaton.ErrInvalidArgument))
			}
		})

		It("rejects a nil table", func() {
			_, err := automaton.NewEngine(automaton.Generation{0, 1}, nil)
			Expect(err).To(MatchError(automaton.ErrInvalidArgument))
		})

		It("does not retain the caller's initial slice", func() {
			initial := automaton.Generation{0, 0, 0, 1, 0, 0, 0}
			eng, err := automaton.NewEngine(initial, derive(90, 2, 1))
			Expect(err).NotTo(HaveOccurred())
			initial[3] = 0

			g, err := eng.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(g).To(Equal(automaton.Generation{0, 0, 1, 0, 1, 0, 0}))
		})
	})

	Describe("elementary rules", func() {
		It("produces the classical rule 90 successor", func() {
			eng, err := automaton.NewEngine(automaton.Generation{0, 0, 0, 1, 0, 0, 0}, derive(90, 2, 1))
			Expect(err).NotTo(HaveOccurred())

			gens := take(eng, 3)
			Expect(gens[0]).To(Equal(automaton.Generation{0, 0, 1, 0, 1, 0, 0}))
			Expect(gens[1]).To(Equal(automaton.Generation{0, 1, 0, 0, 0, 1, 0}))
			Expect(gens[2]).To(Equal(automaton.Generation{1, 0, 1, 0, 1, 0, 1}))
			Expect(eng.Generation()).To(Equal(3))
		})

		It("produces the classical rule 30 successors", func() {
			eng, err := automaton.NewEngine(automaton.Generation{0, 0, 0, 1, 0, 0, 0}, derive(30, 2, 1))
			Expect(err).NotTo(HaveOccurred())

			gens := take(eng, 2)
			Expect(gens[0]).To(Equal(automaton.Generation{0, 0, 1, 1, 1, 0, 0}))
			Expect(gens[1]).To(Equal(automaton.Generation{0, 1, 1, 0, 0, 1, 0}))
		})

		It("clears every cell under rule 0", func() {
			eng, err := automaton.NewEngine(automaton.Generation{1, 0, 1, 1, 0, 1, 1, 1}, derive(0, 2, 1))
			Expect(err).NotTo(HaveOccurred())

			for _, g := range take(eng, 5) {
				Expect(g).To(Equal(make(automaton.Generation, 8)))
			}
		})
	})

	Describe("wrap-around", func() {
		initial := automaton.Generation{0, 1, 2, 3}

		It("feeds the last cell into the first cell's neighborhood", func() {
			left := tableFrom(4, 1, func(n automaton.Neighborhood) automaton.State { return n[0] })
			eng, err := automaton.NewEngine(initial, left)
			Expect(err).NotTo(HaveOccurred())

			g, err := eng.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(g).To(Equal(automaton.Generation{3, 0, 1, 2}))
		})

		It("feeds the first cell into the last cell's neighborhood", func() {
			right := tableFrom(4, 1, func(n automaton.Neighborhood) automaton.State { return n[2] })
			eng, err := automaton.NewEngine(initial, right)
			Expect(err).NotTo(HaveOccurred())

			g, err := eng.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(g).To(Equal(automaton.Generation{1, 2, 3, 0}))
		})

		It("keeps the center under the identity table", func() {
			center := tableFrom(4, 1, func(n automaton.Neighborhood) automaton.State { return n[1] })
			eng, err := automaton.NewEngine(initial, center)
			Expect(err).NotTo(HaveOccurred())

			for _, g := range take(eng, 3) {
				Expect(g).To(Equal(initial))
			}
		})

		It("wraps a radius-two neighborhood on a narrow ring", func() {
			farLeft := tableFrom(3, 2, func(n automaton.Neighborhood) automaton.State { return n[0] })
			eng, err := automaton.NewEngine(automaton.Generation{0, 1, 2}, farLeft)
			Expect(err).NotTo(HaveOccurred())

			g, err := eng.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(g).To(Equal(automaton.Generation{1, 2, 0}))
		})

		It("handles the minimum width of two", func() {
			sum := tableFrom(2, 1, func(n automaton.Neighborhood) automaton.State { return (n[0] + n[1] + n[2]) % 2 })
			eng, err := automaton.NewEngine(automaton.Generation{1, 0}, sum)
			Expect(err).NotTo(HaveOccurred())

			g, err := eng.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(g).To(Equal(automaton.Generation{1, 0}))
		})
	})

	Describe("buffer ownership", func() {
		It("returns copies that later steps never overwrite", func() {
			initial := automaton.Generation{0, 0, 0, 1, 0, 0, 0}
			eng, err := automaton.NewEngine(initial, derive(90, 2, 1))
			Expect(err).NotTo(HaveOccurred())
			ref, err := automaton.NewEngine(initial, derive(90, 2, 1))
			Expect(err).NotTo(HaveOccurred())

			first, err := eng.Next()
			Expect(err).NotTo(HaveOccurred())
			snapshot := first.Clone()
			take(eng, 4)
			Expect(first).To(Equal(snapshot))

			first[0] = 1
			Expect(take(eng, 3)).To(Equal(take(ref, 8)[5:]))
		})
	})

	Describe("determinism", func() {
		It("replays identically from a fresh engine", func() {
			initial := automaton.Generation{0, 1, 1, 0, 1, 0, 0, 1, 1, 1, 0, 1}
			table := derive(110, 2, 1)

			a, err := automaton.NewEngine(initial, table)
			Expect(err).NotTo(HaveOccurred())
			b, err := automaton.NewEngine(initial, table)
			Expect(err).NotTo(HaveOccurred())

			Expect(take(a, 50)).To(Equal(take(b, 50)))
		})
	})

	Describe("malformed tables", func() {
		It("fails with ErrKeyNotFound when an output leaves the state range", func() {
			outputs := []automaton.State{0, 0, 0, 0, 0, 0, 5, 0}
			table, err := automaton.NewTable(2, 1, outputs)
			Expect(err).NotTo(HaveOccurred())

			eng, err := automaton.NewEngine(automaton.Generation{0, 0, 0, 1, 0, 0, 0}, table)
			Expect(err).NotTo(HaveOccurred())

			g, err := eng.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(g).To(Equal(automaton.Generation{0, 0, 5, 0, 0, 0, 0}))

			g, err = eng.Next()
			Expect(err).To(MatchError(automaton.ErrKeyNotFound))
			Expect(g).To(BeNil())

			var stepErr *automaton.StepError
			Expect(errors.As(err, &stepErr)).To(BeTrue())
			Expect(stepErr.Generation).To(Equal(2))
			Expect(stepErr.Cell).To(Equal(1))

			_, again := eng.Next()
			Expect(again).To(Equal(err))
		})

		It("fails when the initial generation holds an invalid state", func() {
			eng, err := automaton.NewEngine(automaton.Generation{0, 3, 0}, derive(90, 2, 1))
			Expect(err).NotTo(HaveOccurred())

			_, err = eng.Next()
			Expect(err).To(MatchError(automaton.ErrKeyNotFound))
		})
	})

	Describe("All", func() {
		It("yields generations until the caller stops", func() {
			eng, err := automaton.NewEngine(automaton.Generation{0, 0, 0, 1, 0, 0, 0}, derive(90, 2, 1))
			Expect(err).NotTo(HaveOccurred())

			var gens []automaton.Generation
			for g, err := range eng.All() {
				Expect(err).NotTo(HaveOccurred())
				gens = append(gens, g)
				if len(gens) == 4 {
					break
				}
			}
			Expect(gens).To(HaveLen(4))
			Expect(gens[0]).To(Equal(automaton.Generation{0, 0, 1, 0, 1, 0, 0}))

			next, err := eng.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.Generation()).To(Equal(5))
			Expect(next).To(HaveLen(7))
		})

		It("stops after yielding an error", func() {
			table, err := automaton.NewTable(2, 1, []automaton.State{0, 0, 0, 0, 0, 0, 0, 0})
			Expect(err).NotTo(HaveOccurred())
			eng, err := automaton.NewEngine(automaton.Generation{0, 9}, table)
			Expect(err).NotTo(HaveOccurred())

			count := 0
			for _, err := range eng.All() {
				count++
				Expect(err).To(MatchError(automaton.ErrKeyNotFound))
			}
			Expect(count).To(Equal(1))
		})
	})
})
