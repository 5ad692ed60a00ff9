package decomp_test

import (
	"cmp"
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/paramsynth/internal/decomp"
	"github.com/san-kum/paramsynth/internal/params"
	"github.com/san-kum/paramsynth/internal/params/interval"
)

var _ = Describe("Algorithm", func() {
	var sv *interval.Solver

	BeforeEach(func() {
		sv = interval.NewSolver(0, 10)
	})

	Context("with a two-cycle that can escape to a sink above 5", func() {
		var sys *system

		BeforeEach(func() {
			sys = build(sv, 3,
				edge{0, 1, sv.Full()},
				edge{1, 0, sv.Full()},
				edge{1, 2, interval.Set{5, 10}},
			)
		})

		It("finds the cycle below 5 and the sink everywhere", func() {
			res := run(sv, sys, decomp.Options[int, interval.Set]{})

			Expect(res.Components).To(Equal([]component{
				{States: labels{2: {0, 10}}, Tag: interval.Set{0, 10}},
				{States: labels{0: {0, 5}, 1: {0, 5}}, Tag: interval.Set{0, 5}},
			}))
		})

		It("counts two attractors below 5 and one above", func() {
			res := run(sv, sys, decomp.Options[int, interval.Set]{})

			Expect(res.Counts).To(Equal([]interval.Set{{5, 10}, {0, 5}}))
			Expect(res.Levels).To(Equal([]labels{
				{2: {5, 10}},
				{0: {0, 5}, 1: {0, 5}, 2: {0, 5}},
			}))
			Expect(res.Iterations).To(Equal(3))
		})

		It("reports progress to the observer", func() {
			rec := newRecorder()
			run(sv, sys, decomp.Options[int, interval.Set]{Observer: rec})

			Expect(rec.iterations).To(Equal(3))
			Expect(rec.components).To(Equal(3))
			Expect(rec.branches).To(Equal(map[decomp.Branch]int{
				decomp.BranchUndecided: 1,
				decomp.BranchUnrelated: 1,
			}))
		})

		It("does not depend on the pivot scan order", func() {
			reverse := func(a, b int) int { return cmp.Compare(b, a) }
			res := run(sv, sys, decomp.Options[int, interval.Set]{
				Chooser: decomp.NewNaive[int, interval.Set](sv, reverse),
			})

			Expect(res.Components).To(ConsistOf(
				component{States: labels{2: {0, 10}}, Tag: interval.Set{0, 10}},
				component{States: labels{0: {0, 5}, 1: {0, 5}}, Tag: interval.Set{0, 5}},
			))
		})
	})

	Context("with two disjoint cycles", func() {
		var sys *system

		BeforeEach(func() {
			sys = build(sv, 4,
				edge{0, 1, sv.Full()},
				edge{1, 0, sv.Full()},
				edge{2, 3, sv.Full()},
				edge{3, 2, sv.Full()},
			)
		})

		It("finds both cycles on the full domain", func() {
			res := run(sv, sys, decomp.Options[int, interval.Set]{})

			Expect(res.Components).To(ConsistOf(
				component{States: labels{0: sv.Full(), 1: sv.Full()}, Tag: sv.Full()},
				component{States: labels{2: sv.Full(), 3: sv.Full()}, Tag: sv.Full()},
			))
			Expect(res.Counts).To(HaveLen(2))
			Expect(res.Counts[0]).To(BeEmpty())
			Expect(res.Counts[1]).To(Equal(sv.Full()))
		})

		It("never puts a state in two components", func() {
			res := run(sv, sys, decomp.Options[int, interval.Set]{})

			seen := map[int]bool{}
			for _, c := range res.Components {
				for s := range c.States {
					Expect(seen).NotTo(HaveKey(s))
					seen[s] = true
				}
			}
		})
	})

	It("returns an isolated state as its own attractor", func() {
		sys := build(sv, 1)
		res := run(sv, sys, decomp.Options[int, interval.Set]{})

		Expect(res.Components).To(Equal([]component{
			{States: labels{0: sv.Full()}, Tag: sv.Full()},
		}))
		Expect(res.Counts).To(Equal([]interval.Set{sv.Full()}))
	})

	It("keeps only the end of a chain", func() {
		sys := build(sv, 3,
			edge{0, 1, sv.Full()},
			edge{1, 2, sv.Full()},
		)
		res := run(sv, sys, decomp.Options[int, interval.Set]{})

		Expect(res.Components).To(Equal([]component{
			{States: labels{2: sv.Full()}, Tag: sv.Full()},
		}))
	})

	It("handles an empty system", func() {
		sys := build(sv, 0)
		res := run(sv, sys, decomp.Options[int, interval.Set]{})

		Expect(res.Components).To(BeEmpty())
		Expect(res.Iterations).To(BeZero())
	})

	It("stops when the context is canceled", func() {
		sys := build(sv, 2, edge{0, 1, sv.Full()})
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		for _, parallel := range []bool{false, true} {
			_, err := decomp.New[int, interval.Set](sv, sys, decomp.Options[int, interval.Set]{Parallel: parallel}).Run(canceled)
			Expect(err).To(MatchError(context.Canceled))
		}
	})

	DescribeTable("agrees with a per-value brute force on random systems",
		func(strategy string, parallel bool) {
			rng := rand.New(rand.NewSource(42))
			for round := 0; round < 25; round++ {
				sys := randomSystem(sv, rng, 8, 14)
				chooser, err := decomp.NewChooser[int, interval.Set](strategy, sv, sys, cmp.Compare[int])
				Expect(err).NotTo(HaveOccurred())

				res := run(sv, sys, decomp.Options[int, interval.Set]{
					Chooser:  chooser,
					Parallel: parallel,
					Workers:  4,
				})

				for k := 0; k < 10; k++ {
					x := float64(k) + 0.5
					want := terminalSCCs(sys, x)
					Expect(attractorsAt(res, x)).To(Equal(want), "round %d at %v", round, x)
					Expect(countAt(res, x)).To(Equal(len(want)), "round %d at %v", round, x)
				}
			}
		},
		Entry("naive", decomp.ChooserNaive, false),
		Entry("volume", decomp.ChooserVolume, false),
		Entry("structure", decomp.ChooserStructure, false),
		Entry("structure with cardinality", decomp.ChooserStructureCardinality, false),
		Entry("naive in parallel", decomp.ChooserNaive, true),
		Entry("structure in parallel", decomp.ChooserStructure, true),
	)

	It("matches the sequential result in parallel mode", func() {
		rng := rand.New(rand.NewSource(7))
		sys := randomSystem(sv, rng, 30, 60)

		seq := run(sv, sys, decomp.Options[int, interval.Set]{})
		par := run(sv, sys, decomp.Options[int, interval.Set]{Parallel: true, Workers: 8})

		Expect(par.Counts).To(HaveLen(len(seq.Counts)))
		for i := range seq.Counts {
			Expect(sv.Volume(par.Counts[i])).To(BeNumerically("~", sv.Volume(seq.Counts[i]), 1e-9))
		}
	})
})

var _ = Describe("Count", func() {
	var (
		sv    *interval.Solver
		count *decomp.Count[interval.Set]
	)

	BeforeEach(func() {
		sv = interval.NewSolver(0, 10)
		count = decomp.NewCount[interval.Set](sv)
	})

	It("starts with every color on level 0", func() {
		Expect(count.Len()).To(Equal(1))
		Expect(count.Level(0)).To(Equal(sv.Full()))
		Expect(count.Level(3)).To(BeEmpty())
		Expect(count.Min()).To(Equal(1))
		Expect(count.Max()).To(Equal(1))
	})

	It("moves pushed colors up one level", func() {
		count.Push(interval.Set{0, 4})
		count.Push(interval.Set{2, 6})

		Expect(count.Levels()).To(Equal([]interval.Set{
			{6, 10},
			{0, 2, 4, 6},
			{2, 4},
		}))
		Expect(count.Max()).To(Equal(3))
	})

	It("drops trailing empty levels", func() {
		count.Push(sv.Empty())
		Expect(count.Len()).To(Equal(1))

		count.Push(sv.Full())
		Expect(count.Len()).To(Equal(2))
		Expect(count.Level(0)).To(BeEmpty())
		Expect(count.Min()).To(Equal(2))
	})
})

var _ = Describe("Store", func() {
	var (
		sv    *interval.Solver
		store *decomp.Store[int, interval.Set]
	)

	BeforeEach(func() {
		sv = interval.NewSolver(0, 10)
		store = decomp.NewStore[int, interval.Set](sv)
	})

	It("clips pushed labels to the tag", func() {
		n := store.Push(labels{0: sv.Full(), 1: {6, 8}}, interval.Set{0, 5})
		Expect(n).To(Equal(1))

		res := store.Finalize(decomp.NewCount[interval.Set](sv))
		Expect(res.Components).To(Equal([]component{
			{States: labels{0: {0, 5}}, Tag: interval.Set{0, 5}},
		}))
	})

	It("ignores pushes that clip to nothing", func() {
		Expect(store.Push(labels{0: {6, 8}}, interval.Set{0, 5})).To(BeZero())
		Expect(store.Finalize(decomp.NewCount[interval.Set](sv)).Components).To(BeEmpty())
	})

	It("merges records with the same states and splits levels by count", func() {
		store.Push(labels{0: sv.Full()}, interval.Set{0, 3})
		store.Push(labels{1: sv.Full()}, interval.Set{0, 3})
		store.Push(labels{0: sv.Full()}, interval.Set{3, 10})
		count := decomp.NewCount[interval.Set](sv)
		count.Push(interval.Set{0, 3})

		res := store.Finalize(count)
		Expect(res.Components).To(Equal([]component{
			{States: labels{0: {0, 10}}, Tag: interval.Set{0, 10}},
			{States: labels{1: {0, 3}}, Tag: interval.Set{0, 3}},
		}))
		Expect(res.Levels).To(Equal([]labels{
			{0: {3, 10}},
			{0: {0, 3}, 1: {0, 3}},
		}))
	})
})

var _ = Describe("Choosers", func() {
	var sv *interval.Solver

	BeforeEach(func() {
		sv = interval.NewSolver(0, 10)
	})

	universe := func() labels {
		return labels{
			0: {0, 2},
			1: {0, 6},
			2: {4, 10},
			3: {9, 10},
		}
	}

	DescribeTable("returns a pivot inside the universe covering all its colors",
		func(name string) {
			sys := build(sv, 4,
				edge{0, 1, sv.Full()},
				edge{2, 1, interval.Set{0, 5}},
				edge{3, 1, sv.Full()},
				edge{1, 2, interval.Set{5, 10}},
			)
			chooser, err := decomp.NewChooser[int, interval.Set](name, sv, sys, cmp.Compare[int])
			Expect(err).NotTo(HaveOccurred())

			u := universe()
			pivot := chooser.Choose(u)
			Expect(pivot).NotTo(BeEmpty())
			Expect(params.Subset(sv, u, pivot)).To(BeTrue())
			Expect(params.Colors(sv, pivot)).To(Equal(params.Colors(sv, u)))
		},
		Entry("naive", decomp.ChooserNaive),
		Entry("volume", decomp.ChooserVolume),
		Entry("structure", decomp.ChooserStructure),
		Entry("structure with cardinality", decomp.ChooserStructureCardinality),
	)

	It("takes the first overlapping state in scan order", func() {
		pivot := decomp.NewNaive[int, interval.Set](sv, cmp.Compare[int]).Choose(universe())
		Expect(pivot).To(Equal(labels{0: {0, 2}, 1: {2, 6}, 2: {6, 10}}))
	})

	It("takes the largest volume first", func() {
		pivot := decomp.NewVolume[int, interval.Set](sv, cmp.Compare[int]).Choose(universe())
		Expect(pivot).To(Equal(labels{1: {0, 6}, 2: {6, 10}}))
	})

	It("prefers states with more incoming edges", func() {
		sys := build(sv, 3,
			edge{0, 2, sv.Full()},
			edge{1, 2, sv.Full()},
			edge{2, 0, sv.Full()},
		)
		pivot := decomp.NewStructure[int, interval.Set](sv, sys, cmp.Compare[int]).Choose(labels{
			0: sv.Full(), 1: sv.Full(), 2: sv.Full(),
		})
		Expect(pivot).To(Equal(labels{2: sv.Full()}))
	})

	It("rejects unknown strategies", func() {
		_, err := decomp.NewChooser[int, interval.Set]("random", sv, nil, nil)
		Expect(err).To(MatchError(decomp.ErrUnknownChooser))

		_, err = decomp.NewChooser[int, interval.Set](decomp.ChooserStructure, sv, nil, nil)
		Expect(err).To(MatchError(decomp.ErrNoModel))
	})
})
