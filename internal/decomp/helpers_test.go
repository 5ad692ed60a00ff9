package decomp_test

import (
	"cmp"
	"context"
	"fmt"
	"math/rand"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/san-kum/paramsynth/internal/decomp"
	"github.com/san-kum/paramsynth/internal/params"
	"github.com/san-kum/paramsynth/internal/params/interval"
	"github.com/san-kum/paramsynth/internal/ts"
)

type (
	labels    = params.StateSet[int, interval.Set]
	system    = ts.Explicit[int, interval.Set]
	component = decomp.Component[int, interval.Set]
)

var ctx = context.Background()

type edge struct {
	from, to int
	label    interval.Set
}

func build(sv *interval.Solver, states int, edges ...edge) *system {
	b := ts.NewBuilder[int, interval.Set](sv)
	for s := 0; s < states; s++ {
		b.AddState(s, sv.Full())
	}
	for _, e := range edges {
		b.AddEdge(e.from, e.to, e.label)
	}
	return b.Build()
}

func run(sv *interval.Solver, sys *system, opts decomp.Options[int, interval.Set]) *decomp.Result[int, interval.Set] {
	if opts.Chooser == nil {
		opts.Chooser = decomp.NewNaive[int, interval.Set](sv, cmp.Compare[int])
	}
	res, err := decomp.New[int, interval.Set](sv, sys, opts).Run(ctx)
	if err != nil {
		panic(err)
	}
	return res
}

// randomSystem returns a graph with full states and edges labeled by random
// integer-bounded intervals.
func randomSystem(sv *interval.Solver, rng *rand.Rand, states, edges int) *system {
	var es []edge
	for i := 0; i < edges; i++ {
		lo := rng.Intn(10)
		hi := lo + 1 + rng.Intn(10-lo)
		es = append(es, edge{rng.Intn(states), rng.Intn(states), interval.Set{float64(lo), float64(hi)}})
	}
	return build(sv, states, es...)
}

// terminalSCCs enumerates the attractors of sys at the single parameter
// value x by brute force.
func terminalSCCs(sys *system, x float64) []string {
	var states []int
	for s, v := range sys.States() {
		if v.Contains(x) {
			states = append(states, s)
		}
	}
	reachable := func(from int) map[int]bool {
		seen := map[int]bool{from: true}
		queue := []int{from}
		for len(queue) > 0 {
			s := queue[0]
			queue = queue[1:]
			for _, t := range sys.Successors(s) {
				if !seen[t] && sys.EdgeParams(s, t).Contains(x) {
					seen[t] = true
					queue = append(queue, t)
				}
			}
		}
		return seen
	}

	found := map[string]bool{}
	for _, u := range states {
		fromU := reachable(u)
		terminal := true
		for v := range fromU {
			if !reachable(v)[u] {
				terminal = false
				break
			}
		}
		if terminal {
			found[supportKey(fromU)] = true
		}
	}
	var keys []string
	for k := range found {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// attractorsAt returns the supports of the components whose tag contains x.
func attractorsAt(res *decomp.Result[int, interval.Set], x float64) []string {
	var keys []string
	for _, c := range res.Components {
		if !c.Tag.Contains(x) {
			continue
		}
		members := map[int]bool{}
		for s, v := range c.States {
			if v.Contains(x) {
				members[s] = true
			}
		}
		keys = append(keys, supportKey(members))
	}
	sort.Strings(keys)
	return keys
}

func supportKey(members map[int]bool) string {
	var ids []int
	for s := range members {
		ids = append(ids, s)
	}
	slices.Sort(ids)
	parts := make([]string, len(ids))
	for i, s := range ids {
		parts[i] = fmt.Sprint(s)
	}
	return strings.Join(parts, ",")
}

// countAt returns the number of attractors Counts reports for x, or 0.
func countAt(res *decomp.Result[int, interval.Set], x float64) int {
	for i, colors := range res.Counts {
		if colors.Contains(x) {
			return i + 1
		}
	}
	return 0
}

type recorder struct {
	mu         sync.Mutex
	iterations int
	components int
	branches   map[decomp.Branch]int
}

func newRecorder() *recorder {
	return &recorder{branches: make(map[decomp.Branch]int)}
}

func (r *recorder) OnIteration(decomp.IterationStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.iterations++
}

func (r *recorder) OnComponent(int, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components++
}

func (r *recorder) OnBranch(b decomp.Branch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.branches[b]++
}
