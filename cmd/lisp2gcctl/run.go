package main

import (
	"fmt"

	"github.com/jpare/lisp2gc/heap"
	"github.com/jpare/lisp2gc/pkg/types"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run one of the built-in scenarios and report the resulting liveCount",
		Long: `run exercises the runtime with one of the scenarios from the
collector's testable-properties list and prints the surviving cell count.

Available scenarios: stack-preservation, dead-collection, nested-graph,
cycle, churn, realloc-growth.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(args[0])
		},
	}
	rootCmd.AddCommand(cmd)
}

type scenarioResult struct {
	Scenario  string `json:"scenario"`
	Variant   string `json:"variant"`
	LiveCount int    `json:"liveCount"`
	HeapBytes int    `json:"heapBytes"`
}

func runScenario(name string) error {
	variant, err := parseVariant(variantArg)
	if err != nil {
		return err
	}

	fn, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("unknown scenario %q", name)
	}

	rt, err := heap.NewRuntime(variant)
	if err != nil {
		return err
	}
	defer rt.Free()

	if err := fn(rt); err != nil {
		return err
	}

	result := scenarioResult{
		Scenario:  name,
		Variant:   variantArg,
		LiveCount: rt.LiveCount(),
		HeapBytes: rt.HeapBytes(),
	}
	if jsonOut {
		return printJSON(result)
	}
	fmt.Printf("scenario=%s variant=%s liveCount=%d heapBytes=%d\n",
		result.Scenario, result.Variant, result.LiveCount, result.HeapBytes)
	return nil
}

var scenarios = map[string]func(rt *heap.Runtime) error{
	"stack-preservation": scenarioStackPreservation,
	"dead-collection":    scenarioDeadCollection,
	"nested-graph":       scenarioNestedGraph,
	"cycle":              scenarioCycle,
	"churn":              scenarioChurn,
	"realloc-growth":     scenarioReallocGrowth,
}

func scenarioStackPreservation(rt *heap.Runtime) error {
	if _, err := rt.PushInt(1); err != nil {
		return err
	}
	if _, err := rt.PushInt(2); err != nil {
		return err
	}
	return rt.GC(0)
}

func scenarioDeadCollection(rt *heap.Runtime) error {
	if _, err := rt.PushInt(1); err != nil {
		return err
	}
	if _, err := rt.PushInt(2); err != nil {
		return err
	}
	if _, err := rt.Pop(); err != nil {
		return err
	}
	if _, err := rt.Pop(); err != nil {
		return err
	}
	return rt.GC(0)
}

func scenarioNestedGraph(rt *heap.Runtime) error {
	if _, err := rt.PushInt(1); err != nil {
		return err
	}
	if _, err := rt.PushInt(2); err != nil {
		return err
	}
	// p1 = Pair(1, 2); PushPair pops 2 then 1, leaving only p1 rooted.
	if _, err := rt.PushPair(); err != nil {
		return err
	}

	if _, err := rt.PushInt(3); err != nil {
		return err
	}
	if _, err := rt.PushInt(4); err != nil {
		return err
	}
	// p2 = Pair(3, 4); stack now holds [p1, p2].
	if _, err := rt.PushPair(); err != nil {
		return err
	}

	// p3 = Pair(p1, p2); PushPair pops p2 then p1, leaving only p3 rooted.
	if _, err := rt.PushPair(); err != nil {
		return err
	}

	return rt.GC(0)
}

func scenarioCycle(rt *heap.Runtime) error {
	if _, err := rt.PushInt(1); err != nil {
		return err
	}
	if _, err := rt.PushInt(2); err != nil {
		return err
	}
	a, err := rt.PushPair() // a = Pair(1, 2)
	if err != nil {
		return err
	}

	if _, err := rt.PushInt(3); err != nil {
		return err
	}
	if _, err := rt.PushInt(4); err != nil {
		return err
	}
	b, err := rt.PushPair() // b = Pair(3, 4); stack now holds [a, b]
	if err != nil {
		return err
	}

	// Wire a and b's tails into each other, forming the cycle. These are
	// post-construction mutations, not PushPair's allocate-and-link step.
	rt.SetTail(a, b)
	rt.SetTail(b, a)

	return rt.GC(0)
}

func scenarioChurn(rt *heap.Runtime) error {
	const iterations = 100000
	for i := 0; i < iterations; i++ {
		for j := 0; j < 20; j++ {
			if _, err := rt.PushInt(int64(j)); err != nil {
				return fmt.Errorf("iteration %d: %w", i, err)
			}
		}
		for j := 0; j < 20; j++ {
			if _, err := rt.Pop(); err != nil {
				return fmt.Errorf("iteration %d: %w", i, err)
			}
		}
	}
	return rt.GC(0)
}

func scenarioReallocGrowth(rt *heap.Runtime) error {
	if rt.Variant() != types.VariantRealloc {
		return fmt.Errorf("realloc-growth requires --variant=realloc")
	}
	for i := 0; i < 100; i++ {
		if _, err := rt.PushInt(int64(i)); err != nil {
			return fmt.Errorf("allocation %d: %w", i, err)
		}
	}
	return nil
}
