package main

import (
	"fmt"

	"github.com/jpare/lisp2gc/heap"
	"github.com/spf13/cobra"
)

var gcIntegers int

func init() {
	cmd := &cobra.Command{
		Use:   "gc",
		Short: "Allocate N rooted integers, collect, and report the heap state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGC()
		},
	}
	cmd.Flags().IntVar(&gcIntegers, "integers", 10, "number of Integer cells to push before collecting")
	rootCmd.AddCommand(cmd)
}

func runGC() error {
	variant, err := parseVariant(variantArg)
	if err != nil {
		return err
	}

	rt, err := heap.NewRuntime(variant)
	if err != nil {
		return err
	}
	defer rt.Free()

	for i := 0; i < gcIntegers; i++ {
		if _, err := rt.PushInt(int64(i)); err != nil {
			return fmt.Errorf("allocation %d: %w", i, err)
		}
	}

	before := rt.HeapFrontier()
	if err := rt.GC(0); err != nil {
		return err
	}

	result := struct {
		Variant        string `json:"variant"`
		LiveCount      int    `json:"liveCount"`
		FrontierBefore int    `json:"frontierBefore"`
		FrontierAfter  int    `json:"frontierAfter"`
		HeapBytes      int    `json:"heapBytes"`
	}{
		Variant:        variantArg,
		LiveCount:      rt.LiveCount(),
		FrontierBefore: before,
		FrontierAfter:  rt.HeapFrontier(),
		HeapBytes:      rt.HeapBytes(),
	}

	if jsonOut {
		return printJSON(result)
	}
	fmt.Printf("variant=%s liveCount=%d frontier=%d->%d heapBytes=%d\n",
		result.Variant, result.LiveCount, result.FrontierBefore, result.FrontierAfter, result.HeapBytes)
	if verbose {
		fmt.Println(heap.Sprint(rt))
	}
	return nil
}
