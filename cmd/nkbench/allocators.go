package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/nativekit/native/alloc"
)

func init() {
	rootCmd.AddCommand(newAllocatorsCmd())
}

func newAllocatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "allocators",
		Short: "List registered allocator handles",
		Long: `The allocators command lists every allocator in the default registry with
the handle and name a workload file refers to it by.

Example:
  nkbench allocators
  nkbench allocators --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAllocators(alloc.Default())
		},
	}
}

type allocatorInfo struct {
	Handle int    `json:"handle"`
	Name   string `json:"name"`
}

func runAllocators(r *alloc.Registry) error {
	entries := r.Entries()
	out := make([]allocatorInfo, len(entries))
	for i, e := range entries {
		out[i] = allocatorInfo{Handle: int(e.Handle), Name: e.Name}
	}

	if jsonOut {
		return printJSON(out)
	}
	printInfo("Allocators:\n")
	for _, a := range out {
		printInfo("  %d  %s\n", a.Handle, a.Name)
	}
	return nil
}
