// Package workload parses the YAML workload files nkbench runs.
package workload

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Container kinds a workload can exercise.
const (
	Array         = "array"
	List          = "list"
	Queue         = "queue"
	Stack         = "stack"
	PriorityQueue = "pqueue"
)

// Sort strategies for array and list workloads.
const (
	SortRecursive = "recursive"
	SortIterative = "iterative"
)

// ElemSize is the size of the int64 elements every workload stores.
const ElemSize = 8

var kinds = []string{Array, List, Queue, Stack, PriorityQueue}

// File is a parsed workload file.
type File struct {
	Seed      uint64     `yaml:"seed" json:"seed"`
	Workloads []Workload `yaml:"workloads" json:"workloads"`
}

// Workload is a single timed run.
type Workload struct {
	Name      string `yaml:"name" json:"name"`
	Container string `yaml:"container" json:"container"`
	Allocator string `yaml:"allocator" json:"allocator"`
	Count     int    `yaml:"count" json:"count"`
	Stride    int    `yaml:"stride,omitempty" json:"stride,omitempty"`
	Sort      string `yaml:"sort,omitempty" json:"sort,omitempty"`
}

// Load reads and validates the workload file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a workload file. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse workload file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every workload and fills defaults.
func (f *File) Validate() error {
	if len(f.Workloads) == 0 {
		return fmt.Errorf("no workloads defined")
	}
	for i := range f.Workloads {
		if err := f.Workloads[i].validate(); err != nil {
			return fmt.Errorf("workload %d: %w", i, err)
		}
	}
	return nil
}

func (w *Workload) validate() error {
	if w.Name == "" {
		return fmt.Errorf("missing name")
	}
	if !slices.Contains(kinds, w.Container) {
		return fmt.Errorf("%s: unknown container %q (want one of %v)", w.Name, w.Container, kinds)
	}
	if w.Allocator == "" {
		return fmt.Errorf("%s: missing allocator", w.Name)
	}
	if w.Count <= 0 {
		return fmt.Errorf("%s: count must be positive, got %d", w.Name, w.Count)
	}
	if w.Stride == 0 {
		w.Stride = ElemSize
	}
	if w.Stride < ElemSize {
		return fmt.Errorf("%s: stride %d is smaller than the %d-byte element", w.Name, w.Stride, ElemSize)
	}
	switch w.Sort {
	case "":
	case SortRecursive, SortIterative:
		if w.Container != Array && w.Container != List {
			return fmt.Errorf("%s: sort applies to array and list workloads only", w.Name)
		}
	default:
		return fmt.Errorf("%s: unknown sort strategy %q", w.Name, w.Sort)
	}
	return nil
}
