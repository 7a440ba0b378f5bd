package model

import "fmt"

// Algorithm identifies one of the built-in scheduling policies.
type Algorithm string

const (
	// AlgorithmPriority runs the highest-priority eligible task first.
	AlgorithmPriority Algorithm = "priority"
	// AlgorithmEDF runs the eligible task with the earliest deadline first.
	AlgorithmEDF Algorithm = "edf"
	// AlgorithmFCFS runs the task that became eligible earliest first.
	AlgorithmFCFS Algorithm = "fcfs"
)

// Algorithms returns the closed set of built-in algorithms.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmPriority, AlgorithmEDF, AlgorithmFCFS}
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	return string(a)
}

// Valid reports whether a names a built-in algorithm.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmPriority, AlgorithmEDF, AlgorithmFCFS:
		return true
	}
	return false
}

// ParseAlgorithm converts a name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown algorithm %q (expected priority, edf, or fcfs)", s)
	}
	return a, nil
}
