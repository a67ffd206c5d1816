package model

// Amount is a satoshi or token atom quantity.
type Amount interface {
	~int64 | ~uint64
}

// Allocation is the amount sent to one script.
type Allocation[T Amount] struct {
	Script Script
	Amount T
}

// Allocations maps scripts to amounts, keeping the order in which scripts first appeared.
type Allocations[T Amount] []Allocation[T]

// Add accumulates amount into the entry for script, appending a new entry on first sight.
func (a *Allocations[T]) Add(script Script, amount T) {
	for i := range *a {
		if (*a)[i].Script == script {
			(*a)[i].Amount += amount
			return
		}
	}
	*a = append(*a, Allocation[T]{Script: script, Amount: amount})
}

// Get returns the amount recorded for script.
func (a Allocations[T]) Get(script Script) (T, bool) {
	for _, alloc := range a {
		if alloc.Script == script {
			return alloc.Amount, true
		}
	}
	var zero T
	return zero, false
}

// Total sums all amounts.
func (a Allocations[T]) Total() T {
	var total T
	for _, alloc := range a {
		total += alloc.Amount
	}
	return total
}
