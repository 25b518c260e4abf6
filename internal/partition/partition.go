// Package partition splits a fixed request total into per-worker assignments.
package partition

// Split divides total requests across concurrency workers. Every entry is
// total/concurrency or that value plus one, with the remainder going to the
// lowest-indexed workers, so the entries always sum to total and no two
// workers differ by more than one request.
//
// Split is pure. Callers validate concurrency >= 1 before dispatch; a
// non-positive concurrency returns nil.
func Split(total, concurrency int) []int {
	if concurrency < 1 || total < 0 {
		return nil
	}

	base := total / concurrency
	remainder := total % concurrency

	assignment := make([]int, concurrency)
	for i := range assignment {
		assignment[i] = base
		if i < remainder {
			assignment[i]++
		}
	}
	return assignment
}
