package solver

import (
	"sync"

	"github.com/alexiusacademia/goframe/internal/frame"
)

// computeAll derives the matrices of every element. Each element only reads
// its own state, so the work is split across up to workers goroutines; the
// results are returned in element order.
func computeAll(elements []*frame.Element, workers int) ([]*frame.LocalMatrices, error) {
	results := make([]*frame.LocalMatrices, len(elements))
	errs := make([]error, len(elements))

	if workers <= 1 || len(elements) < 2 {
		for i, e := range elements {
			results[i], errs[i] = e.ComputeLocalMatrices(e.Loads)
			if errs[i] != nil {
				return nil, errs[i]
			}
		}
		return results, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				e := elements[idx]
				results[idx], errs[idx] = e.ComputeLocalMatrices(e.Loads)
			}
		}()
	}
	for i := range elements {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
