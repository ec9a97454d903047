// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel fans batch validation out over a bounded worker
// pool. Documents are independent units of work sharing only
// read-only inputs, so workers never coordinate; the caller performs
// the sequential reduction over the collected results.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"time"

	"phi-validate/internal/phi"
)

// Job is one file to validate.
type Job struct {
	Index int
	Path  string
}

// Result pairs a finished validation with its input position.
// Duration covers the full validation of one document and is
// surfaced to callers as the validation_ms metadata entry.
type Result struct {
	Index    int
	Result   phi.ValidationResult
	Duration time.Duration
}

// ValidateFunc validates a single document. Implementations must not
// panic and must translate every failure into the result's error
// fields.
type ValidateFunc func(path string) phi.ValidationResult

// WorkerPool manages parallel document validation.
type WorkerPool struct {
	workers  int
	validate ValidateFunc
	jobs     chan Job
	results  chan Result
	wg       sync.WaitGroup
}

// NewWorkerPool creates a pool with the given worker count; zero or
// negative means one worker per CPU.
func NewWorkerPool(workers int, validate ValidateFunc) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{
		workers:  workers,
		validate: validate,
		jobs:     make(chan Job, workers*2),
		results:  make(chan Result, workers*2),
	}
}

// Run validates every path and returns results in input order.
// Cancellation is coarse-grained: a canceled context stops scheduling
// new documents, but the documents already in flight run to
// completion. Canceled paths yield no result entry.
func (wp *WorkerPool) Run(ctx context.Context, paths []string) []phi.ValidationResult {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx)
	}

	go func() {
		defer close(wp.jobs)
		for i, path := range paths {
			select {
			case wp.jobs <- Job{Index: i, Path: path}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wp.wg.Wait()
		close(wp.results)
	}()

	indexed := make(map[int]phi.ValidationResult, len(paths))
	for res := range wp.results {
		if res.Result.Metadata != nil {
			res.Result.Metadata["validation_ms"] = res.Duration.Milliseconds()
		}
		indexed[res.Index] = res.Result
	}

	ordered := make([]phi.ValidationResult, 0, len(indexed))
	for i := range paths {
		if r, ok := indexed[i]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered
}

func (wp *WorkerPool) worker(ctx context.Context) {
	defer wp.wg.Done()
	for job := range wp.jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		start := time.Now()
		result := wp.validate(job.Path)
		wp.results <- Result{
			Index:    job.Index,
			Result:   result,
			Duration: time.Since(start),
		}
	}
}
