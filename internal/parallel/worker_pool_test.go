// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"phi-validate/internal/phi"
)

func pathResult(path string) phi.ValidationResult {
	return phi.ValidationResult{Filepath: path, IsValid: true}
}

func TestRunPreservesInputOrder(t *testing.T) {
	paths := make([]string, 50)
	for i := range paths {
		paths[i] = fmt.Sprintf("/docs/file_%02d.pdf", i)
	}

	pool := NewWorkerPool(8, func(path string) phi.ValidationResult {
		time.Sleep(time.Millisecond)
		return pathResult(path)
	})
	results := pool.Run(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, r := range results {
		if r.Filepath != paths[i] {
			t.Errorf("result[%d] = %q, want %q", i, r.Filepath, paths[i])
		}
	}
}

func TestRunSingleWorker(t *testing.T) {
	paths := []string{"/a.docx", "/b.docx", "/c.docx"}
	pool := NewWorkerPool(1, pathResult)
	results := pool.Run(context.Background(), paths)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
}

func TestRunRecordsDurationMetadata(t *testing.T) {
	pool := NewWorkerPool(2, func(path string) phi.ValidationResult {
		time.Sleep(5 * time.Millisecond)
		return phi.ValidationResult{
			Filepath: path,
			Metadata: map[string]any{"format": ".docx"},
		}
	})
	results := pool.Run(context.Background(), []string{"/a.docx", "/b.docx"})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		ms, ok := r.Metadata["validation_ms"].(int64)
		if !ok {
			t.Fatalf("result %q metadata missing validation_ms: %v", r.Filepath, r.Metadata)
		}
		if ms < 0 {
			t.Errorf("result %q validation_ms = %d, want >= 0", r.Filepath, ms)
		}
		if r.Metadata["format"] != ".docx" {
			t.Errorf("result %q lost existing metadata: %v", r.Filepath, r.Metadata)
		}
	}
}

func TestRunNilMetadataLeftAlone(t *testing.T) {
	pool := NewWorkerPool(1, pathResult)
	results := pool.Run(context.Background(), []string{"/a.docx"})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Metadata != nil {
		t.Errorf("metadata = %v, want nil preserved", results[0].Metadata)
	}
}

func TestRunEmptyInput(t *testing.T) {
	pool := NewWorkerPool(4, pathResult)
	if results := pool.Run(context.Background(), nil); len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestRunValidatesEveryPathExactlyOnce(t *testing.T) {
	var calls atomic.Int64
	paths := make([]string, 200)
	for i := range paths {
		paths[i] = fmt.Sprintf("/docs/%d.eml", i)
	}

	pool := NewWorkerPool(16, func(path string) phi.ValidationResult {
		calls.Add(1)
		return pathResult(path)
	})
	results := pool.Run(context.Background(), paths)

	if got := calls.Load(); got != 200 {
		t.Errorf("validate called %d times, want 200", got)
	}
	if len(results) != 200 {
		t.Errorf("got %d results, want 200", len(results))
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	var once atomic.Bool
	paths := make([]string, 100)
	for i := range paths {
		paths[i] = fmt.Sprintf("/docs/%03d.pdf", i)
	}

	pool := NewWorkerPool(2, func(path string) phi.ValidationResult {
		if once.CompareAndSwap(false, true) {
			close(started)
		}
		time.Sleep(5 * time.Millisecond)
		return pathResult(path)
	})

	go func() {
		<-started
		cancel()
	}()

	results := pool.Run(ctx, paths)
	if len(results) == len(paths) {
		t.Error("cancellation should abandon queued documents")
	}
	for i := 1; i < len(results); i++ {
		// Whatever completed still comes back in input order.
		if results[i-1].Filepath >= results[i].Filepath {
			t.Errorf("results out of order: %q before %q", results[i-1].Filepath, results[i].Filepath)
		}
	}
}

func TestNewWorkerPoolDefaultsWorkers(t *testing.T) {
	pool := NewWorkerPool(0, pathResult)
	if pool.workers <= 0 {
		t.Errorf("workers = %d, want positive default", pool.workers)
	}
}
