package scanner

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/picstock/picstock/internal/errs"
	"github.com/picstock/picstock/internal/inventory"
)

// statJob carries one classified path to a worker together with the
// slot its record is written into.
type statJob struct {
	category inventory.Category
	path     string
	slot     *inventory.FileRecord
}

// Collect stats every classified path and returns the records grouped
// by category. Workers write into pre-allocated per-index slots, so the
// result is independent of scheduling order. The first stat failure
// wins and aborts the whole collection.
func (s *Scanner) Collect(classified map[inventory.Category][]string) (map[inventory.Category][]inventory.FileRecord, error) {
	records := make(map[inventory.Category][]inventory.FileRecord, len(classified))

	var pendingJobs []statJob
	for category, paths := range classified {
		slots := make([]inventory.FileRecord, len(paths))
		records[category] = slots
		for i, path := range paths {
			pendingJobs = append(pendingJobs, statJob{
				category: category,
				path:     path,
				slot:     &slots[i],
			})
		}
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		firstErr  error
		found     int64
		totalSize int64
	)

	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	jobs := make(chan statJob)
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				// Keep draining after a failure so the producer
				// never blocks, but do no further I/O.
				if failed() {
					continue
				}

				info, err := os.Stat(job.path)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = errs.Classify("stat", job.path, err)
					}
					mu.Unlock()
					continue
				}

				*job.slot = inventory.FileRecord{
					Name: filepath.Base(job.path),
					Path: job.path,
					Size: info.Size(),
				}

				count := atomic.AddInt64(&found, 1)
				size := atomic.AddInt64(&totalSize, info.Size())
				if s.progress != nil {
					s.progress(string(job.category), job.path, int(count), size)
				}
			}
		}()
	}

	for _, job := range pendingJobs {
		jobs <- job
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return records, nil
}
