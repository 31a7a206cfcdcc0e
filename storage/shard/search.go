package shard

import (
	"os"
	"path/filepath"
	"sync"
)

// maxParallelSearch bounds the number of directory subtrees walked
// concurrently via a goroutine semaphore.
const maxParallelSearch = 512

// Search returns every key stored under root that begins with prefix, in
// no particular order. An empty prefix lists every key. A root or
// intermediate directory that does not exist yields an empty result, not
// an error — matching a fresh store that has never been written to.
func Search(root, prefix string) ([]string, error) {
	runes := []rune(prefix)
	even := len(runes) - len(runes)%2
	floorPrefix := string(runes[:even])

	dir := root
	var oddFilter rune
	var hasFilter bool
	if prefix != "" {
		dir, oddFilter, hasFilter = searchBase(root, prefix)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil
	}

	var (
		wg      sync.WaitGroup
		sem     = make(chan struct{}, maxParallelSearch)
		mu      sync.Mutex
		results []string
	)

	for _, entry := range entries {
		name := entry.Name()

		if !entry.IsDir() {
			// An exact match: the search prefix is itself a complete
			// stored key. Only possible when there is no odd-length
			// filter in play (every character of prefix was already
			// consumed by a full chunk).
			if !hasFilter && name == leafName {
				mu.Lock()
				results = append(results, floorPrefix)
				mu.Unlock()
			}
			continue
		}

		if hasFilter {
			first := []rune(name)
			if len(first) == 0 || first[0] != oddFilter {
				continue
			}
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(childDir, childName string) {
			defer wg.Done()
			defer func() { <-sem }()

			chains := walk(childDir, []string{childName})

			mu.Lock()
			for _, segments := range chains {
				results = append(results, keyFromLeaf(floorPrefix, segments))
			}
			mu.Unlock()
		}(filepath.Join(dir, name), name)
	}

	wg.Wait()
	return results, nil
}

// walk recursively collects the chunk-segment chain (relative to the
// directory that searchBase/Search started from) for every leaf file
// found under path, sequentially — parallelism is applied only at the
// top-level fan-out in Search.
func walk(path string, prefixSegments []string) [][]string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}

	var results [][]string
	for _, entry := range entries {
		if entry.IsDir() {
			child := make([]string, len(prefixSegments), len(prefixSegments)+1)
			copy(child, prefixSegments)
			child = append(child, entry.Name())
			results = append(results, walk(filepath.Join(path, entry.Name()), child)...)
			continue
		}
		if entry.Name() == leafName {
			results = append(results, prefixSegments)
		}
	}
	return results
}
