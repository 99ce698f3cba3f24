// Cinelex - Film Metadata Preparation and Lexicon Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelex

package cache

import (
	"strconv"
	"strings"
	"sync"
	"testing"
)

func TestLRU_BasicOperations(t *testing.T) {
	c := NewLRU[string](3)

	c.Add("cats", "cat")
	c.Add("ran", "run")
	c.Add("geese", "goose")

	for key, want := range map[string]string{"cats": "cat", "ran": "run", "geese": "goose"} {
		got, found := c.Get(key)
		if !found {
			t.Errorf("Expected to find key %q", key)
			continue
		}
		if got != want {
			t.Errorf("Get(%q) = %q, want %q", key, got, want)
		}
	}

	if c.Len() != 3 {
		t.Errorf("Expected len 3, got %d", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU[int](3)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	// Access 'a' to make it most recently used
	c.Get("a")

	// Should evict 'b'
	c.Add("d", 4)

	if _, found := c.Get("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := c.Get(key); !found {
			t.Errorf("Expected %q to be present", key)
		}
	}
}

func TestLRU_UpdateExisting(t *testing.T) {
	c := NewLRU[int](2)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("a", 10)
	c.Add("c", 3) // evicts b, a was refreshed

	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("Get(a) = %d, want 10", v)
	}
	if _, found := c.Get("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c := NewLRU[int](0)

	c.Add("a", 1)
	c.Add("b", 2)

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
	c.Add("z", 26)
	if v, ok := c.Get("z"); !ok || v != 26 {
		t.Error("cache unusable after Clear")
	}
}

func TestLRU_GetOrCompute(t *testing.T) {
	c := NewLRU[string](10)
	calls := 0
	upper := func(s string) string {
		calls++
		return strings.ToUpper(s)
	}

	for i := 0; i < 3; i++ {
		if got := c.GetOrCompute("wolf", upper); got != "WOLF" {
			t.Fatalf("GetOrCompute = %q, want WOLF", got)
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.Size != 1 {
		t.Errorf("Stats = %+v, want 2 hits, 1 miss, size 1", stats)
	}
	if rate := stats.HitRate(); rate < 66 || rate > 67 {
		t.Errorf("HitRate = %f, want ~66.7", rate)
	}
}

func TestStats_HitRateEmpty(t *testing.T) {
	if rate := (Stats{}).HitRate(); rate != 0 {
		t.Errorf("HitRate = %f, want 0", rate)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](100)
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := strconv.Itoa((g * i) % 150)
				c.GetOrCompute(key, func(string) int { return i })
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len = %d exceeds capacity 100", c.Len())
	}
}
