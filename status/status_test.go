package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapCachedPointer(t *testing.T) {
	r := NewRegistry()

	a := r.Ints.Get("lifecycle.active")
	b := r.Ints.Get("lifecycle.active")
	if a != b {
		t.Fatal("Get returned different pointers for the same key")
	}

	a.Store(7)
	if b.Load() != 7 {
		t.Errorf("cached pointer load = %d, want 7", b.Load())
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get("pool.hits").Add(1)
			}
		}()
	}
	wg.Wait()

	if got := r.Ints.Get("pool.hits").Load(); got != 1600 {
		t.Errorf("concurrent adds = %d, want 1600", got)
	}
}

func TestRangeSortedOrder(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("c")
	r.Ints.Get("a")
	r.Ints.Get("b")

	var keys []string
	r.Ints.Range(func(key string, _ *atomic.Int64) {
		keys = append(keys, key)
	})
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("Range order = %v, want %v", keys, want)
		}
	}
}

func TestAtomicFloat(t *testing.T) {
	var f AtomicFloat
	f.Store(1.5)
	if f.Load() != 1.5 {
		t.Errorf("Load = %v, want 1.5", f.Load())
	}
	if got := f.Add(2.5); got != 4.0 {
		t.Errorf("Add = %v, want 4.0", got)
	}
}
