package nb2md

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire() *Converter
	Release(*Converter)
	Size() int
} = (*ConverterPool)(nil)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)
	auto := min(max(gomaxprocs, MinPoolSize), MaxPoolSize)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit takes priority", 4, 4},
		{"explicit above cap is honored", 64, 64},
		{"zero uses GOMAXPROCS", 0, auto},
		{"negative uses GOMAXPROCS", -3, auto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestConverterPool_Size(t *testing.T) {
	t.Parallel()

	if got := NewConverterPool(3).Size(); got != 3 {
		t.Errorf("Size() = %d, want 3", got)
	}
	if got := NewConverterPool(0).Size(); got != MinPoolSize {
		t.Errorf("Size() = %d, want %d", got, MinPoolSize)
	}
}

func TestConverterPool_ReusesReleased(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)
	first := pool.Acquire()
	pool.Release(first)

	if second := pool.Acquire(); second != first {
		t.Error("Acquire() after Release() created a new converter, want reuse")
	}
}

func TestConverterPool_BlocksAtCapacity(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)
	held := pool.Acquire()

	acquired := make(chan *Converter)
	go func() { acquired <- pool.Acquire() }()

	select {
	case <-acquired:
		t.Fatal("Acquire() returned while pool was exhausted")
	case <-time.After(50 * time.Millisecond):
	}

	pool.Release(held)
	select {
	case c := <-acquired:
		if c != held {
			t.Error("blocked Acquire() got a new converter, want the released one")
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire() still blocked after Release()")
	}
}

func TestConverterPool_Concurrent(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(4)
	var wg sync.WaitGroup
	errs := make(chan error, 16)

	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv := pool.Acquire()
			defer pool.Release(conv)

			if _, err := conv.Convert(context.Background(), Input{
				Name:     "my_notebook.ipynb",
				Notebook: []byte(myNotebook),
			}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Convert() unexpected error: %v", err)
	}
}
