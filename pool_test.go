package mdlayout

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire(context.Context) (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

func textPoolOptions() []Option {
	return []Option{WithBackend(BackendText), WithTextOutput(io.Discard), WithColumns(40)}
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit can exceed max",
			workers: 16,
			want:    16,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
		{
			name:    "negative uses auto calculation",
			workers: -3,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
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

func TestNewConverterPool_Size(t *testing.T) {
	t.Parallel()

	for _, n := range []int{-1, 0, 1, 3} {
		pool := NewConverterPool(n)
		want := max(n, 1)
		if got := pool.Size(); got != want {
			t.Errorf("NewConverterPool(%d).Size() = %d, want %d", n, got, want)
		}
		if err := pool.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pool := NewConverterPool(2, textPoolOptions()...)
	defer pool.Close()

	c1, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	c2, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if c1 == c2 {
		t.Error("expected different converter instances")
	}

	pool.Release(c1)
	c3, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if c3 != c1 {
		t.Error("expected to get back released converter")
	}
	pool.Release(c2)
	pool.Release(c3)
}

func TestConverterPool_AcquireWaits(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, textPoolOptions()...)
	defer pool.Close()

	held, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	t.Run("context deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if _, err := pool.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Acquire() error = %v, want DeadlineExceeded", err)
		}
	})

	t.Run("release wakes waiter", func(t *testing.T) {
		got := make(chan *Converter, 1)
		go func() {
			c, err := pool.Acquire(context.Background())
			if err != nil {
				t.Errorf("Acquire() error = %v", err)
			}
			got <- c
		}()

		time.Sleep(10 * time.Millisecond)
		pool.Release(held)

		select {
		case c := <-got:
			if c != held {
				t.Error("waiter received a different converter")
			}
		case <-time.After(5 * time.Second):
			t.Fatal("waiter was not woken by Release")
		}
	})
}

func TestConverterPool_CreateError(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithBackend("postscript"))
	defer pool.Close()

	for range 2 {
		if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrUnknownBackend) {
			t.Errorf("Acquire() error = %v, want ErrUnknownBackend", err)
		}
	}
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2, textPoolOptions()...)

	c, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	// Release after close is a no-op.
	pool.Release(c)

	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
}

func TestConverterPool_Concurrent(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(3, textPoolOptions()...)
	defer pool.Close()

	input := Input{Chapters: []Chapter{{Markdown: "# Shared\n\nSome text to wrap.\n"}}}
	var wg sync.WaitGroup
	errs := make(chan error, 12)
	for range 12 {
		wg.Go(func() {
			c, err := pool.Acquire(context.Background())
			if err != nil {
				errs <- err
				return
			}
			defer pool.Release(c)
			if _, err := c.Convert(context.Background(), input); err != nil {
				errs <- err
			}
		})
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent conversion error = %v", err)
	}
}
