package queue

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestFIFO(t *testing.T) {
	q := New[int]()
	for i := 0; i < 100; i++ {
		q.Push(i)
	}
	for i := 0; i < 100; i++ {
		v, ok := q.TryPop()
		if !ok || v != i {
			t.Fatalf("TryPop = %d, %v; want %d", v, ok, i)
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Error("expected empty queue")
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d, want 0", q.Len())
	}
}

func TestPushReturnsBacklog(t *testing.T) {
	q := New[string]()
	if n := q.Push("a"); n != 1 {
		t.Errorf("Push = %d, want 1", n)
	}
	if n := q.Push("b"); n != 2 {
		t.Errorf("Push = %d, want 2", n)
	}
}

func TestPopBlocksUntilPush(t *testing.T) {
	q := New[int]()
	got := make(chan int, 1)
	go func() {
		v, err := q.Pop(context.Background())
		if err == nil {
			got <- v
		}
	}()

	time.Sleep(20 * time.Millisecond)
	q.Push(7)

	select {
	case v := <-got:
		if v != 7 {
			t.Errorf("Pop = %d, want 7", v)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Pop")
	}
}

func TestPopContextCancel(t *testing.T) {
	q := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := q.Pop(ctx); err != context.DeadlineExceeded {
		t.Errorf("Pop error = %v, want deadline exceeded", err)
	}
}

func TestConcurrentConsumersSeeEveryItem(t *testing.T) {
	const n = 1000
	q := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var mu sync.Mutex
	seen := make(map[int]bool)
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, err := q.Pop(ctx)
				if err != nil {
					return
				}
				mu.Lock()
				seen[v] = true
				done := len(seen) == n
				mu.Unlock()
				if done {
					cancel()
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		q.Push(i)
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("consumers saw %d items, want %d", len(seen), n)
	}
}
