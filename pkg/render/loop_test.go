package render

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoop_DrawsOnlyWhenDirty(t *testing.T) {
	l := NewLoop(time.Millisecond, false)
	ctx, cancel := context.WithCancel(context.Background())
	var draws atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- l.Run(ctx, func() error {
			draws.Add(1)
			return nil
		})
	}()

	time.Sleep(30 * time.Millisecond)
	if n := draws.Load(); n != 1 {
		t.Fatalf("idle loop drew %d frames, want 1", n)
	}

	l.Invalidate()
	deadline := time.Now().Add(time.Second)
	for draws.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if n := draws.Load(); n != 2 {
		t.Fatalf("expected redraw after Invalidate, got %d frames", n)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned %v after cancel", err)
	}
	if l.Frames() != 2 {
		t.Errorf("Frames() = %d", l.Frames())
	}
}

func TestLoop_Continuous(t *testing.T) {
	l := NewLoop(time.Millisecond, true)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := l.Run(ctx, func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	if l.Frames() < 3 {
		t.Errorf("continuous loop drew only %d frames", l.Frames())
	}
}

func TestLoop_DrawErrorStops(t *testing.T) {
	boom := errors.New("boom")
	l := NewLoop(time.Millisecond, true)
	err := l.Run(context.Background(), func() error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected draw error, got %v", err)
	}
}

func TestLoop_Step(t *testing.T) {
	l := NewLoop(0, false)
	if l.Interval() != DefaultFrameInterval {
		t.Fatalf("interval = %v", l.Interval())
	}
	var n int
	draw := func() error { n++; return nil }

	if drew, _ := l.Step(draw); !drew {
		t.Fatal("first step should draw")
	}
	if drew, _ := l.Step(draw); drew {
		t.Fatal("clean frame should be skipped")
	}
	l.Invalidate()
	l.Invalidate()
	if drew, _ := l.Step(draw); !drew || n != 2 {
		t.Fatalf("invalidated frame: drew=%v n=%d", drew, n)
	}
	if l.Frames() != 2 {
		t.Errorf("Frames() = %d", l.Frames())
	}
}
