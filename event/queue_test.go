package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/glyphfall/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Push(Intent{Type: IntentResize, Width: 80, Height: 24})
	q.Push(Intent{Type: IntentReplay})
	q.Push(Intent{Type: IntentQuit})

	if q.Len() != 3 {
		t.Errorf("Expected 3 pending, got %d", q.Len())
	}

	got := q.Consume()
	want := []IntentType{IntentResize, IntentReplay, IntentQuit}
	if len(got) != len(want) {
		t.Fatalf("Expected %d intents, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Type != w {
			t.Errorf("Intent %d: expected %v, got %v", i, w, got[i].Type)
		}
	}
	if got[0].Width != 80 || got[0].Height != 24 {
		t.Errorf("Expected resize payload 80x24, got %dx%d", got[0].Width, got[0].Height)
	}

	if q.Consume() != nil {
		t.Error("Expected empty queue after consume")
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewQueue()
	total := parameter.IntentQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(Intent{Type: IntentResize, Width: i})
	}

	got := q.Consume()
	if len(got) != parameter.IntentQueueSize {
		t.Fatalf("Expected %d intents, got %d", parameter.IntentQueueSize, len(got))
	}
	if got[0].Width != 10 {
		t.Errorf("Expected oldest surviving width 10, got %d", got[0].Width)
	}
	if got[len(got)-1].Width != total-1 {
		t.Errorf("Expected newest width %d, got %d", total-1, got[len(got)-1].Width)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers, each = 4, 8

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Push(Intent{Type: IntentReplay})
			}
		}()
	}
	wg.Wait()

	if got := len(q.Consume()); got != producers*each {
		t.Errorf("Expected %d intents, got %d", producers*each, got)
	}
}

func TestQueueReadySignal(t *testing.T) {
	q := NewQueue()
	select {
	case <-q.Ready():
		t.Fatal("Expected no signal before push")
	default:
	}

	q.Push(Intent{Type: IntentReplay})
	q.Push(Intent{Type: IntentReplay})
	select {
	case <-q.Ready():
	default:
		t.Fatal("Expected signal after push")
	}
}

func TestIntentTypeString(t *testing.T) {
	if IntentReplay.String() != "replay" || IntentType(99).String() != "unknown" {
		t.Error("Unexpected intent names")
	}
}
