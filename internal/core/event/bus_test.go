package event

import "testing"

func TestFlushDeliversInEmitOrder(t *testing.T) {
	b := NewBus()
	var got []CueKind
	Subscribe(b, func(c Cue) { got = append(got, c.Kind) })

	Emit(b, Cue{Kind: CueMonsterAlerted})
	Emit(b, Cue{Kind: CueAttackLanded})
	if len(got) != 0 {
		t.Fatal("events delivered before flush")
	}
	if n := Pending[Cue](b); n != 2 {
		t.Fatalf("pending = %d, want 2", n)
	}

	b.Flush()
	if len(got) != 2 || got[0] != CueMonsterAlerted || got[1] != CueAttackLanded {
		t.Fatalf("got %v", got)
	}

	b.Flush()
	if len(got) != 2 {
		t.Fatal("events redelivered on second flush")
	}
}

func TestDiscard(t *testing.T) {
	b := NewBus()
	calls := 0
	Subscribe(b, func(LevelChanged) { calls++ })
	Emit(b, LevelChanged{Depth: 2})
	b.Discard()
	b.Flush()
	if calls != 0 {
		t.Fatalf("discarded event delivered %d times", calls)
	}
}
