package seeded

import "testing"

func TestValueDeterminism(t *testing.T) {
	for i := 0; i < 100; i++ {
		a := Value("bot-alpha", 7)
		b := Value("bot-alpha", 7)
		if a != b {
			t.Fatalf("Value not stable: %v != %v", a, b)
		}
	}
}

func TestValueRange(t *testing.T) {
	ids := []string{"", "a", "bot-1", "Lucie Marchand", "R. Fillon 12"}
	for _, id := range ids {
		for ev := 1; ev <= 15; ev++ {
			v := Value(id, ev)
			if v < 0 || v >= 1 {
				t.Fatalf("Value(%q, %d) = %v out of [0,1)", id, ev, v)
			}
		}
	}
}

func TestValueVariesByKey(t *testing.T) {
	if Value("bot-1", 3) == Value("bot-2", 3) && Value("bot-1", 4) == Value("bot-2", 4) {
		t.Fatal("distinct participants collapse to identical values")
	}
	if Value("bot-1", 3) == Value("bot-1", 4) && Value("bot-1", 5) == Value("bot-1", 6) {
		t.Fatal("distinct events collapse to identical values")
	}
}

func TestOffsetBounds(t *testing.T) {
	const span = 20
	for ev := 1; ev <= 50; ev++ {
		off := Offset("bot-offset", ev, span)
		if off < -span/2 || off >= span/2 {
			t.Fatalf("Offset(ev=%d) = %d out of [-%d, %d)", ev, off, span/2, span/2)
		}
	}
	if Offset("anyone", 1, 0) != 0 {
		t.Fatal("zero span should yield zero offset")
	}
}
