package core

import "testing"

func TestEnsureLen(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("length = %d, want 6", len(out))
	}
	if &out[0] != &buf[0] {
		t.Fatal("capacity 8 should be reused for length 6")
	}

	out = EnsureLen(buf, 16)
	if len(out) != 16 {
		t.Fatalf("length = %d, want 16", len(out))
	}
	if &out[0] == &buf[0] {
		t.Fatal("capacity 8 cannot back length 16")
	}

	if out := EnsureLen(buf, 0); len(out) != 0 {
		t.Fatalf("length = %d, want 0", len(out))
	}
	if out := EnsureLen(nil, 3); len(out) != 3 {
		t.Fatalf("length = %d, want 3", len(out))
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, -2, 3}
	Zero(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("index %d: got %v, want 0", i, v)
		}
	}
}

func TestCopyInto(t *testing.T) {
	dst := []float64{9, 9, 9, 9}
	if n := CopyInto(dst, []float64{1, 2}); n != 2 {
		t.Fatalf("copied %d, want 2", n)
	}
	if dst[0] != 1 || dst[1] != 2 || dst[2] != 9 {
		t.Fatalf("dst = %v", dst)
	}

	short := []float64{0, 0}
	if n := CopyInto(short, []float64{5, 6, 7}); n != 2 {
		t.Fatalf("copied %d, want 2", n)
	}
	if short[0] != 5 || short[1] != 6 {
		t.Fatalf("short = %v", short)
	}
}
