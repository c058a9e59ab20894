package dice

import (
	"math"
	"math/rand"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRegularDistribution(t *testing.T) {
	if got := ExpectedTotal(Regular); !almostEqual(got, 7.0) {
		t.Errorf("Regular expected total = %v, want 7.0", got)
	}
	if got := Variance(Regular); math.Abs(got-5.8333333333) > 1e-6 {
		t.Errorf("Regular variance = %v, want 5.8333", got)
	}
	if got := DoublesProbability(Regular); !almostEqual(got, 1.0/6.0) {
		t.Errorf("Regular doubles probability = %v, want 1/6", got)
	}
	dist := TotalDistribution(Regular)
	if !almostEqual(dist[7], 6.0/36.0) {
		t.Errorf("P(total=7) = %v, want 6/36", dist[7])
	}
	if !almostEqual(dist[2], 1.0/36.0) {
		t.Errorf("P(total=2) = %v, want 1/36", dist[2])
	}
}

func TestStableDistribution(t *testing.T) {
	dist := TotalDistribution(Stable)
	want := map[int]float64{6: 0.25, 7: 0.5, 8: 0.25}
	if len(dist) != len(want) {
		t.Fatalf("Stable distribution has %d totals, want %d", len(dist), len(want))
	}
	for total, p := range want {
		if !almostEqual(dist[total], p) {
			t.Errorf("Stable P(total=%d) = %v, want %v", total, dist[total], p)
		}
	}
	if got := ExpectedTotal(Stable); !almostEqual(got, 7.0) {
		t.Errorf("Stable expected total = %v, want 7.0", got)
	}
	if got := DoublesProbability(Stable); !almostEqual(got, 0.5) {
		t.Errorf("Stable doubles probability = %v, want 0.5", got)
	}
}

func TestVolatileDistribution(t *testing.T) {
	dist := TotalDistribution(Volatile)
	want := map[int]float64{2: 0.25, 7: 0.5, 12: 0.25}
	for total, p := range want {
		if !almostEqual(dist[total], p) {
			t.Errorf("Volatile P(total=%d) = %v, want %v", total, dist[total], p)
		}
	}
	if got := ExpectedTotal(Volatile); !almostEqual(got, 7.0) {
		t.Errorf("Volatile expected total = %v, want 7.0", got)
	}
	if got := DoublesProbability(Volatile); !almostEqual(got, 0.5) {
		t.Errorf("Volatile doubles probability = %v, want 0.5", got)
	}
}

func TestRollStaysOnLegalFaces(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cases := []struct {
		kind  Kind
		legal map[int]bool
	}{
		{Regular, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true}},
		{Stable, map[int]bool{3: true, 4: true}},
		{Volatile, map[int]bool{1: true, 6: true}},
	}
	for _, tc := range cases {
		p := &Pair{Kind: tc.kind}
		for i := 0; i < 200; i++ {
			total, isDouble := p.Roll(rng)
			if !tc.legal[p.Die1] || !tc.legal[p.Die2] {
				t.Fatalf("%v rolled illegal faces %d,%d", tc.kind, p.Die1, p.Die2)
			}
			if total != p.Die1+p.Die2 {
				t.Fatalf("total %d != %d+%d", total, p.Die1, p.Die2)
			}
			if isDouble != (p.Die1 == p.Die2) {
				t.Fatalf("double flag wrong for %d,%d", p.Die1, p.Die2)
			}
		}
	}
}

func TestKindCycles(t *testing.T) {
	if Regular.Next() != Stable || Stable.Next() != Volatile || Volatile.Next() != Regular {
		t.Error("Kind.Next should cycle Regular -> Stable -> Volatile -> Regular")
	}
}
