package squash

import "testing"

func TestBijectiveRoundTrip(t *testing.T) {
	for n := uint32(1); n < 5000; n++ {
		digits := encodeBijective(n)
		if len(digits) == 0 {
			t.Fatalf("encodeBijective(%d) produced an empty digit string", n)
		}
		got := decodeBijective(digits)
		if got != n {
			t.Fatalf("round trip of %d produced %d via digits %v", n, got, digits)
		}
	}
}

func TestBijectiveSmallVectors(t *testing.T) {
	vectors := []struct {
		n    uint32
		want []bijectiveDigit
	}{
		{1, []bijectiveDigit{digitA}},
		{2, []bijectiveDigit{digitB}},
		{3, []bijectiveDigit{digitA, digitA}},
		{4, []bijectiveDigit{digitB, digitA}},
		{5, []bijectiveDigit{digitA, digitB}},
		{6, []bijectiveDigit{digitB, digitB}},
	}
	for _, v := range vectors {
		got := encodeBijective(v.n)
		if len(got) != len(v.want) {
			t.Fatalf("encodeBijective(%d) = %v, want %v", v.n, got, v.want)
		}
		for i := range got {
			if got[i] != v.want[i] {
				t.Fatalf("encodeBijective(%d) = %v, want %v", v.n, got, v.want)
			}
		}
	}
}

func TestDecodeBijectiveEmpty(t *testing.T) {
	if got := decodeBijective(nil); got != 0 {
		t.Errorf("decodeBijective(nil) = %d, want 0", got)
	}
}

func TestEncodeBijectiveZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for encodeBijective(0)")
		}
	}()
	encodeBijective(0)
}
