package squash

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRLERoundTrip(t *testing.T) {
	vectors := [][]byte{
		{},
		{1, 2, 3},
		{0, 0, 0},
		{0},
		{5, 0, 0, 0, 0, 0, 0, 0, 9, 0, 0, 1},
		bytes.Repeat([]byte{0}, 500),
	}
	for _, v := range vectors {
		enc := runLengthEncode(v)
		got := runLengthDecode(enc)
		if !bytes.Equal(got, v) {
			t.Errorf("round trip of %v produced %v", v, got)
		}
	}
}

func TestRLEThreeZeros(t *testing.T) {
	enc := runLengthEncode([]byte{0, 0, 0})
	for _, sym := range enc {
		if !sym.isRun {
			t.Fatalf("expected only run tokens, got literal %d", sym.lit)
		}
	}
	digits := make([]bijectiveDigit, len(enc))
	for i, sym := range enc {
		digits[i] = sym.digit
	}
	if got := decodeBijective(digits); got != 3 {
		t.Errorf("decodeBijective(%v) = %d, want 3", digits, got)
	}
}

// TestRLEEncodingShape checks the exact symbol sequence produced for a
// small input, rather than just round-tripping: literal(1), the bijective
// digits for a run of three zeros, literal(2).
func TestRLEEncodingShape(t *testing.T) {
	got := runLengthEncode([]byte{1, 0, 0, 0, 2})
	want := []rleSymbol{
		literalSymbol(1),
		runSymbol(digitA),
		runSymbol(digitA),
		literalSymbol(2),
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(rleSymbol{})); diff != "" {
		t.Errorf("runLengthEncode shape mismatch (-want +got):\n%s", diff)
	}
}

func TestRLENoSpuriousRunForNonZero(t *testing.T) {
	in := []byte{1, 2, 3, 4}
	enc := runLengthEncode(in)
	if len(enc) != len(in) {
		t.Fatalf("runLengthEncode(%v) = %v, want one literal per byte", in, enc)
	}
	for i, sym := range enc {
		if sym.isRun || sym.lit != in[i] {
			t.Errorf("symbol %d = %+v, want literal %d", i, sym, in[i])
		}
	}
}
