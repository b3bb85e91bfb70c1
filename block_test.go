package squash

import "bytes"
import "testing"

func TestEncodeDecodeBlockRoundTrip(t *testing.T) {
	vectors := [][]byte{
		{},
		[]byte("a"),
		[]byte("banana banana banana"),
		[]byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps again"),
		bytes.Repeat([]byte("ab"), 2000),
	}
	cfg := DefaultCoderConfig
	for _, v := range vectors {
		body := encodeBlock(cfg, v)
		got := decodeBlock(cfg, body)
		if !bytes.Equal(got, v) {
			t.Errorf("round trip of %d-byte block produced %d bytes that differ", len(v), len(got))
		}
	}
}

func TestEncodeDecodeBlockRandomish(t *testing.T) {
	cfg := DefaultCoderConfig
	x := uint32(42)
	plaintext := make([]byte, 50000)
	for i := range plaintext {
		x = x*1664525 + 1013904223
		plaintext[i] = byte(x >> 24)
	}
	body := encodeBlock(cfg, plaintext)
	got := decodeBlock(cfg, body)
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip of random block failed, got %d bytes want %d", len(got), len(plaintext))
	}
}

func TestDecodeBlockTooShortPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for short block body")
		}
	}()
	decodeBlock(DefaultCoderConfig, []byte{1, 2, 3})
}
