package squash

import "encoding/binary"

// symbolToCode maps an rleSymbol onto the arithmetic coder's 257-symbol
// alphabet: literal bytes use their own value (1..255, since a literal 0
// never survives run-length encoding), RUNA uses 0, RUNB uses 256.
func symbolToCode(s rleSymbol) uint32 {
	if s.isRun {
		if s.digit == digitA {
			return 0
		}
		return 256
	}
	return uint32(s.lit)
}

// codeToSymbol is the inverse of symbolToCode.
func codeToSymbol(code uint32) rleSymbol {
	switch code {
	case 0:
		return runSymbol(digitA)
	case 256:
		return runSymbol(digitB)
	default:
		return literalSymbol(byte(code))
	}
}

// encodeBlock runs the full forward pipeline -- BWT, MTF, zero-run RLE,
// adaptive arithmetic coding -- over a single independent block of
// plaintext no larger than blockSize, and frames the result with an
// 8-byte front matter: end_index and rle length, both little-endian
// uint32, followed by the coded payload.
func encodeBlock(cfg CoderConfig, plaintext []byte) []byte {
	bwt := forwardBWT(plaintext)
	mtf := mtfForward(bwt.permuted)
	rle := runLengthEncode(mtf)

	enc := newArithmeticEncoder(cfg)
	for _, sym := range rle {
		enc.encode(symbolToCode(sym))
	}
	payload := enc.finish()

	body := make([]byte, 8+len(payload))
	binary.LittleEndian.PutUint32(body[0:4], uint32(bwt.endIndex))
	binary.LittleEndian.PutUint32(body[4:8], uint32(len(rle)))
	copy(body[8:], payload)
	return body
}

// decodeBlock is the inverse of encodeBlock. It panics (to be recovered by
// the caller, normally a Reader method) if body is too short to contain a
// front matter header.
func decodeBlock(cfg CoderConfig, body []byte) []byte {
	if len(body) < 8 {
		panicf("block body too short: %d bytes", len(body))
	}
	endIndex := binary.LittleEndian.Uint32(body[0:4])
	rleLen := binary.LittleEndian.Uint32(body[4:8])
	payload := body[8:]

	dec := newArithmeticDecoder(cfg, payload)
	rle := make([]rleSymbol, rleLen)
	for i := range rle {
		rle[i] = codeToSymbol(dec.decode())
	}

	mtf := runLengthDecode(rle)
	permuted := mtfInverse(mtf)
	return inverseBWT(permuted, int(endIndex))
}
