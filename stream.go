package squash

import (
	"encoding/binary"
	"io"
)

// headerSize is the fixed-size stream header: magic (4) + version (1) +
// CoderConfig (12, three little-endian uint32s).
const headerSize = 4 + 1 + 12

// Writer compresses a stream of bytes written to it, splitting the input
// into independent blockSize-sized blocks as it goes. The zero value is not
// usable; construct one with NewWriter or NewWriterConfig.
type Writer struct {
	// InputOffset is the number of plaintext bytes written so far.
	InputOffset int64
	// OutputOffset is the number of compressed bytes written to the
	// underlying writer so far.
	OutputOffset int64

	wr       io.Writer
	cfg      CoderConfig
	err      error
	buf      []byte
	wroteHdr bool
}

// NewWriter creates a Writer using DefaultCoderConfig.
func NewWriter(w io.Writer) *Writer {
	return NewWriterConfig(w, DefaultCoderConfig)
}

// NewWriterConfig creates a Writer using the given arithmetic coder
// configuration; cfg is written into the stream header so that any Reader
// can detect a mismatch.
func NewWriterConfig(w io.Writer, cfg CoderConfig) *Writer {
	zw := &Writer{cfg: cfg}
	zw.Reset(w)
	return zw
}

// Reset discards the Writer's state and configures it to write to w,
// keeping the coder configuration it was constructed with.
func (zw *Writer) Reset(w io.Writer) {
	cfg := zw.cfg
	*zw = Writer{wr: w, cfg: cfg}
}

func (zw *Writer) mustWrite(b []byte) {
	n, err := zw.wr.Write(b)
	zw.OutputOffset += int64(n)
	if err != nil {
		panic(err)
	}
}

func (zw *Writer) writeHeader() {
	var hdr [headerSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], magicNumber)
	hdr[4] = fileVersion
	binary.LittleEndian.PutUint32(hdr[5:9], zw.cfg.FrequencyMemory)
	binary.LittleEndian.PutUint32(hdr[9:13], zw.cfg.FrequencyPadding)
	binary.LittleEndian.PutUint32(hdr[13:17], zw.cfg.RecalculationFrequency)
	zw.mustWrite(hdr[:])
}

func (zw *Writer) flushBlock(block []byte) {
	body := encodeBlock(zw.cfg, block)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(body)))
	zw.mustWrite(lenBuf[:])
	zw.mustWrite(body)
}

// Write buffers p and compresses it in blockSize-sized chunks as enough
// data accumulates. It always consumes all of p (or panics / returns a
// non-nil error), matching io.Writer's contract.
func (zw *Writer) Write(p []byte) (n int, err error) {
	if zw.err != nil {
		return 0, zw.err
	}
	if zw.wr == nil {
		return 0, ErrClosed
	}
	defer func() { err = zw.err }()
	defer errRecover(&zw.err)

	if !zw.wroteHdr {
		zw.writeHeader()
		zw.wroteHdr = true
	}
	n = len(p)
	zw.buf = append(zw.buf, p...)
	for len(zw.buf) >= blockSize {
		zw.flushBlock(zw.buf[:blockSize])
		zw.buf = append(zw.buf[:0], zw.buf[blockSize:]...)
	}
	zw.InputOffset += int64(n)
	return n, zw.err
}

// Close flushes any buffered plaintext as a final block (unless no input
// was ever written and none is buffered, which leaves only the header
// behind) and detaches the underlying writer.
func (zw *Writer) Close() (err error) {
	if zw.wr == nil {
		return zw.err
	}
	if zw.err != nil {
		zw.wr = nil
		return zw.err
	}
	defer func() { err = zw.err }()
	defer errRecover(&zw.err)

	if !zw.wroteHdr {
		zw.writeHeader()
		zw.wroteHdr = true
	}
	if len(zw.buf) > 0 {
		zw.flushBlock(zw.buf)
		zw.buf = zw.buf[:0]
	}
	zw.wr = nil
	return zw.err
}

// Reader decompresses a stream produced by Writer.
type Reader struct {
	// InputOffset is the number of compressed bytes read so far.
	InputOffset int64
	// OutputOffset is the number of plaintext bytes returned so far.
	OutputOffset int64

	rd       io.Reader
	cfg      CoderConfig
	wantCfg  CoderConfig
	checkCfg bool
	err      error
	pending  []byte
	readHdr  bool
}

// NewReader creates a Reader that accepts any coder configuration recorded
// in the stream header.
func NewReader(r io.Reader) *Reader {
	zr := new(Reader)
	zr.Reset(r)
	return zr
}

// NewReaderConfig creates a Reader that requires the stream header's coder
// configuration to equal cfg, reporting ErrConfigMismatch otherwise.
func NewReaderConfig(r io.Reader, cfg CoderConfig) *Reader {
	zr := &Reader{wantCfg: cfg, checkCfg: true}
	zr.Reset(r)
	return zr
}

// Reset discards the Reader's state and configures it to read from r,
// keeping whatever configuration check it was constructed with.
func (zr *Reader) Reset(r io.Reader) {
	wantCfg, checkCfg := zr.wantCfg, zr.checkCfg
	*zr = Reader{rd: r, wantCfg: wantCfg, checkCfg: checkCfg}
}

func (zr *Reader) readHeader() {
	var hdr [headerSize]byte
	nr, err := io.ReadFull(zr.rd, hdr[:])
	zr.InputOffset += int64(nr)
	if err != nil {
		panic(ErrCorrupt)
	}
	if binary.LittleEndian.Uint32(hdr[0:4]) != magicNumber {
		panic(ErrCorrupt)
	}
	if hdr[4] != fileVersion {
		panic(ErrCorrupt)
	}
	cfg := CoderConfig{
		FrequencyMemory:        binary.LittleEndian.Uint32(hdr[5:9]),
		FrequencyPadding:       binary.LittleEndian.Uint32(hdr[9:13]),
		RecalculationFrequency: binary.LittleEndian.Uint32(hdr[13:17]),
	}
	if zr.checkCfg && cfg != zr.wantCfg {
		panic(ErrConfigMismatch)
	}
	zr.cfg = cfg
}

// nextBlock reads and decodes the next length-prefixed block body. ok is
// false only when the stream ends cleanly at a block boundary.
func (zr *Reader) nextBlock() (block []byte, ok bool) {
	var lenBuf [4]byte
	nr, err := io.ReadFull(zr.rd, lenBuf[:])
	zr.InputOffset += int64(nr)
	if err == io.EOF && nr == 0 {
		return nil, false
	}
	if err != nil {
		panic(ErrCorrupt)
	}

	bodyLen := binary.LittleEndian.Uint32(lenBuf[:])
	body := make([]byte, bodyLen)
	nr2, err := io.ReadFull(zr.rd, body)
	zr.InputOffset += int64(nr2)
	if err != nil {
		panic(ErrCorrupt)
	}
	return decodeBlock(zr.cfg, body), true
}

// Read decompresses into p, reading and decoding further blocks from the
// underlying reader as needed.
func (zr *Reader) Read(p []byte) (n int, err error) {
	if zr.err != nil {
		return 0, zr.err
	}
	if zr.rd == nil {
		return 0, ErrClosed
	}
	defer func() { zr.OutputOffset += int64(n) }()
	defer func() { err = zr.err }()
	defer errRecover(&zr.err)

	if !zr.readHdr {
		zr.readHeader()
		zr.readHdr = true
	}
	for n < len(p) {
		if len(zr.pending) == 0 {
			block, ok := zr.nextBlock()
			if !ok {
				if n == 0 {
					zr.err = io.EOF
				}
				return n, zr.err
			}
			zr.pending = block
		}
		cn := copy(p[n:], zr.pending)
		zr.pending = zr.pending[cn:]
		n += cn
	}
	return n, nil
}

// Close detaches the underlying reader.
func (zr *Reader) Close() error {
	zr.rd = nil
	return zr.err
}
