package squash

import (
	"math/bits"
	"sort"
)

// highBit is the sign bit of the 64-bit range endpoints; both bottom and
// top sharing this bit is what triggers renormalization.
const highBit uint64 = 1 << 63

// frequencyModel is the order-0 adaptive model shared by the arithmetic
// encoder and decoder. Driving both sides through the identical sequence of
// tick/bounds/observe calls is what keeps them in lock step; an adaptive
// coder is only decodable if the decoder reconstructs exactly the
// probabilities the encoder used at every step.
//
// Frequencies are tracked over a sliding window of the most recently coded
// symbols (FIFO eviction), each symbol given a floor count so that no
// symbol the coder has never seen is assigned zero probability. The
// cumulative frequency map is not rebuilt on every symbol -- only every
// RecalculationFrequency symbols -- trading a little compression for a
// cheaper steady state.
type frequencyModel struct {
	cfg   CoderConfig
	freqs [alphabetSize]uint32

	window      []uint32
	head, size  int
	untilRecalc uint32

	cum   [alphabetSize + 1]uint64
	total uint64
}

func newFrequencyModel(cfg CoderConfig) *frequencyModel {
	m := &frequencyModel{cfg: cfg, window: make([]uint32, cfg.FrequencyMemory)}
	for i := range m.freqs {
		m.freqs[i] = cfg.FrequencyPadding
	}
	return m
}

// recalculate rebuilds the cumulative frequency map from the current raw
// counts. cum[c] is the lower bound for symbol c; cum[alphabetSize] is the
// total, also stashed in m.total for the renormalization arithmetic.
func (m *frequencyModel) recalculate() {
	var sum uint64
	for i, f := range m.freqs {
		m.cum[i] = sum
		sum += uint64(f)
	}
	m.cum[alphabetSize] = sum
	m.total = sum
	m.untilRecalc = m.cfg.RecalculationFrequency
}

// tick runs the recalculation schedule. It must be called exactly once per
// symbol, before that symbol's bounds are read; the counter starts at zero
// so the very first symbol always sees a freshly built map.
func (m *frequencyModel) tick() {
	if m.untilRecalc == 0 {
		m.recalculate()
	} else {
		m.untilRecalc--
	}
}

// bounds reports the half-open cumulative range [lo, hi) assigned to code
// under the current map, along with the map's total.
func (m *frequencyModel) bounds(code uint32) (lo, hi, total uint64) {
	return m.cum[code], m.cum[code+1], m.total
}

// locate finds the greatest code c with cum[c] <= target, the decoder's
// means of recovering which symbol a narrowed range value corresponds to.
func (m *frequencyModel) locate(target uint64) uint32 {
	c := sort.Search(alphabetSize, func(i int) bool { return m.cum[i+1] > target })
	if c >= alphabetSize {
		c = alphabetSize - 1
	}
	return uint32(c)
}

// observe folds code into the sliding window, evicting the oldest code once
// the window is full, and updates the raw frequency counts. It must be
// called exactly once per symbol, after that symbol has been coded.
func (m *frequencyModel) observe(code uint32) {
	capacity := len(m.window)
	if capacity == 0 {
		return
	}
	if m.size == capacity {
		old := m.window[m.head]
		m.freqs[old]--
		m.window[m.head] = code
		m.head = (m.head + 1) % capacity
	} else {
		m.window[(m.head+m.size)%capacity] = code
		m.size++
	}
	m.freqs[code]++
}

// arithmeticEncoder is a 64-bit range coder over frequencyModel.
type arithmeticEncoder struct {
	model  *frequencyModel
	bottom uint64
	top    uint64
	packer bitPacker
}

func newArithmeticEncoder(cfg CoderConfig) *arithmeticEncoder {
	e := &arithmeticEncoder{model: newFrequencyModel(cfg), top: ^uint64(0)}
	e.packer.init()
	return e
}

// encode narrows the current range to code's slice of it, then shifts out
// every leading bit bottom and top already agree on.
func (e *arithmeticEncoder) encode(code uint32) {
	e.model.tick()
	lo, hi, total := e.model.bounds(code)
	diff := e.top - e.bottom
	step := diff / total
	e.bottom += step * lo
	e.top = e.bottom - step*lo + step*hi

	for (e.bottom^e.top)&highBit == 0 {
		bit := byte(0)
		if e.bottom&highBit != 0 {
			bit = 1
		}
		e.packer.pushBit(bit)
		e.bottom <<= 1
		e.top <<= 1
	}
	e.model.observe(code)
}

// finish flushes the coder's remaining state bit and the bit packer's
// trailing partial byte, returning the complete coded payload.
func (e *arithmeticEncoder) finish() []byte {
	e.packer.pushBit(1)
	return e.packer.finish()
}

// arithmeticDecoder mirrors arithmeticEncoder, consuming a bit stream
// instead of producing one.
type arithmeticDecoder struct {
	model    *frequencyModel
	bottom   uint64
	top      uint64
	window   uint64
	unpacker bitUnpacker
}

func newArithmeticDecoder(cfg CoderConfig, data []byte) *arithmeticDecoder {
	d := &arithmeticDecoder{model: newFrequencyModel(cfg), top: ^uint64(0)}
	d.unpacker.init(data)
	for i := 0; i < 64; i++ {
		d.window = (d.window << 1) | uint64(d.nextBit())
	}
	return d
}

// nextBit reads the next coded bit, treating EOF as an implicit zero; the
// encoder's single flush bit plus byte padding makes the tail of the
// stream unambiguous to decode past.
func (d *arithmeticDecoder) nextBit() byte {
	bit, ok := d.unpacker.popBit()
	if !ok {
		return 0
	}
	return bit
}

// decode recovers one symbol from the coded bit stream.
func (d *arithmeticDecoder) decode() uint32 {
	d.model.tick()
	_, _, total := d.model.bounds(0)
	diff := d.top - d.bottom

	hi64, lo64 := bits.Mul64(d.window-d.bottom, total)
	target, _ := bits.Div64(hi64, lo64, diff)

	code := d.model.locate(target)
	lo, hi, _ := d.model.bounds(code)
	step := diff / total
	d.bottom += step * lo
	d.top = d.bottom - step*lo + step*hi

	for (d.bottom^d.top)&highBit == 0 {
		d.bottom <<= 1
		d.top <<= 1
		d.window = (d.window << 1) | uint64(d.nextBit())
	}
	d.model.observe(code)
	return code
}
