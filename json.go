// Package flashjson is a two-stage JSON engine in the style of simdjson:
// Stage 1 (package scanner) locates every structural byte in the input,
// Stage 2 (package stage2) drives a grammar state machine off those
// offsets into either a DOM tape (package tape, backing Unmarshal, Decoder
// and Document) or a validate-only walk (backing Valid). Package ondemand
// offers a third path that never materializes a tape at all, pulling
// scalars and container events directly off the structural cursor.
package flashjson

import (
	"errors"
	"io"
	"reflect"

	"github.com/flashjson/flashjson-go/internal/scanner"
	"github.com/flashjson/flashjson-go/internal/stage2"
	"github.com/flashjson/flashjson-go/internal/tape"
)

var (
	ErrInvalidJSON     = errors.New("invalid JSON")
	ErrUnsupportedType = errors.New("unsupported type")
)

// ParserConfig is the caller-facing knob over the DOM builder's nesting
// limit. A zero value uses internal/tape.DefaultMaxDepth.
type ParserConfig struct {
	MaxDepth uint32
}

func Marshal(v interface{}) ([]byte, error) {
	e := newEncoder()
	defer e.release()

	return e.marshal(v)
}

// Unmarshal parses exactly one JSON value from data. Trailing non-whitespace
// bytes after that value are a TAPE_ERROR, unlike Decoder.Decode which is
// built for a stream of concatenated values.
func Unmarshal(data []byte, v interface{}) error {
	return UnmarshalWithConfig(data, v, ParserConfig{})
}

// UnmarshalWithConfig is Unmarshal with an explicit ParserConfig, letting a
// caller raise or lower the DEPTH_ERROR nesting limit.
func UnmarshalWithConfig(data []byte, v interface{}, cfg ParserConfig) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("unmarshal requires non-nil pointer")
	}

	root, err := parseToTape(data, false, 0, cfg.MaxDepth)
	if err != nil {
		return err
	}
	return (&decoder{}).decode(root, rv.Elem())
}

func parseToTape(data []byte, streaming bool, start int, maxDepth uint32) (tape.Element, error) {
	padded := scanner.PadBuffer(append([]byte(nil), data...))
	s := scanner.New()
	defer s.Release()

	indexes, err := s.Scan(padded)
	if err != nil {
		return tape.Element{}, err
	}
	if len(indexes) == 0 {
		return tape.Element{}, stage2.Empty
	}

	builder := tape.NewDOMBuilder(padded, maxDepth)
	p := stage2.NewStructuralParser(padded, indexes, start)
	code, _ := p.Parse(builder, streaming)
	if !code.OK() {
		return tape.Element{}, code
	}
	return tape.Root(builder.Result()), nil
}

// Valid reports whether data is a single well-formed JSON document. It runs
// the same scanner/stage2 pipeline as Unmarshal but with NoopBuilder, so no
// tape is ever allocated.
func Valid(data []byte) bool {
	padded := scanner.PadBuffer(append([]byte(nil), data...))
	s := scanner.New()
	defer s.Release()

	indexes, err := s.Scan(padded)
	if err != nil || len(indexes) == 0 {
		return false
	}
	p := stage2.NewStructuralParser(padded, indexes, 0)
	code, _ := p.Parse(stage2.NoopBuilder{}, false)
	return code.OK()
}

// Decoder reads a stream of concatenated top-level JSON values, persisting
// the structural cursor across Decode calls the way spec'd streaming mode
// requires (next_structural_index survives from one call to the next).
type Decoder struct {
	r        io.Reader
	scanner  *scanner.Scanner
	buf      []byte
	indexes  []uint32
	pos      int
	ready    bool
	maxDepth uint32
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, scanner: scanner.New()}
}

// SetConfig applies cfg to every Decode call from this point on.
func (dec *Decoder) SetConfig(cfg ParserConfig) {
	dec.maxDepth = cfg.MaxDepth
}

func (dec *Decoder) prepare() error {
	if dec.ready {
		return nil
	}
	data, err := io.ReadAll(dec.r)
	if err != nil {
		return err
	}
	dec.buf = scanner.PadBuffer(data)
	indexes, err := dec.scanner.Scan(dec.buf)
	if err != nil {
		return err
	}
	dec.indexes = indexes
	dec.ready = true
	return nil
}

// realEnd returns the structural-index position past the last real token,
// excluding the trailing padding sentinel package scanner appends (see
// stage2.StructuralIterator.AtEnd).
func (dec *Decoder) realEnd() int {
	if len(dec.indexes) == 0 {
		return 0
	}
	return len(dec.indexes) - 1
}

// More reports whether another top-level value remains in the stream.
func (dec *Decoder) More() bool {
	if err := dec.prepare(); err != nil {
		return false
	}
	return dec.pos < dec.realEnd()
}

// Decode parses the next top-level value in the stream into v.
func (dec *Decoder) Decode(v interface{}) error {
	if err := dec.prepare(); err != nil {
		return err
	}
	if dec.pos >= dec.realEnd() {
		return stage2.Empty
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("unmarshal requires non-nil pointer")
	}

	builder := tape.NewDOMBuilder(dec.buf, dec.maxDepth)
	p := stage2.NewStructuralParser(dec.buf, dec.indexes, dec.pos)
	code, resume := p.Parse(builder, true)
	if !code.OK() {
		return code
	}
	dec.pos = resume

	return (&decoder{}).decode(tape.Root(builder.Result()), rv.Elem())
}

type Encoder struct {
	w   io.Writer
	enc *encoder
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, enc: newEncoder()}
}

func (e *Encoder) Encode(v interface{}) error {
	data, err := e.enc.marshal(v)
	if err != nil {
		return err
	}

	_, err = e.w.Write(data)
	return err
}
