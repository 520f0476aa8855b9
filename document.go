package flashjson

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/flashjson/flashjson-go/internal/scanner"
	"github.com/flashjson/flashjson-go/internal/stage2"
	"github.com/flashjson/flashjson-go/internal/tape"
)

// ValueKind identifies what a Value holds, mirroring the JSON grammar.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func kindOf(t tape.Tag) ValueKind {
	switch t {
	case tape.TagTrue, tape.TagFalse:
		return KindBool
	case tape.TagInt64, tape.TagDouble:
		return KindNumber
	case tape.TagString:
		return KindString
	case tape.TagArrayStart:
		return KindArray
	case tape.TagObjectStart:
		return KindObject
	default:
		return KindNull
	}
}

// Value is one node of a parsed Document's tape.
type Value struct{ el tape.Element }

func (v Value) Kind() ValueKind { return kindOf(v.el.Kind()) }

func (v Value) Bool() (bool, bool) { return v.el.Bool() }

func (v Value) Int64() (int64, bool) { return v.el.Int64() }

func (v Value) Float64() (float64, bool) { return v.el.Float64() }

func (v Value) String() (string, bool) { return v.el.String() }

func (v Value) IsNull() bool { return v.el.IsNull() }

func (v Value) Array() (Array, bool) {
	a, ok := v.el.Array()
	if !ok {
		return Array{}, false
	}
	return Array{a: a}, true
}

func (v Value) Object() (Object, bool) {
	o, ok := v.el.Object()
	if !ok {
		return Object{}, false
	}
	return Object{o: o}, true
}

// Field is one key/value pair of an Object.
type Field struct {
	Key   string
	Value Value
}

// Object is a materialized JSON object: every field already decoded onto
// the tape, unlike LazyObject which pulls fields on demand.
type Object struct{ o tape.Object }

func (o Object) Fields() []Field {
	tf := o.o.Fields()
	out := make([]Field, len(tf))
	for i, f := range tf {
		out[i] = Field{Key: f.Key, Value: Value{el: f.Value}}
	}
	return out
}

// Array is a materialized JSON array.
type Array struct{ a tape.Array }

func (a Array) Elements() []Value {
	te := a.a.Elements()
	out := make([]Value, len(te))
	for i, e := range te {
		out[i] = Value{el: e}
	}
	return out
}

// Document is a fully parsed DOM: a tape plus its root value. Unlike
// Iterator, every value in the document has already been visited and
// validated by the time Parse returns.
type Document struct {
	t *tape.Tape
}

// Parse builds a Document from a single JSON value in data. Trailing
// non-whitespace bytes after that value are a TAPE_ERROR.
func Parse(data []byte) (*Document, error) {
	return ParseWithConfig(data, ParserConfig{})
}

// ParseWithConfig is Parse with an explicit ParserConfig, letting a caller
// raise or lower the DEPTH_ERROR nesting limit the DOM builder enforces.
func ParseWithConfig(data []byte, cfg ParserConfig) (*Document, error) {
	padded := scanner.PadBuffer(append([]byte(nil), data...))
	s := scanner.New()
	defer s.Release()

	indexes, err := s.Scan(padded)
	if err != nil {
		return nil, err
	}
	if len(indexes) == 0 {
		return nil, stage2.Empty
	}

	builder := tape.NewDOMBuilder(padded, cfg.MaxDepth)
	p := stage2.NewStructuralParser(padded, indexes, 0)
	code, _ := p.Parse(builder, false)
	if !code.OK() {
		return nil, code
	}
	return &Document{t: builder.Result()}, nil
}

// Root returns the document's top-level value.
func (doc *Document) Root() Value { return Value{el: tape.Root(doc.t)} }

// ParseAll parses every input independently and concurrently, the way
// spec's concurrency model expects: separate parse sessions over disjoint
// buffers never share state, so there is nothing to synchronize beyond
// collecting the results. The first parse error cancels ctx for the rest
// and is returned; results for inputs still in flight at that point are
// discarded.
func ParseAll(ctx context.Context, inputs [][]byte) ([]*Document, error) {
	return ParseAllWithConfig(ctx, inputs, ParserConfig{})
}

// ParseAllWithConfig is ParseAll with an explicit ParserConfig applied to
// every session.
func ParseAllWithConfig(ctx context.Context, inputs [][]byte, cfg ParserConfig) ([]*Document, error) {
	docs := make([]*Document, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	for i, data := range inputs {
		i, data := i, data
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			doc, err := ParseWithConfig(data, cfg)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
