package stage2

import (
	"testing"

	"github.com/flashjson/flashjson-go/internal/scanner"
)

func structuralsFor(t *testing.T, input string) ([]byte, []uint32) {
	t.Helper()
	padded := scanner.PadBuffer([]byte(input))
	s := scanner.New()
	defer s.Release()
	indexes, err := s.Scan(padded)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	return padded, append([]uint32(nil), indexes...)
}

func parseValid(t *testing.T, input string) ErrorCode {
	t.Helper()
	buf, indexes := structuralsFor(t, input)
	p := NewStructuralParser(buf, indexes, 0)
	code, _ := p.Parse(NoopBuilder{}, false)
	return code
}

func TestParseValidDocuments(t *testing.T) {
	valid := []string{
		`{}`,
		`[]`,
		`null`,
		`true`,
		`false`,
		`42`,
		`-17.5e3`,
		`"hello"`,
		`{"key":"value"}`,
		`[1,2,3]`,
		`{"a":[1,2],"b":true,"c":null,"d":{"e":1}}`,
		`[{"a":1},{"b":2}]`,
		`{"nested":{"deeply":{"nested":{"object":1}}}}`,
		`["a","b","c"]`,
		`{"escaped":"line\nbreak and \"quote\""}`,
		`{"unicode":"é"}`,
	}

	for _, in := range valid {
		t.Run(in, func(t *testing.T) {
			if code := parseValid(t, in); code != Success {
				t.Errorf("expected Success, got %v", code)
			}
		})
	}
}

func TestParseInvalidDocuments(t *testing.T) {
	invalid := []string{
		`{"key":value}`,
		`{"key":"value",}`,
		`{"key":"value"`,
		`[1,2,3`,
		`[1,,2]`,
		`{key:"value"}`,
		`{"a":1}{"b":2}`,
		`[1 2]`,
		`{"a":}`,
		`nul`,
		`tru`,
		`{"key":"value`,
		"{\"key\":\"raw\x01control\"}",
		`{"key":"bad\xescape"}`,
	}

	for _, in := range invalid {
		t.Run(in, func(t *testing.T) {
			if code := parseValid(t, in); code == Success {
				t.Errorf("expected an error for %q, got Success", in)
			}
		})
	}
}

func TestParseEmptyIsEmptyError(t *testing.T) {
	buf, indexes := structuralsFor(t, ``)
	p := NewStructuralParser(buf, indexes, 0)
	code, _ := p.Parse(NoopBuilder{}, false)
	if code != Empty {
		t.Errorf("expected Empty, got %v", code)
	}
}

func TestParseStreamingConcatenatedValues(t *testing.T) {
	buf, indexes := structuralsFor(t, `{"a":1}{"b":2}[3,4]`)

	// indexes' last entry is the scanner's trailing padding sentinel, not a
	// real value to resume on.
	end := len(indexes) - 1

	pos := 0
	var results []ErrorCode
	for pos < end {
		p := NewStructuralParser(buf, indexes, pos)
		code, next := p.Parse(NoopBuilder{}, true)
		results = append(results, code)
		if next == pos {
			t.Fatalf("streaming parse made no progress at %d", pos)
		}
		pos = next
	}

	for i, code := range results {
		if code != Success {
			t.Errorf("value %d: expected Success, got %v", i, code)
		}
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 streamed values, got %d", len(results))
	}
}

func TestParseTopLevelArrayCloserGuard(t *testing.T) {
	buf, indexes := structuralsFor(t, `[1,2,3]`)
	p := NewStructuralParser(buf, indexes, 0)
	if code, _ := p.Parse(NoopBuilder{}, false); code != Success {
		t.Errorf("expected Success, got %v", code)
	}
}

func TestParseDepthTracking(t *testing.T) {
	buf, indexes := structuralsFor(t, `[[[[[1]]]]]`)
	p := NewStructuralParser(buf, indexes, 0)
	if code, _ := p.Parse(NoopBuilder{}, false); code != Success {
		t.Errorf("expected Success, got %v", code)
	}
}
