package huffman

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/cocosip/go-huffman-codec/codec"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

func TestGoldenVectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{
			name:  "empty",
			input: "",
			want:  []byte{},
		},
		{
			name:  "two symbols",
			input: "aaab",
			want:  []byte{0x01, 0x61, 0x62, 0x01, 0x02, 0x22, 0x06},
		},
		{
			name:  "single symbol",
			input: "zzz",
			want:  []byte{0x00, 0x7A, 0x01, 0x01, 0x00, 0x04},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeBytes([]byte(tt.input))
			if err != nil {
				t.Fatalf("EncodeBytes failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeBytes(%q) = % x, want % x", tt.input, got, tt.want)
			}

			decoded, err := DecodeBytes(tt.want)
			if err != nil {
				t.Fatalf("DecodeBytes failed: %v", err)
			}
			if string(decoded) != tt.input {
				t.Errorf("DecodeBytes = %q, want %q", decoded, tt.input)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	randomBytes := make([]byte, 10000)
	rng.Read(randomBytes)

	uniform := make([]byte, 0, 256*4)
	for i := 0; i < 4; i++ {
		for s := 0; s < 256; s++ {
			uniform = append(uniform, byte(s))
		}
	}

	skewed := make([]byte, 0)
	for s := 0; s < 256; s++ {
		skewed = append(skewed, bytes.Repeat([]byte{byte(s)}, 1+s*s/64)...)
	}
	rng.Shuffle(len(skewed), func(i, j int) { skewed[i], skewed[j] = skewed[j], skewed[i] })

	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"one byte", []byte{0x00}},
		{"one 0xff", []byte{0xFF}},
		{"repeated byte", bytes.Repeat([]byte{'x'}, 1000)},
		{"repeated byte seven", bytes.Repeat([]byte{'x'}, 7)},
		{"two symbols", []byte("aaab")},
		{"text", []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 50))},
		{"random", randomBytes},
		{"all values uniform", uniform},
		{"all values skewed", skewed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeBytes(tt.input)
			if err != nil {
				t.Fatalf("EncodeBytes failed: %v", err)
			}
			t.Logf("Original size: %d bytes, compressed size: %d bytes", len(tt.input), len(encoded))

			decoded, err := DecodeBytes(encoded)
			if err != nil {
				t.Fatalf("DecodeBytes failed: %v", err)
			}
			if !bytes.Equal(decoded, tt.input) {
				t.Fatalf("round trip mismatch: got %d bytes, want %d", len(decoded), len(tt.input))
			}
		})
	}
}

func TestDeterministicOutput(t *testing.T) {
	input := []byte(strings.Repeat("abracadabra", 20))

	first, err := EncodeBytes(input)
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}
	second, err := EncodeBytes(input)
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two encodings of the same input differ")
	}
}

func TestSingleSymbolUsesOneBit(t *testing.T) {
	for _, n := range []int{1, 7, 8, 100} {
		input := bytes.Repeat([]byte{0x42}, n)
		encoded, err := EncodeBytes(input)
		if err != nil {
			t.Fatalf("n=%d: EncodeBytes failed: %v", n, err)
		}

		// 4 header bytes, one table bit plus one bit per byte, tail marker
		bits := 1 + n
		want := 4 + (bits+7)/8 + 1
		if len(encoded) != want {
			t.Errorf("n=%d: encoded length = %d, want %d", n, len(encoded), want)
		}

		decoded, err := DecodeBytes(encoded)
		if err != nil {
			t.Fatalf("n=%d: DecodeBytes failed: %v", n, err)
		}
		if !bytes.Equal(decoded, input) {
			t.Errorf("n=%d: decoded %d bytes, want %d copies of 0x42", n, len(decoded), n)
		}
	}
}

func TestTailMarker(t *testing.T) {
	inputs := []string{"a", "aaaaaaa", "aaab", "abcdefgh", "hello, world", "mississippi river"}

	for _, input := range inputs {
		freqs := freqsOf(input)
		lengths := CodeLengths(freqs)
		table, err := NewCodeTable(&lengths)
		if err != nil {
			t.Fatalf("%q: NewCodeTable failed: %v", input, err)
		}

		bits := 0
		for _, s := range table.Alphabet {
			bits += int(lengths[s])
		}
		for _, s := range []byte(input) {
			bits += int(lengths[s])
		}

		encoded, err := EncodeBytes([]byte(input))
		if err != nil {
			t.Fatalf("%q: EncodeBytes failed: %v", input, err)
		}

		marker := encoded[len(encoded)-1]
		if want := byte(bits % 8); marker != want {
			t.Errorf("%q: tail marker = %d, want %d (%d payload bits)", input, marker, want, bits)
		}

		headerLen := 1 + table.Size() + 1 + table.MaxLength
		if want := headerLen + (bits+7)/8 + 1; len(encoded) != want {
			t.Errorf("%q: encoded length = %d, want %d", input, len(encoded), want)
		}
	}
}

func TestMessageBitsForTwoSymbols(t *testing.T) {
	lengths := CodeLengths(freqsOf("aaab"))
	bits := 0
	for _, s := range []byte("aaab") {
		bits += int(lengths[s])
	}
	if bits != 4 {
		t.Errorf("message bits = %d, want 4", bits)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "marker above seven",
			data: []byte{0x01, 0x61, 0x62, 0x01, 0x02, 0x22, 0x08},
			want: ErrBadHeader,
		},
		{
			name: "duplicate alphabet symbol",
			data: []byte{0x01, 0x61, 0x61, 0x01, 0x02, 0x22, 0x06},
			want: ErrBadHeader,
		},
		{
			name: "counts do not sum to alphabet size",
			data: []byte{0x01, 0x61, 0x62, 0x01, 0x01, 0x22, 0x06},
			want: ErrBadHeader,
		},
		{
			name: "zero max length",
			data: []byte{0x00, 0x61, 0x00, 0x00, 0x01},
			want: ErrBadHeader,
		},
		{
			name: "empty top length",
			data: []byte{0x01, 0x61, 0x62, 0x02, 0x02, 0x00, 0x22, 0x06},
			want: ErrBadHeader,
		},
		{
			name: "codes not prefix-free",
			data: []byte{0x01, 0x61, 0x62, 0x02, 0x01, 0x01, 0x04, 0x04},
			want: ErrBadHeader,
		},
		{
			name: "no code matches",
			data: []byte{0x01, 0x61, 0x62, 0x02, 0x00, 0x02, 0x38, 0x06},
			want: ErrNoMatch,
		},
		{
			name: "trailing partial code",
			data: []byte{0x02, 0x61, 0x62, 0x63, 0x02, 0x01, 0x02, 0x3A, 0x06},
			want: ErrTruncated,
		},
		{
			name: "code table cut short",
			data: []byte{0x01, 0x61, 0x62, 0x01, 0x02, 0x01, 0x01},
			want: ErrTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := DecodeBytes(tt.data)
			if err == nil {
				t.Fatalf("DecodeBytes(% x) = %q, want error", tt.data, out)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("error %v does not match ErrCorrupt", err)
			}
			if out != nil {
				t.Errorf("partial output %q returned with error", out)
			}
		})
	}
}

func TestDecodeTruncatedGolden(t *testing.T) {
	blobs := [][]byte{
		{0x01, 0x61, 0x62, 0x01, 0x02, 0x22, 0x06},
		{0x00, 0x7A, 0x01, 0x01, 0x00, 0x04},
	}

	for _, blob := range blobs {
		for n := 1; n < len(blob); n++ {
			if _, err := DecodeBytes(blob[:n]); !errors.Is(err, ErrCorrupt) {
				t.Errorf("DecodeBytes(% x) error = %v, want ErrCorrupt", blob[:n], err)
			}
		}
	}
}

func TestStreamAPI(t *testing.T) {
	input := []byte(strings.Repeat("stream me ", 100))

	var compressed bytes.Buffer
	if err := Encode(&compressed, iotest.OneByteReader(bytes.NewReader(input))); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var restored bytes.Buffer
	if err := Decode(&restored, iotest.HalfReader(&compressed)); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(restored.Bytes(), input) {
		t.Error("stream round trip mismatch")
	}
}

func TestStreamDecodeWritesNothingOnCorruption(t *testing.T) {
	var out bytes.Buffer
	err := Decode(&out, bytes.NewReader([]byte{0x01, 0x61, 0x62, 0x02, 0x00, 0x02, 0x38, 0x06}))
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Decode error = %v, want ErrCorrupt", err)
	}
	if out.Len() != 0 {
		t.Errorf("Decode wrote %d bytes despite failing", out.Len())
	}
}

func TestStreamReadError(t *testing.T) {
	boom := errors.New("boom")

	var out bytes.Buffer
	err := Encode(&out, iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Errorf("Encode error = %v, want boom", err)
	}
	if errors.Is(err, ErrCorrupt) {
		t.Error("read error reported as corrupt stream")
	}

	err = Decode(&out, iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Errorf("Decode error = %v, want boom", err)
	}
}

func TestEncodeWithOptionsLimit(t *testing.T) {
	tests := []struct {
		name    string
		limit   int64
		input   string
		wantErr error
	}{
		{"unlimited", 0, "abcd", nil},
		{"at limit", 4, "abcd", nil},
		{"over limit", 3, "abcd", codec.ErrInputTooLarge},
		{"negative limit", -1, "abcd", codec.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &Options{BaseOptions: codec.BaseOptions{MaxInputSize: tt.limit}}
			var out bytes.Buffer
			err := EncodeWithOptions(&out, strings.NewReader(tt.input), opts)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("EncodeWithOptions failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if out.Len() != 0 {
				t.Errorf("wrote %d bytes despite failing", out.Len())
			}
		})
	}
}

func TestDecodeOutputCapacity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	random := make([]byte, 1<<20)
	rng.Read(random)

	skewed := append(bytes.Repeat([]byte{'a'}, 100000), 'b')

	tests := []struct {
		name  string
		input []byte
	}{
		{"random", random},
		{"one bit per byte", skewed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeBytes(tt.input)
			if err != nil {
				t.Fatalf("EncodeBytes failed: %v", err)
			}
			out, err := DecodeBytes(encoded)
			if err != nil {
				t.Fatalf("DecodeBytes failed: %v", err)
			}
			if len(out) != len(tt.input) {
				t.Fatalf("decoded %d bytes, want %d", len(out), len(tt.input))
			}
			t.Logf("len=%d cap=%d (%.2fx)", len(out), cap(out), float64(cap(out))/float64(len(out)))
			if cap(out) > 2*len(out) {
				t.Errorf("cap(out) = %d for %d decoded bytes", cap(out), len(out))
			}
		})
	}
}

func TestDecodeCutAtCodeBoundary(t *testing.T) {
	// 16 one-bit codes plus the one-bit table: header, 00 00 00, marker 1.
	encoded, err := EncodeBytes(bytes.Repeat([]byte{'z'}, 16))
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}
	want := []byte{0x00, 0x7A, 0x01, 0x01, 0x00, 0x00, 0x00, 0x01}
	if !bytes.Equal(encoded, want) {
		t.Fatalf("EncodeBytes = % x, want % x", encoded, want)
	}

	// Dropping the marker and the last payload byte leaves a zero byte as
	// marker: the table bit plus seven codes, with no length to contradict.
	out, err := DecodeBytes(encoded[:len(encoded)-2])
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if !bytes.Equal(out, bytes.Repeat([]byte{'z'}, 7)) {
		t.Errorf("DecodeBytes = %q, want 7 bytes of z", out)
	}
}

func TestDefaultLogLevel(t *testing.T) {
	if got := logging.GetLevel("huffman"); got != logging.WARNING {
		t.Errorf("default level = %v, want WARNING", got)
	}
	if log.IsEnabledFor(logging.DEBUG) {
		t.Error("debug logging enabled without configuration")
	}
}
