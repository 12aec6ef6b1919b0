package stream

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cocosip/go-rpeg-codec/rpeg/common"
)

func TestWriteReadRoundTrip(t *testing.T) {
	s := &Stream{
		Codewords: []uint32{0xFFBE0000, 0x00000001, 0xDEADBEEF, 0x12345678, 0, 0x80000000},
		Width:     6,
		Height:    4,
	}

	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	header := "Compressed image format 2\n6 4\n"
	if !strings.HasPrefix(buf.String(), header) {
		t.Fatalf("header = %q", buf.String()[:len(header)])
	}
	payload := buf.Bytes()[len(header):]
	if len(payload) != 4*len(s.Codewords) {
		t.Fatalf("payload is %d bytes, want %d", len(payload), 4*len(s.Codewords))
	}
	if !bytes.Equal(payload[:4], []byte{0xFF, 0xBE, 0x00, 0x00}) {
		t.Errorf("first codeword bytes = % x, want big-endian", payload[:4])
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Width != s.Width || got.Height != s.Height {
		t.Errorf("dimensions = %dx%d, want %dx%d", got.Width, got.Height, s.Width, s.Height)
	}
	for i := range s.Codewords {
		if got.Codewords[i] != s.Codewords[i] {
			t.Errorf("codeword %d = %#x, want %#x", i, got.Codewords[i], s.Codewords[i])
		}
	}
}

func TestWriteRejectsMismatchedCount(t *testing.T) {
	err := Write(&bytes.Buffer{}, &Stream{Codewords: []uint32{1}, Width: 4, Height: 2})
	if !errors.Is(err, ErrCodewordCount) {
		t.Errorf("got %v, want ErrCodewordCount", err)
	}
	err = Write(&bytes.Buffer{}, &Stream{Codewords: []uint32{1}, Width: 3, Height: 2})
	if !errors.Is(err, common.ErrInvalidDimensions) {
		t.Errorf("got %v, want ErrInvalidDimensions", err)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrInvalidHeader},
		{"wrong magic", "Compressed image format 1\n2 2\nabcd", ErrInvalidHeader},
		{"missing dimensions", "Compressed image format 2\n", ErrInvalidHeader},
		{"bad width", "Compressed image format 2\nx 2\nabcd", ErrInvalidHeader},
		{"three fields", "Compressed image format 2\n2 2 2\nabcd", ErrInvalidHeader},
		{"odd width", "Compressed image format 2\n3 2\nabcd", common.ErrInvalidDimensions},
		{"zero height", "Compressed image format 2\n2 0\n", common.ErrInvalidDimensions},
		{"truncated", "Compressed image format 2\n4 2\nabcdef", ErrTruncatedStream},
		{"area wraps to zero", "Compressed image format 2\n8589934592 8589934592\n", common.ErrInvalidDimensions},
		{"area overflows", "Compressed image format 2\n4000000000 4000000000\n\x00\x00\x00\x00", common.ErrInvalidDimensions},
		{"huge but representable", "Compressed image format 2\n2000000000 2000000000\n\x00\x00\x00\x00", ErrTruncatedStream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRejectsOverflowingDimensions(t *testing.T) {
	err := (&Stream{Width: 1 << 33, Height: 1 << 33}).Validate()
	if !errors.Is(err, common.ErrInvalidDimensions) {
		t.Errorf("got %v, want ErrInvalidDimensions", err)
	}
}

func TestReadIgnoresTrailingBytes(t *testing.T) {
	s, err := Read(strings.NewReader("Compressed image format 2\n2 2\n\x00\x00\x00\x2atrailing"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(s.Codewords) != 1 || s.Codewords[0] != 42 {
		t.Errorf("codewords = %v", s.Codewords)
	}
}
