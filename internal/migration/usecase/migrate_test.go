package usecase

import (
	"bytes"
	"testing"
)

func TestNormalizeValue(t *testing.T) {
	t.Run("text bytes become string", func(t *testing.T) {
		got := normalizeValue([]byte("привет"))
		if s, ok := got.(string); !ok || s != "привет" {
			t.Errorf("normalizeValue = %#v, want string %q", got, "привет")
		}
	})

	t.Run("binary bytes stay bytes", func(t *testing.T) {
		raw := []byte{0xff, 0xfe, 0x00, 0x80}
		got := normalizeValue(raw)
		b, ok := got.([]byte)
		if !ok || !bytes.Equal(b, raw) {
			t.Errorf("normalizeValue = %#v, want original bytes", got)
		}
	})

	t.Run("other types pass through", func(t *testing.T) {
		if got := normalizeValue(int64(42)); got != int64(42) {
			t.Errorf("normalizeValue(int64) = %#v", got)
		}
		if got := normalizeValue(nil); got != nil {
			t.Errorf("normalizeValue(nil) = %#v", got)
		}
		if got := normalizeValue(3.14); got != 3.14 {
			t.Errorf("normalizeValue(float64) = %#v", got)
		}
	})
}
