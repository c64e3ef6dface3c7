package spiderkit

import (
	"strings"
	"testing"
)

func makeBenchAttrs(extraKeys int) map[string]any {
	attrs := map[string]any{
		"url":   "http://example.com/some/fairly/long/path?with=query",
		"depth": 3,
		"trail": []any{"http://example.com/", "http://example.com/a"},
	}
	for i := 0; i < extraKeys; i++ {
		attrs["k"+itoa(i)] = strings.Repeat("v", 16)
	}
	return attrs
}

func BenchmarkNewTask_Identity(b *testing.B) {
	for _, extra := range []int{0, 8, 32} {
		b.Run(itoa(extra)+"keys", func(b *testing.B) {
			attrs := makeBenchAttrs(extra)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = NewTask("download", attrs)
			}
		})
	}
}

func BenchmarkTask_WireRoundtrip(b *testing.B) {
	enc := &JSONEncoder{}
	task := NewTask("download", makeBenchAttrs(8))
	warm, _ := enc.Encode(task.ToMap())
	b.SetBytes(int64(len(warm)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		raw, err := enc.Encode(task.ToMap())
		if err != nil {
			b.Fatal(err)
		}
		m := make(map[string]any)
		if err := enc.Decode(raw, &m); err != nil {
			b.Fatal(err)
		}
		if _, err := TaskFromMap(m); err != nil {
			b.Fatal(err)
		}
	}
}

// lightweight int->string without fmt to reduce noise in bench labels
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + (n % 10))
		n /= 10
	}
	return string(buf[i:])
}
