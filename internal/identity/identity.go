// Package identity derives stable task identities from a kind and an
// attribute map. It is kept in internal so the canonical byte form never
// becomes public API.
package identity

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Namespace under which task identities are minted. Any fixed UUID works;
// it only has to stay constant so identities are reproducible.
var namespace = uuid.MustParse("9f2c1fd2-64b7-4b39-9d3a-5a60c6f1a001")

// For returns the identity for a task of the given kind carrying the given
// attributes. The same kind and attribute set always yields the same
// identity, regardless of map insertion order or whether values went through
// a JSON round-trip.
func For(kind string, attrs map[string]any) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte('\n')
	writeCanonical(&b, attrs)
	return uuid.NewSHA1(namespace, []byte(b.String())).String()
}

// writeCanonical emits a byte-stable rendering of v. Maps are written in
// sorted key order and numbers are folded to their JSON form so that an
// int(2) and a decoded float64(2) render identically.
func writeCanonical(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case string:
		b.WriteString(strconv.Quote(t))
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			writeCanonical(b, t[k])
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, e)
		}
		b.WriteByte(']')
	default:
		// Numbers and anything else: JSON is already canonical enough
		// (ints and their float64 decodings both print as "2").
		raw, err := json.Marshal(t)
		if err != nil {
			fmt.Fprintf(b, "%v", t)
			return
		}
		b.Write(raw)
	}
}
