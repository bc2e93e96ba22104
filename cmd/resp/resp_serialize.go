// Package resp reads list server requests and writes replies in the REdis
// Serialization Protocol, see: https://redis.io/docs/reference/protocol-spec/
package resp

import (
	"fmt"
	"strconv"
	"strings"
)

// SimpleString is written as a status reply (+OK) instead of a bulk string.
type SimpleString string

type Pair struct {
	Key   string
	Value any
}

// Map is an ordered RESP3 map reply.
type Map []Pair

// Flat turns the map into the key/value array RESP2 clients expect.
func (m Map) Flat() []any {
	out := make([]any, 0, len(m)*2)
	for _, p := range m {
		out = append(out, p.Key, p.Value)
	}
	return out
}

// Serialize encodes a reply. Supported shapes are nil, error, SimpleString,
// string, int, []string, []any and Map.
func Serialize(v any) (string, error) {
	var b strings.Builder
	if err := write(&b, v); err != nil {
		return "", err
	}

	return b.String(), nil
}

func write(b *strings.Builder, v any) error {
	switch v := v.(type) {
	case nil:
		b.WriteString("$-1\r\n")
	case error:
		b.WriteString(SerializeError(v))
	case SimpleString:
		b.WriteString("+" + string(v) + "\r\n")
	case string:
		writeBulk(b, v)
	case int:
		b.WriteString(":" + strconv.Itoa(v) + "\r\n")
	case []string:
		writeHeader(b, '*', len(v))
		for _, s := range v {
			writeBulk(b, s)
		}
	case []any:
		writeHeader(b, '*', len(v))
		for _, el := range v {
			if err := write(b, el); err != nil {
				return err
			}
		}
	case Map:
		writeHeader(b, '%', len(v))
		for _, p := range v {
			writeBulk(b, p.Key)
			if err := write(b, p.Value); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("value of type %T cannot be serialized", v)
	}

	return nil
}

// SerializeError writes an error reply. Line breaks would end the reply
// early, so they are flattened to spaces.
func SerializeError(err error) string {
	msg := strings.NewReplacer("\r", " ", "\n", " ").Replace(err.Error())
	return "-" + msg + "\r\n"
}

func writeHeader(b *strings.Builder, kind byte, n int) {
	b.WriteByte(kind)
	b.WriteString(strconv.Itoa(n))
	b.WriteString("\r\n")
}

func writeBulk(b *strings.Builder, s string) {
	writeHeader(b, '$', len(s))
	b.WriteString(s)
	b.WriteString("\r\n")
}
