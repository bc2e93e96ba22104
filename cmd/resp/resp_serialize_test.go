package resp

import (
	"errors"
	"testing"
)

func TestSerialize(t *testing.T) {
	if r, err := Serialize(nil); r != "$-1\r\n" || err != nil {
		t.Error("Expected other result for Serialize(nil)")
	}

	if r, err := Serialize(12); r != ":12\r\n" || err != nil {
		t.Error("Expected other result for Serialize(12)")
	}

	if r, err := Serialize(-5); r != ":-5\r\n" || err != nil {
		t.Error("Expected other result for Serialize(-5)")
	}

	if r, err := Serialize("hello there!"); r != "$12\r\nhello there!\r\n" || err != nil {
		t.Error("Expected other result for Serialize('hello there!')")
	}

	if r, err := Serialize(""); r != "$0\r\n\r\n" || err != nil {
		t.Error("Expected other result for Serialize('')")
	}

	if r, err := Serialize(SimpleString("OK")); r != "+OK\r\n" || err != nil {
		t.Error("Expected other result for Serialize(SimpleString('OK'))")
	}

	arr := []any{3, "word", nil}
	if r, err := Serialize(arr); r != "*3\r\n:3\r\n$4\r\nword\r\n$-1\r\n" || err != nil {
		t.Error("Expected other result for Serialize([3, 'word', nil])")
	}

	if r, err := Serialize([]string{}); r != "*0\r\n" || err != nil {
		t.Error("Expected other result for Serialize([])")
	}

	err := errors.New("custom error")
	if r, err := Serialize(err); r != "-custom error\r\n" || err != nil {
		t.Error("Expected other result for Serialize(err)")
	}
}

func TestSerializeList(t *testing.T) {
	expected := "*2\r\n$1\r\na\r\n$3\r\nb c\r\n"
	if r, err := Serialize([]string{"a", "b c"}); r != expected || err != nil {
		t.Errorf("Expected '%s' and got '%s'", expected, r)
	}
}

func TestSerializeMap(t *testing.T) {
	m := Map{{"server", "memo"}, {"proto", 3}}

	expected := "%2\r\n$6\r\nserver\r\n$4\r\nmemo\r\n$5\r\nproto\r\n:3\r\n"
	if r, err := Serialize(m); r != expected || err != nil {
		t.Errorf("Expected '%s' and got '%s'", expected, r)
	}

	expected = "*4\r\n$6\r\nserver\r\n$4\r\nmemo\r\n$5\r\nproto\r\n:3\r\n"
	if r, err := Serialize(m.Flat()); r != expected || err != nil {
		t.Errorf("Expected '%s' and got '%s'", expected, r)
	}
}

func TestSerializeRejects(t *testing.T) {
	if _, err := Serialize(1.5); err == nil {
		t.Error("Expected floats to be rejected")
	}
	if _, err := Serialize([]any{"ok", true}); err == nil {
		t.Error("Expected a nested bool to be rejected")
	}
}

func TestSerializeMultilineError(t *testing.T) {
	err := errors.New("ERR bad\r\nthing")
	if r := SerializeError(err); r != "-ERR bad  thing\r\n" {
		t.Errorf("Expected the error on one line, got '%s'", r)
	}
}
