package main

import (
	"reflect"
	"testing"
)

func TestSanitize(t *testing.T) {
	if res, err := sanitize("version"); err != nil || !reflect.DeepEqual(res, []string{"version"}) {
		t.Error("Expected sanitize('version') to return ['version']")
	}
	if res, err := sanitize("version\n"); err != nil || !reflect.DeepEqual(res, []string{"version"}) {
		t.Error("Expected sanitize('version') to return ['version']")
	}
	if res, err := sanitize("rpush jobs a\nrpush jobs b"); err != nil || !reflect.DeepEqual(res, []string{
		"rpush", "jobs", "a", "rpush", "jobs", "b",
	}) {
		t.Error("Expected other result for multiple operations")
	}

	if res, err := sanitize("lpush \"my list\" 'Hello there!' \"\""); err != nil || !reflect.DeepEqual(res, []string{
		"lpush", "my list", "Hello there!", "",
	}) {
		t.Error("Expected other result for string input, got", res)
	}

	_, err := sanitize("lpush \"error")
	if err != ErrUnbalancedQuotes {
		t.Error("Expected unterminated string error")
	}
}

func TestParse(t *testing.T) {
	str := "rpush jobs a b"
	cmd := &Command{Kind: CmdRPush, Key: "jobs", Values: []string{"a", "b"}}
	res, _ := ParseCommand(str)
	if !reflect.DeepEqual(cmd, res) {
		t.Error("Expected result to be:", cmd, "got", res)
	}

	str = "LRANGE jobs 0 -1"
	cmd = &Command{Kind: CmdLRange, Key: "jobs", Start: 0, Stop: -1}
	res, _ = ParseCommand(str)
	if !reflect.DeepEqual(cmd, res) {
		t.Error("Expected result to be:", cmd, "got", res)
	}

	str = "lset jobs -2 c"
	cmd = &Command{Kind: CmdLSet, Key: "jobs", Index: -2, Value: "c"}
	res, _ = ParseCommand(str)
	if !reflect.DeepEqual(cmd, res) {
		t.Error("Expected result to be:", cmd, "got", res)
	}

	if res, _ := ParseCommand("keys"); res.Pattern != "*" {
		t.Error("Expected keys to default to '*'")
	}
	if res, _ := ParseCommand("hello 3"); res.RespVersion != 3 {
		t.Error("Expected hello to parse the protocol version")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseCommand("lpop"); err == nil || err.Error() != ErrInvalidNArg("lpop").Error() {
		t.Error("Expected invalid number of arguments, got", err)
	}
	if _, err := ParseCommand("lindex jobs one"); err != ErrNotInt {
		t.Error("Expected ErrNotInt, got", err)
	}
	if _, err := ParseCommand("   "); err != ErrEmptyCommand {
		t.Error("Expected ErrEmptyCommand, got", err)
	}
	if _, err := ParseCommand("sadd s a"); err == nil || err.Error() != "ERR unknown command 'sadd'" {
		t.Error("Expected unknown command, got", err)
	}
}

func TestArgsRoundTrip(t *testing.T) {
	for _, line := range []string{"lpush k a b", "rpop k", "lset k 3 v", "del a b", "flushall"} {
		cmd, err := ParseCommand(line)
		if err != nil {
			t.Fatal(err)
		}
		if !cmd.Mutates() {
			t.Errorf("Expected '%s' to be a mutation", line)
		}

		again, err := ParseArgs(cmd.Args())
		if err != nil || !reflect.DeepEqual(cmd, again) {
			t.Errorf("Expected '%s' to survive Args()", line)
		}
	}

	cmd, _ := ParseCommand("lrange k 0 1")
	if cmd.Mutates() {
		t.Error("Expected lrange to be read-only")
	}
}
