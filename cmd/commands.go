package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

func ErrUnknownCmd(cmd string) error {
	return fmt.Errorf("ERR unknown command '%s'", cmd)
}

func ErrInvalidNArg(cmd string) error {
	return fmt.Errorf("ERR invalid number of arguments for command '%s'", cmd)
}

var ErrNotInt = errors.New("ERR value is not an integer or out of range")
var ErrUnbalancedQuotes = errors.New("ERR unbalanced quotes")
var ErrEmptyCommand = errors.New("ERR empty command")

type CommandType = byte

const (
	// Server commands
	CmdVersion CommandType = iota
	CmdPing
	CmdHello
	CmdClient
	CmdInfo
	CmdDbSize
	CmdKeys
	CmdDel
	CmdFlushAll
	// Lists
	CmdLPush
	CmdRPush
	CmdLPop
	CmdRPop
	CmdLLen
	CmdLRange
	CmdLRevRange
	CmdLIndex
	CmdLSet
)

type Command struct {
	Kind   CommandType
	Key    string
	Keys   []string
	Value  string
	Values []string

	Pattern     string // keys
	RespVersion int    // hello
	Start       int    // lrange, lrevrange
	Stop        int    // lrange, lrevrange
	Index       int    // lindex, lset
}

// Mutates reports whether the command changes the database and so has to be
// written to the WAL.
func (c *Command) Mutates() bool {
	switch c.Kind {
	case CmdLPush, CmdRPush, CmdLPop, CmdRPop, CmdLSet, CmdDel, CmdFlushAll:
		return true
	}
	return false
}

// Args renders the command back into its arguments.
func (c *Command) Args() []string {
	switch c.Kind {
	case CmdLPush:
		return append([]string{"lpush", c.Key}, c.Values...)
	case CmdRPush:
		return append([]string{"rpush", c.Key}, c.Values...)
	case CmdLPop:
		return []string{"lpop", c.Key}
	case CmdRPop:
		return []string{"rpop", c.Key}
	case CmdLSet:
		return []string{"lset", c.Key, strconv.Itoa(c.Index), c.Value}
	case CmdDel:
		return append([]string{"del"}, c.Keys...)
	case CmdFlushAll:
		return []string{"flushall"}
	}
	return nil
}

func ParseCommand(message string) (*Command, error) {
	split, err := sanitize(message)
	if err != nil {
		return nil, err
	}

	return ParseArgs(split)
}

func ParseArgs(split []string) (*Command, error) {
	argc := len(split)
	if argc == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := strings.ToLower(split[0])
	switch cmd {
	case "version":
		if argc != 1 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdVersion}, nil
	case "ping":
		if argc != 1 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdPing}, nil
	case "hello":
		hello := &Command{Kind: CmdHello, RespVersion: 2}
		if argc > 1 {
			version, err := strconv.Atoi(split[1])
			if err != nil {
				return nil, ErrNotInt
			}
			hello.RespVersion = version
		}
		return hello, nil
	case "client":
		if argc < 2 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdClient, Values: split[1:]}, nil
	case "info":
		if argc > 2 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdInfo}, nil
	case "dbsize":
		if argc != 1 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdDbSize}, nil
	case "keys":
		if argc > 2 {
			return nil, ErrInvalidNArg(cmd)
		}

		keys := &Command{Kind: CmdKeys, Pattern: "*"}
		if argc == 2 {
			keys.Pattern = split[1]
		}
		return keys, nil
	case "del":
		if argc < 2 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdDel, Keys: split[1:]}, nil
	case "flushall":
		if argc != 1 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdFlushAll}, nil
	case "lpush":
		if argc < 3 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdLPush, Key: split[1], Values: split[2:]}, nil
	case "rpush":
		if argc < 3 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdRPush, Key: split[1], Values: split[2:]}, nil
	case "lpop":
		if argc != 2 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdLPop, Key: split[1]}, nil
	case "rpop":
		if argc != 2 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdRPop, Key: split[1]}, nil
	case "llen":
		if argc != 2 {
			return nil, ErrInvalidNArg(cmd)
		}
		return &Command{Kind: CmdLLen, Key: split[1]}, nil
	case "lrange", "lrevrange":
		if argc != 4 {
			return nil, ErrInvalidNArg(cmd)
		}
		start, err := strconv.Atoi(split[2])
		if err != nil {
			return nil, ErrNotInt
		}
		stop, err := strconv.Atoi(split[3])
		if err != nil {
			return nil, ErrNotInt
		}

		kind := CmdLRange
		if cmd == "lrevrange" {
			kind = CmdLRevRange
		}
		return &Command{Kind: kind, Key: split[1], Start: start, Stop: stop}, nil
	case "lindex":
		if argc != 3 {
			return nil, ErrInvalidNArg(cmd)
		}
		index, err := strconv.Atoi(split[2])
		if err != nil {
			return nil, ErrNotInt
		}
		return &Command{Kind: CmdLIndex, Key: split[1], Index: index}, nil
	case "lset":
		if argc != 4 {
			return nil, ErrInvalidNArg(cmd)
		}
		index, err := strconv.Atoi(split[2])
		if err != nil {
			return nil, ErrNotInt
		}
		return &Command{Kind: CmdLSet, Key: split[1], Index: index, Value: split[3]}, nil
	}

	return nil, ErrUnknownCmd(cmd)
}

func isWhitespace(b byte) bool {
	return unicode.IsSpace(rune(b))
}

// Split an inline command into arguments, honoring single and double quotes
func sanitize(message string) ([]string, error) {
	out := []string{}
	i := 0

	for i < len(message) {
		c := message[i]
		if isWhitespace(c) {
			i++
			continue
		}

		if c == '"' || c == '\'' {
			end := strings.IndexByte(message[i+1:], c)
			if end < 0 {
				return nil, ErrUnbalancedQuotes
			}

			out = append(out, message[i+1:i+1+end])
			i += end + 2
			continue
		}

		start := i
		for i < len(message) && !isWhitespace(message[i]) {
			i++
		}

		out = append(out, message[start:i])
	}

	return out, nil
}
