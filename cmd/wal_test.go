package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWalAppendAndReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), WalName)

	wal, err := OpenWal(path)
	if err != nil {
		t.Fatal(err)
	}
	wal.Append([]string{"rpush", "k", "a b", ""})
	wal.Append([]string{"lpop", "k"})
	wal.Close()

	entries := [][]string{}
	n, err := ReplayWal(path, func(args []string) error {
		entries = append(entries, args)
		return nil
	})
	if err != nil || n != 2 {
		t.Fatal("Expected 2 entries, got", n, err)
	}

	expected := [][]string{{"rpush", "k", "a b", ""}, {"lpop", "k"}}
	if !reflect.DeepEqual(entries, expected) {
		t.Error("Expected other entries, got", entries)
	}
}

func TestReplayMissingWal(t *testing.T) {
	n, err := ReplayWal(filepath.Join(t.TempDir(), "none.log"), func(args []string) error {
		t.Error("Expected nothing to replay")
		return nil
	})
	if n != 0 || err != nil {
		t.Error("Expected a missing WAL to be skipped")
	}
}

func TestReplayTruncatedWal(t *testing.T) {
	path := filepath.Join(t.TempDir(), WalName)
	entry := "*3\r\n$5\r\nrpush\r\n$1\r\nk\r\n$1\r\na\r\n"
	if err := os.WriteFile(path, []byte(entry+"*3\r\n$5\r\nrpush\r\n$10\r\nabc"), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := ReplayWal(path, func(args []string) error { return nil })
	if err != nil || n != 1 {
		t.Fatal("Expected the truncated tail to be ignored, got", n, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != entry {
		t.Errorf("Expected the wal to be cut back to the last full entry, got %q", data)
	}

	wal, err := OpenWal(path)
	if err != nil {
		t.Fatal(err)
	}
	wal.Append([]string{"rpush", "k", "b"})
	wal.Close()

	entries := [][]string{}
	n, err = ReplayWal(path, func(args []string) error {
		entries = append(entries, args)
		return nil
	})
	expected := [][]string{{"rpush", "k", "a"}, {"rpush", "k", "b"}}
	if err != nil || n != 2 || !reflect.DeepEqual(entries, expected) {
		t.Error("Expected appends after truncation to replay cleanly, got", entries, err)
	}
}

func TestReplayCorruptWal(t *testing.T) {
	path := filepath.Join(t.TempDir(), WalName)
	if err := os.WriteFile(path, []byte("*2\r\n$5\r\nrpush\r\n:3\r\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReplayWal(path, func(args []string) error { return nil })
	if err == nil {
		t.Error("Expected a corrupt WAL to fail")
	}
}
