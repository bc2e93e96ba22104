package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"skabillium/lists/cmd/resp"
)

const WalName = "wal.log"

// Wal appends mutating commands to a file as RESP arrays. Writes happen on a
// single goroutine fed through walch.
type Wal struct {
	walch chan []string
	done  chan struct{}
}

func OpenWal(path string) (*Wal, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening wal: %w", err)
	}

	w := &Wal{walch: make(chan []string, 64), done: make(chan struct{})}
	go w.writeToWAL(file)
	return w, nil
}

func (w *Wal) Append(args []string) {
	w.walch <- args
}

// Close flushes pending entries and closes the file.
func (w *Wal) Close() {
	close(w.walch)
	<-w.done
}

func (w *Wal) writeToWAL(file *os.File) {
	defer close(w.done)
	defer file.Close()

	for args := range w.walch {
		line, err := resp.Serialize(args)
		if err != nil {
			log.Println("Error serializing wal entry:", err)
			continue
		}

		if _, err := file.WriteString(line); err != nil {
			log.Println("Error writing wal entry:", err)
			// Keep draining so Append never blocks.
			for range w.walch {
			}
			return
		}
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// ReplayWal reads every entry in the log at path and hands its arguments to
// apply. A missing log is not an error. A final entry cut short by a crash is
// treated as the end of the log and truncated away so later appends start on
// an entry boundary.
func ReplayWal(path string, apply func(args []string) error) (int, error) {
	if !FileExists(path) {
		return 0, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening wal: %w", err)
	}
	defer file.Close()

	cr := &countingReader{r: file}
	r := bufio.NewReader(cr)
	n := 0
	var good int64
	for {
		req, err := resp.Read(r)
		if err == io.EOF {
			return n, nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			log.Printf("WARNING: wal %s ends with a truncated entry at offset %d, ignoring it", path, good)
			if err := os.Truncate(path, good); err != nil {
				return n, fmt.Errorf("truncating wal: %w", err)
			}
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("reading wal entry %d: %w", n+1, err)
		}

		args, err := RequestArgs(req)
		if err != nil {
			return n, fmt.Errorf("reading wal entry %d: %w", n+1, err)
		}
		if err := apply(args); err != nil {
			return n, fmt.Errorf("replaying wal entry %d: %w", n+1, err)
		}
		n++
		good = cr.n - int64(r.Buffered())
	}
}
