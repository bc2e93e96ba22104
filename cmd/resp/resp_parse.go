package resp

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

const (
	MaxBulkLen  = 512 * 1024 * 1024
	MaxArrayLen = 1024 * 1024
)

var ErrBadLength = errors.New("ERR protocol error: invalid length")
var ErrProtocol = errors.New("ERR protocol error: expected bulk string")

// Read parses one request. A RESP array of bulk strings comes back as
// []string, anything else is an inline command and comes back as the raw line.
// A request cut short by the end of the stream yields io.ErrUnexpectedEOF.
func Read(r *bufio.Reader) (any, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}

	if line == "" || line[0] != '*' {
		return line, nil
	}

	n, err := readLen(line, MaxArrayLen)
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, min(n, 64))
	for i := 0; i < n; i++ {
		arg, err := readBulk(r)
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}

	return args, nil
}

func readLine(r *bufio.Reader) (string, error) {
	l, err := r.ReadString('\n')
	if errors.Is(err, io.EOF) && l != "" {
		return "", io.ErrUnexpectedEOF
	}
	if err != nil {
		return "", err
	}

	return strings.TrimRight(l, "\r\n"), nil
}

// readBulk reads $<len>\r\n<bytes>\r\n. The body is copied as it arrives so a
// large declared length costs nothing until the bytes actually show up.
func readBulk(r *bufio.Reader) (string, error) {
	line, err := readLine(r)
	if err != nil {
		return "", err
	}
	if line == "" || line[0] != '$' {
		return "", ErrProtocol
	}

	n, err := readLen(line, MaxBulkLen)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if _, err := io.CopyN(&b, r, int64(n)+2); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}

	body := b.String()
	if !strings.HasSuffix(body, "\r\n") {
		return "", ErrProtocol
	}

	return body[:n], nil
}

func readLen(line string, limit int) (int, error) {
	n, err := strconv.Atoi(line[1:])
	if err != nil || n < 0 || n > limit {
		return 0, ErrBadLength
	}

	return n, nil
}
