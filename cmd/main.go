package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"skabillium/lists/cmd/resp"
)

const MemoVersion = "0.1.0"
const DefaultHost = "localhost"
const DefaultPort = "5678"

type Server struct {
	options *ServerOptions
	ln      net.Listener
	quitCh  chan struct{}
	stop    sync.Once

	// mu serializes command execution, the lists are not safe for
	// concurrent use.
	mu  sync.Mutex
	db  *Database
	wal *Wal

	connMu sync.Mutex
	conns  map[net.Conn]struct{}
}

func NewServer(options *ServerOptions) *Server {
	return &Server{
		options: options,
		quitCh:  make(chan struct{}),
		db:      NewDatabase(),
		conns:   make(map[net.Conn]struct{}),
	}
}

// Listen restores the WAL, if enabled, and binds the listening socket.
func (s *Server) Listen() error {
	if s.options.WalEnabled {
		n, err := ReplayWal(s.options.WalFile, s.replay)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("Replayed %d entries from %s", n, s.options.WalFile)
		}

		s.wal, err = OpenWal(s.options.WalFile)
		if err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(s.options.Host, s.options.Port))
	if err != nil {
		if s.wal != nil {
			s.wal.Close()
		}
		return err
	}

	s.ln = ln
	return nil
}

func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}

	log.Println("Memo server started on", s.Addr())

	go s.acceptLoop()
	<-s.quitCh

	return nil
}

func (s *Server) Stop() {
	s.stop.Do(func() {
		close(s.quitCh)
		if s.ln != nil {
			s.ln.Close()
		}

		s.connMu.Lock()
		for conn := range s.conns {
			conn.Close()
		}
		s.connMu.Unlock()

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.wal != nil {
			s.wal.Close()
			s.wal = nil
		}
	})
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-s.quitCh:
				return
			default:
			}

			log.Println("Accept error:", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// trackConn registers conn so Stop can close it. Connections accepted after
// Stop are closed right away.
func (s *Server) trackConn(conn net.Conn) bool {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	select {
	case <-s.quitCh:
		conn.Close()
		return false
	default:
	}

	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrackConn(conn net.Conn) {
	s.connMu.Lock()
	delete(s.conns, conn)
	s.connMu.Unlock()
	conn.Close()
}

func (s *Server) handleConnection(conn net.Conn) {
	if !s.trackConn(conn) {
		return
	}
	defer s.untrackConn(conn)
	defer func() {
		if err := recover(); err != nil {
			log.Printf("Dropping connection %s: %v", conn.RemoteAddr(), err)
		}
	}()

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)
	for {
		req, err := resp.Read(r)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				log.Println("Error while reading request:", err)
			}
			return
		}

		var reply any
		args, err := RequestArgs(req)
		if err != nil {
			reply = err
		} else if len(args) == 0 {
			// Blank inline line
			continue
		} else {
			reply = s.execute(args)
		}

		out, err := resp.Serialize(reply)
		if err != nil {
			out = resp.SerializeError(err)
		}

		w.WriteString(out)
		if r.Buffered() == 0 {
			if err := w.Flush(); err != nil {
				log.Println("Error while writing reply:", err)
				return
			}
		}
	}
}

// execute runs a single command and returns its reply, errors included.
func (s *Server) execute(args []string) any {
	cmd, err := ParseArgs(args)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reply := s.apply(cmd)
	if _, failed := reply.(error); !failed && cmd.Mutates() && s.wal != nil {
		s.wal.Append(cmd.Args())
	}

	return reply
}

func (s *Server) replay(args []string) error {
	cmd, err := ParseArgs(args)
	if err != nil {
		return err
	}
	if !cmd.Mutates() {
		return fmt.Errorf("unexpected command '%s' in wal", args[0])
	}

	if err, ok := s.apply(cmd).(error); ok {
		return err
	}
	return nil
}

func (s *Server) apply(cmd *Command) any {
	switch cmd.Kind {
	case CmdVersion:
		return "Memo server version " + MemoVersion
	case CmdPing:
		return resp.SimpleString("PONG")
	case CmdHello:
		if cmd.RespVersion != 2 && cmd.RespVersion != 3 {
			return errors.New("NOPROTO unsupported protocol version")
		}
		hello := resp.Map{
			{Key: "server", Value: "memo"},
			{Key: "version", Value: MemoVersion},
			{Key: "proto", Value: cmd.RespVersion},
			{Key: "mode", Value: "standalone"},
		}
		if cmd.RespVersion == 2 {
			return hello.Flat()
		}
		return hello
	case CmdClient:
		return resp.SimpleString("OK")
	case CmdInfo:
		return fmt.Sprintf("# Server\r\nmemo_version:%s\r\nprocess_id:%d\r\n# Keyspace\r\nkeys:%d\r\n",
			MemoVersion, os.Getpid(), s.db.Size())
	case CmdDbSize:
		return s.db.Size()
	case CmdKeys:
		keys, err := s.db.Keys(cmd.Pattern)
		if err != nil {
			return fmt.Errorf("ERR %w", err)
		}
		return keys
	case CmdDel:
		return s.db.Del(cmd.Keys...)
	case CmdFlushAll:
		s.db.FlushAll()
		return resp.SimpleString("OK")
	case CmdLPush:
		return s.db.LPush(cmd.Key, cmd.Values...)
	case CmdRPush:
		return s.db.RPush(cmd.Key, cmd.Values...)
	case CmdLPop:
		if v, ok := s.db.LPop(cmd.Key); ok {
			return v
		}
		return nil
	case CmdRPop:
		if v, ok := s.db.RPop(cmd.Key); ok {
			return v
		}
		return nil
	case CmdLLen:
		return s.db.LLen(cmd.Key)
	case CmdLRange:
		return s.db.LRange(cmd.Key, cmd.Start, cmd.Stop)
	case CmdLRevRange:
		return s.db.LRevRange(cmd.Key, cmd.Start, cmd.Stop)
	case CmdLIndex:
		if v, ok := s.db.LIndex(cmd.Key, cmd.Index); ok {
			return v
		}
		return nil
	case CmdLSet:
		if err := s.db.LSet(cmd.Key, cmd.Index, cmd.Value); err != nil {
			return err
		}
		return resp.SimpleString("OK")
	}

	return ErrUnknownCmd(fmt.Sprint(cmd.Kind))
}

func main() {
	log.SetPrefix("memo: ")

	options, err := getServerOptions(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	server := NewServer(options)

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigch
		log.Println("Shutting down")
		server.Stop()
	}()

	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
