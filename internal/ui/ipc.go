package ui

import (
	"bufio"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"cradio/internal/ipc"
	"cradio/internal/logger"
)

const ipcReplyTimeout = time.Second

// ipcMsg is one remote command, delivered to the event loop with a channel
// for the reply. State is never touched off-loop; the accept goroutine only
// ferries lines back and forth.
type ipcMsg struct {
	cmd   string
	reply chan ipcReply
}

type ipcReply struct {
	ok   bool
	data string
	err  string
}

type ipcServer struct {
	listener net.Listener
	endpoint ipc.Endpoint
	messages chan ipcMsg

	done      chan struct{}
	closeOnce sync.Once
}

func newIPCServer() (*ipcServer, error) {
	listener, endpoint, err := ipc.Listen()
	if err != nil {
		return nil, err
	}

	server := &ipcServer{
		listener: listener,
		endpoint: endpoint,
		messages: make(chan ipcMsg),
		done:     make(chan struct{}),
	}
	go server.acceptLoop()
	return server, nil
}

func (s *ipcServer) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
			default:
				logger.Log.Printf("control socket accept: %v", err)
				s.Close()
			}
			return
		}
		go s.serveConn(conn)
	}
}

func (s *ipcServer) serveConn(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		return
	}

	replyCh := make(chan ipcReply, 1)
	select {
	case s.messages <- ipcMsg{cmd: scanner.Text(), reply: replyCh}:
	case <-s.done:
		return
	}

	select {
	case reply := <-replyCh:
		writeIPCReply(conn, reply)
	case <-time.After(ipcReplyTimeout):
	case <-s.done:
	}
}

func writeIPCReply(conn net.Conn, reply ipcReply) {
	var line string
	switch {
	case reply.ok && reply.data != "":
		line = "OK " + reply.data + "\n"
	case reply.ok:
		line = "OK\n"
	default:
		line = "ERR " + reply.err + "\n"
	}
	_, _ = conn.Write([]byte(line))
}

func (s *ipcServer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.listener.Close()
		ipc.Cleanup(s.endpoint)
	})
}

func parseIPCCommand(raw string) (string, error) {
	cmd := strings.ToUpper(strings.TrimSpace(raw))
	if cmd == "" {
		return "", errors.New("empty command")
	}
	return cmd, nil
}
