// Package daemon is the in-process permission daemon: a single accept loop
// over loopback TCP connections, each a stream of
// newline-delimited JSON CheckRequest/CheckResponse pairs. Uses a
// bufio.Scanner with a generous buffer cap, one goroutine per connection,
// fail-open on unparseable input.
package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/gzhole/veto/internal/logger"
	"github.com/gzhole/veto/internal/policy"
)

const maxLineBytes = 1024 * 1024

// state is the daemon's lifecycle: constructed → listening → stopped, no
// restart.
type state int

const (
	stateConstructed state = iota
	stateListening
	stateStopped
)

// Daemon is the loopback permission server. Construct with New, call Start
// once, Stop once; a new Daemon is required for a new session.
type Daemon struct {
	policies []*policy.Policy
	audit    *logger.AuditLogger
	stderr   io.Writer

	mu       sync.Mutex
	state    state
	listener net.Listener
	session  *SessionState
	wg       sync.WaitGroup
}

// New constructs a daemon that will evaluate requests against policies, in
// declared order, first blocking policy wins.
func New(policies []*policy.Policy, audit *logger.AuditLogger) *Daemon {
	return &Daemon{
		policies: policies,
		audit:    audit,
		stderr:   os.Stderr,
		session:  NewSessionState(),
	}
}

// Start binds 127.0.0.1:0 (or the given port override) and begins
// accepting connections in the background. It returns once the listener is
// bound, with the resolved port.
func (d *Daemon) Start(port int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != stateConstructed {
		return 0, fmt.Errorf("daemon: Start called twice")
	}

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return 0, fmt.Errorf("daemon: listen: %w", err)
	}
	d.listener = ln
	d.state = stateListening

	d.wg.Add(1)
	go d.acceptLoop()

	return ln.Addr().(*net.TCPAddr).Port, nil
}

func (d *Daemon) acceptLoop() {
	defer d.wg.Done()
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return // listener closed by Stop
		}
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.handleConn(conn)
		}()
	}
}

func (d *Daemon) handleConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req policy.CheckRequest
		if err := json.Unmarshal(line, &req); err != nil {
			// Malformed JSON: fail open.
			writeResponse(conn, policy.CheckResponse{Allowed: true})
			continue
		}

		resp := Evaluate(req, d.policies)
		d.record(req, resp)
		writeResponse(conn, resp)
	}
}

func (d *Daemon) record(req policy.CheckRequest, resp policy.CheckResponse) {
	d.mu.Lock()
	if resp.Allowed {
		d.session.recordAllow()
	} else {
		d.session.recordBlock(BlockedAction{Action: req.Action, Target: req.Target, Reason: resp.Reason})
	}
	d.mu.Unlock()

	if d.audit == nil {
		return
	}
	decision := "allow"
	if !resp.Allowed {
		decision = "deny"
	}
	_ = d.audit.Log(logger.AuditEvent{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Action:    req.Action,
		Target:    req.Target,
		Command:   req.Command,
		Decision:  decision,
		Reason:    resp.Reason,
		Suggest:   resp.Suggest,
		Source:    "daemon",
	})
}

func writeResponse(conn net.Conn, resp policy.CheckResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = conn.Write(data)
}

// Stop closes the listener, waits for in-flight connections to drain, and
// returns the session summary. It is safe to call Stop exactly once.
func (d *Daemon) Stop() Snapshot {
	d.mu.Lock()
	if d.state != stateListening {
		d.mu.Unlock()
		return Snapshot{}
	}
	d.state = stateStopped
	ln := d.listener
	d.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	d.wg.Wait()

	d.mu.Lock()
	snap := d.session.Snapshot()
	d.mu.Unlock()
	return snap
}

// Run blocks until ctx is cancelled, then stops the daemon. Used by the CLI
// so SIGINT/SIGTERM (wired by the caller into ctx) gives the daemon a
// single opportunity to stop and summarise.
func (d *Daemon) Run(ctx context.Context, port int) (int, <-chan Snapshot, error) {
	p, err := d.Start(port)
	if err != nil {
		return 0, nil, err
	}
	done := make(chan Snapshot, 1)
	go func() {
		<-ctx.Done()
		done <- d.Stop()
	}()
	return p, done, nil
}
