package shim

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/gzhole/veto/internal/policy"
)

// DialTimeout is the hard timeout on a shim→daemon connection; any failure
// to connect, write, read, or decode within this window is treated as
// deny — a broken enforcement path must not silently permit.
const DialTimeout = 1 * time.Second

// Check sends a single CheckRequest to the daemon at 127.0.0.1:port and
// returns its response. Any error (connect, write, read, timeout,
// malformed response) returns Allowed=false so callers fail closed without
// special-casing the error path.
func Check(port int, req policy.CheckRequest) policy.CheckResponse {
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", port), DialTimeout)
	if err != nil {
		return policy.CheckResponse{Allowed: false, Reason: "veto daemon unreachable"}
	}
	defer func() { _ = conn.Close() }()

	_ = conn.SetDeadline(time.Now().Add(DialTimeout))

	data, err := json.Marshal(req)
	if err != nil {
		return policy.CheckResponse{Allowed: false, Reason: "internal error building check request"}
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return policy.CheckResponse{Allowed: false, Reason: "veto daemon write failed"}
	}

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		return policy.CheckResponse{Allowed: false, Reason: "veto daemon gave no response"}
	}

	var resp policy.CheckResponse
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return policy.CheckResponse{Allowed: false, Reason: "veto daemon returned a malformed response"}
	}
	return resp
}
