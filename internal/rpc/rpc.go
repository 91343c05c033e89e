// Package rpc serves substring extraction over JSON-RPC 2.0, with the
// Content-Length framing used by language servers.
package rpc

import (
	"context"
	"os"

	"needle"
	"needle/internal/prog"
)

// Program is the RPC subprogram.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if !f.Serve {
		return prog.ErrNotSuitable
	}
	if len(args) > 0 {
		return prog.BadUsage("-serve takes no arguments")
	}
	s := NewServer(&needle.Disassembler{MaxAlternatives: f.MaxAlternatives})
	return s.Serve(context.Background(), transport{fds[0], fds[1]})
}

type transport struct{ in, out *os.File }

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	if err := c.in.Close(); err != nil {
		c.out.Close()
		return err
	}
	return c.out.Close()
}
