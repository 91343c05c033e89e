package rpc

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/sourcegraph/jsonrpc2"

	"needle"
	"needle/internal/logutil"
)

var logger = logutil.GetLogger("[rpc] ")

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// ExprParams are the parameters of every method.
type ExprParams struct {
	Expr string `json:"expr"`
}

// SubstringsResult is the result of the substrings method.
type SubstringsResult struct {
	Substrings []string `json:"substrings"`
}

// AlternativesResult is the result of the alternatedSubstrings method.
type AlternativesResult struct {
	Alternatives [][]string `json:"alternatives"`
}

// DisassembleResult is the result of the disassemble method.
type DisassembleResult struct {
	Expr         string     `json:"expr"`
	Substrings   []string   `json:"substrings"`
	Alternatives [][]string `json:"alternatives"`
	Tree         string     `json:"tree"`
}

// Server answers extraction requests.
type Server struct {
	d *needle.Disassembler
}

// NewServer returns a Server that extracts with d.
func NewServer(d *needle.Disassembler) *Server {
	return &Server{d}
}

// Serve handles requests on rwc until the peer disconnects or ctx is done.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}),
		s.handler())
	select {
	case <-conn.DisconnectNotify():
		logger.Println("peer disconnected")
		return nil
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	}
}

func (s *Server) handler() jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"substrings":           s.substrings,
		"alternatedSubstrings": s.alternatedSubstrings,
		"disassemble":          s.disassemble,
	})
}

type method func(context.Context, json.RawMessage) (any, error)

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		if req.Params == nil {
			return nil, errInvalidParams
		}
		return fn(ctx, *req.Params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *Server) substrings(_ context.Context, rawParams json.RawMessage) (any, error) {
	re, err := compile(rawParams)
	if err != nil {
		return nil, err
	}
	return SubstringsResult{s.d.Substrings(re.Tree())}, nil
}

func (s *Server) alternatedSubstrings(_ context.Context, rawParams json.RawMessage) (any, error) {
	re, err := compile(rawParams)
	if err != nil {
		return nil, err
	}
	return AlternativesResult{s.d.AlternatedSubstrings(re.Tree())}, nil
}

func (s *Server) disassemble(_ context.Context, rawParams json.RawMessage) (any, error) {
	re, err := compile(rawParams)
	if err != nil {
		return nil, err
	}
	var tree strings.Builder
	needle.Dump(&tree, re.Tree())
	return DisassembleResult{
		Expr:         re.String(),
		Substrings:   s.d.Substrings(re.Tree()),
		Alternatives: s.d.AlternatedSubstrings(re.Tree()),
		Tree:         tree.String(),
	}, nil
}

func compile(rawParams json.RawMessage) (*needle.Regexp, error) {
	var params *ExprParams
	if json.Unmarshal(rawParams, &params) != nil || params == nil {
		return nil, errInvalidParams
	}
	re, err := needle.Compile(params.Expr)
	if err != nil {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidRequest, Message: err.Error()}
	}
	return re, nil
}
