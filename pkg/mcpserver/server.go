// Package mcpserver exposes the registered tool surface over the Model
// Context Protocol, on stdio for desktop agent hosts and over streamable
// HTTP for remote ones.
package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/rspace-os/rspace-mcp/pkg/tools"
)

// Options configures the MCP server identity.
type Options struct {
	Name         string
	Version      string
	Instructions string
}

// Server bridges the tool executor to MCP transports.
type Server struct {
	mcp      *mcp.Server
	executor *tools.Executor
	log      zerolog.Logger
}

// New builds an MCP server exposing every tool the executor's policy allows,
// plus the legacy alias names for canonical tools that remain exposed.
func New(executor *tools.Executor, opts Options, log zerolog.Logger) *Server {
	if opts.Name == "" {
		opts.Name = "rspace-mcp"
	}
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    opts.Name,
		Version: opts.Version,
	}, &mcp.ServerOptions{
		Instructions: opts.Instructions,
	})

	s := &Server{
		mcp:      srv,
		executor: executor,
		log:      log,
	}

	for _, tool := range executor.AllowedTools() {
		def := tool.Tool
		srv.AddTool(&def, s.handler(tool.Name))
	}
	for alias, canonical := range executor.Registry().Aliases() {
		tool := executor.Registry().Get(canonical)
		if tool == nil || !executor.CanExecute(canonical) {
			continue
		}
		def := tool.Tool
		def.Name = alias
		srv.AddTool(&def, s.handler(alias))
	}

	return s
}

// Run serves MCP over stdio until the context is cancelled or the host
// disconnects. Logging goes to stderr; stdout belongs to the transport.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info().Msg("serving MCP on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until the context is
// cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.withRequestID(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("serving MCP over HTTP")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down HTTP server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// withRequestID tags every HTTP request with an ID and a request-scoped
// logger.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		log := s.log.With().Str("request_id", requestID).Logger()
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
	})
}

// handler adapts one tool to the MCP call shape. Executor rejections
// (unknown or policy-disabled tools) and tool failures both come back as
// error results rather than protocol errors, so the agent host can read
// them.
func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArguments(req.Params.Arguments)
		if err != nil {
			return errorCallResult(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		result, err := s.executor.Execute(ctx, name, args)
		if err != nil {
			return errorCallResult(err.Error()), nil
		}
		return toCallToolResult(result), nil
	}
}

// decodeArguments normalizes tool arguments to a map. Hosts deliver them as
// raw JSON, already-decoded maps, or nothing at all.
func decodeArguments(v any) (map[string]any, error) {
	switch args := v.(type) {
	case nil:
		return map[string]any{}, nil
	case json.RawMessage:
		return unmarshalArguments(args)
	case map[string]any:
		return args, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return unmarshalArguments(data)
	}
}

func unmarshalArguments(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// toCallToolResult converts a tool result to the MCP wire shape.
func toCallToolResult(result *tools.Result) *mcp.CallToolResult {
	out := &mcp.CallToolResult{IsError: result.IsError()}
	for _, block := range result.Content {
		switch block.Type {
		case "image":
			data, err := base64.StdEncoding.DecodeString(block.Data)
			if err != nil {
				out.Content = append(out.Content, &mcp.TextContent{
					Text: fmt.Sprintf("invalid image data: %v", err),
				})
				continue
			}
			out.Content = append(out.Content, &mcp.ImageContent{
				MIMEType: block.MimeType,
				Data:     data,
			})
		default:
			out.Content = append(out.Content, &mcp.TextContent{Text: block.Text})
		}
	}
	if len(out.Content) == 0 {
		out.Content = []mcp.Content{&mcp.TextContent{Text: result.Text()}}
	}
	return out
}

func errorCallResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
	}
}
