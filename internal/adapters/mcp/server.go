// Package mcp exposes the interpreter as a Model Context Protocol server,
// so agents can decode and run machines as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mfeilner/unimach"
	"github.com/mfeilner/unimach/pkg/encoding"
	"github.com/mfeilner/unimach/pkg/machines"
)

// RunResponse is the structured result of the run_machine tool. It mirrors
// the HTTP adapter's run payload so agents see one shape across transports.
type RunResponse struct {
	Result     int    `json:"result" jsonschema_description:"Count of zero cells on the final tape"`
	Steps      int    `json:"steps" jsonschema_description:"Number of transitions applied"`
	FinalState string `json:"final_state" jsonschema_description:"State the machine halted in"`
	FinalTape  string `json:"final_tape" jsonschema_description:"Final band as a symbol string"`
}

// DecodeResponse is the structured result of the decode_machine tool.
type DecodeResponse struct {
	Transitions  []string `json:"transitions" jsonschema_description:"Rules in (state, read) -> (state, write, move) form"`
	HaltingState string   `json:"halting_state" jsonschema_description:"Target state of the last rule"`
	Word         string   `json:"word,omitempty" jsonschema_description:"Input word when the code carries one after '111'"`
}

// Server wraps the interpreter and exposes it as an MCP Server.
type Server struct {
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(logger *slog.Logger) *Server {
	s := &Server{
		logger:    logger,
		mcpServer: server.NewMCPServer("unimach-mcp", strings.TrimSpace(unimach.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: run_machine
	runTool := mcp.NewTool("run_machine",
		mcp.WithDescription("Run a Turing machine encoding and return the unary result read off the final tape."),
		mcp.WithString("code", mcp.Required(), mcp.Description("Machine encoding over {0,1}, optionally with the input word after '111'")),
		mcp.WithString("word", mcp.Description("Input word written onto the tape (optional)")),
		mcp.WithString("operands", mcp.Description("Operand pair encoded as the input word, e.g. '2,4' (optional)")),
		mcp.WithNumber("tape_size", mcp.Description("Tape size in cells (default 200)")),
		mcp.WithBoolean("strict", mcp.Description("Fail on undefined transitions instead of falling back to the first rule")),
		mcp.WithNumber("step_limit", mcp.Description("Abort after this many steps (0 means unlimited)")),
		mcp.WithOutputSchema[RunResponse](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))

	// TOOL: decode_machine
	decodeTool := mcp.NewTool("decode_machine",
		mcp.WithDescription("Decode a machine encoding into a readable transition table."),
		mcp.WithString("code", mcp.Required(), mcp.Description("Machine encoding over {0,1}")),
		mcp.WithOutputSchema[DecodeResponse](),
	)
	s.mcpServer.AddTool(decodeTool, mcp.NewStructuredToolHandler(s.handleDecode))

	// TOOL: list_machines
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the built-in machines with their encodings."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(machines.Catalog())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	code, _ := args["code"].(string)

	opts := []unimach.Option{unimach.WithLogger(s.logger)}
	if word, ok := args["word"].(string); ok && word != "" {
		opts = append(opts, unimach.WithWord(word))
	}
	if operands, ok := args["operands"].(string); ok && operands != "" {
		a, b, err := parseOperandPair(operands)
		if err != nil {
			return RunResponse{}, err
		}
		opts = append(opts, unimach.WithOperands(a, b))
	}
	if size, ok := args["tape_size"].(float64); ok && size > 0 {
		opts = append(opts, unimach.WithTapeSize(int(size)))
	}
	if strict, ok := args["strict"].(bool); ok && strict {
		opts = append(opts, unimach.WithStrictMatching())
	}
	if limit, ok := args["step_limit"].(float64); ok && limit > 0 {
		opts = append(opts, unimach.WithStepLimit(int(limit)))
	}

	machine, err := unimach.New(code, opts...)
	if err != nil {
		return RunResponse{}, fmt.Errorf("invalid machine: %w", err)
	}

	result, err := machine.Run(ctx)
	if err != nil {
		s.logger.Warn("MCP run failed", "error", err)
		return RunResponse{}, fmt.Errorf("run failed: %w", err)
	}

	return RunResponse{
		Result:     result.Value,
		Steps:      result.Steps,
		FinalState: result.FinalState.String(),
		FinalTape:  encoding.EncodeWord(result.Tape),
	}, nil
}

func (s *Server) handleDecode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DecodeResponse, error) {
	code, _ := args["code"].(string)

	machineCode, word, _ := encoding.SplitComposite(code)
	program, err := encoding.DecodeProgram(machineCode)
	if err != nil {
		return DecodeResponse{}, fmt.Errorf("decode failed: %w", err)
	}

	rules := make([]string, 0, len(program.Transitions))
	for _, t := range program.Transitions {
		rules = append(rules, t.String())
	}

	return DecodeResponse{
		Transitions:  rules,
		HaltingState: program.HaltingState().String(),
		Word:         word,
	}, nil
}

func parseOperandPair(s string) (uint, uint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("operands must be a pair, e.g. '2,4'")
	}
	pair := make([]uint, 2)
	for i, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid operand %q: %w", part, err)
		}
		pair[i] = uint(n)
	}
	return pair[0], pair[1], nil
}

func (s *Server) registerResources() {
	// EXPOSE: unimach://machines
	s.mcpServer.AddResource(mcp.NewResource("unimach://machines", "Built-in Machine Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(machines.Catalog())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "unimach://machines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
