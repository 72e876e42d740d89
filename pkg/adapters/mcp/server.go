package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lotka"
	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StoryURI is the resource under which the story document is exposed.
const StoryURI = "lotka://story"

// ViewResponse is the result of every navigation tool.
type ViewResponse struct {
	View    domain.View `json:"view" jsonschema_description:"The view on screen after the call"`
	History []string    `json:"history" jsonschema_description:"Scene ids that back would return to, oldest first"`
}

// Inspector loads the story document for the graph tool and resource.
type Inspector interface {
	Inspect(ctx context.Context) (*domain.Story, error)
}

var (
	ErrChoiceUnavailable = errors.New("choice not available")
	ErrNoHistory         = errors.New("nothing to go back to")
)

// Server exposes one reading session as an MCP server.
// Tool calls may arrive concurrently; they are serialized on the session.
type Server struct {
	mu        sync.Mutex
	nav       ports.Navigator
	inspector Inspector
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance over nav.
// inspector may be nil, in which case no graph tool or resource is registered.
func NewServer(nav ports.Navigator, inspector Inspector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		nav:       nav,
		inspector: inspector,
		logger:    logger,
		mcpServer: server.NewMCPServer("lotka-mcp", strings.TrimSpace(lotka.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("view",
		mcp.WithDescription("Show the current scene: title, paragraphs and numbered choices."),
		mcp.WithOutputSchema[ViewResponse](),
	), mcp.NewStructuredToolHandler(s.handleView))

	s.mcpServer.AddTool(mcp.NewTool("choose",
		mcp.WithDescription("Follow one of the choices of the current scene."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based index of the choice, as listed in the view")),
		mcp.WithOutputSchema[ViewResponse](),
	), mcp.NewStructuredToolHandler(s.handleChoose))

	s.mcpServer.AddTool(mcp.NewTool("back",
		mcp.WithDescription("Return to the previous scene."),
		mcp.WithOutputSchema[ViewResponse](),
	), mcp.NewStructuredToolHandler(s.handleBack))

	s.mcpServer.AddTool(mcp.NewTool("restart",
		mcp.WithDescription("Restart from the beginning in two steps. Without confirm the question is asked; confirm=true restarts, confirm=false keeps reading."),
		mcp.WithBoolean("confirm", mcp.Description("Answer to the restart question")),
		mcp.WithOutputSchema[ViewResponse](),
	), mcp.NewStructuredToolHandler(s.handleRestart))

	if s.inspector == nil {
		return
	}
	s.mcpServer.AddTool(mcp.NewTool("get_story",
		mcp.WithDescription("Get the full story document for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := s.storyJSON(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	})
}

func (s *Server) registerResources() {
	if s.inspector == nil {
		return
	}
	s.mcpServer.AddResource(mcp.NewResource(StoryURI, "Story Document",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.storyJSON(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect story: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      StoryURI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}

func (s *Server) storyJSON(ctx context.Context) (string, error) {
	story, err := s.inspector.Inspect(ctx)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(story)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Server) handleView(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ViewResponse, error) {
	return s.apply(func(nav ports.Navigator) (domain.View, error) {
		return nav.View(), nil
	})
}

func (s *Server) handleChoose(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ViewResponse, error) {
	raw, ok := args["index"].(float64)
	if !ok || raw < 0 || raw != float64(int(raw)) {
		return ViewResponse{}, fmt.Errorf("index must be a non-negative integer")
	}
	index := int(raw)

	return s.apply(func(nav ports.Navigator) (domain.View, error) {
		view := nav.View()
		if view.RestartPrompt || index >= len(view.Choices) {
			return view, fmt.Errorf("%w: %d", ErrChoiceUnavailable, index)
		}
		return nav.Choose(index), nil
	})
}

func (s *Server) handleBack(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ViewResponse, error) {
	return s.apply(func(nav ports.Navigator) (domain.View, error) {
		if view := nav.View(); !view.BackEnabled {
			return view, ErrNoHistory
		}
		return nav.Back(), nil
	})
}

func (s *Server) handleRestart(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ViewResponse, error) {
	confirm, answered := args["confirm"].(bool)

	return s.apply(func(nav ports.Navigator) (domain.View, error) {
		switch {
		case !answered:
			return nav.OpenRestart(), nil
		case !nav.View().RestartPrompt:
			return nav.View(), domain.ErrRestartNotConfirmed
		case confirm:
			return nav.ConfirmRestart(), nil
		default:
			return nav.CancelRestart(), nil
		}
	})
}

func (s *Server) apply(op func(ports.Navigator) (domain.View, error)) (ViewResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := op(s.nav)
	if err != nil {
		s.logger.Debug("MCP tool rejected", "err", err, "scene_id", view.SceneID)
		return ViewResponse{}, err
	}
	return ViewResponse{View: view, History: s.nav.State().History}, nil
}
