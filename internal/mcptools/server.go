package mcptools

import (
	"context"

	"github.com/chris-regnier/moodlog/internal/journal"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Options configure the tool server.
type Options struct {
	// DataDir is used for prompt cache invalidation after writes; "" skips it.
	DataDir string
	Log     *zap.Logger
}

// NewMoodlogMCPServer creates an in-memory MCP server exposing the journal tools.
// Returns the server and a client transport for connecting to it.
func NewMoodlogMCPServer(session *journal.Session, opts Options) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(session, opts)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with registered journal tools.
func CreateMCPServer(session *journal.Session, opts Options) *mcp.Server {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	log := opts.Log.Named("mcp")

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "moodlog",
		Version: "1.0.0",
	}, nil)

	// Read tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_patterns",
		Description: "Energy by weekday, mood counts, time-of-day counts, insights and summary for the whole journal",
	}, PatternsHandler(session))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_day",
		Description: "The first check-in recorded on a calendar day",
	}, DayHandler(session))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_checkins",
		Description: "List check-ins newest first, optionally within an inclusive date range",
	}, ListHandler(session))

	// Write tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_checkin",
		Description: "Record a check-in with mood (1-5 or name), energy (0-10) and a reflection",
	}, CreateCheckinHandler(session, opts.DataDir, log))

	return server
}
