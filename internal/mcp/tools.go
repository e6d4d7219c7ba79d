package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cartograph/internal/game"
	cartnet "cartograph/internal/net"
	"cartograph/internal/store"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// port is the TCP port for the human player connection, set by main.
var port string

// configFile is the path to the game config YAML file, set by main.
var configFile string

// gameStore persists snapshots across sessions, set by main. Defaults to
// an in-memory store when nil.
var gameStore store.Store

// SetPort sets the TCP port for the human player connection.
func SetPort(p string) {
	port = p
}

// SetConfigFile sets the path to the game config YAML file.
func SetConfigFile(path string) {
	configFile = path
}

// SetStore sets the snapshot store shared by all sessions.
func SetStore(st store.Store) {
	gameStore = st
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(getStateTool(), handleGetState)
	s.AddTool(selectCardTool(), handleSelectCard)
	s.AddTool(clickCellTool(), handleClickCell)
	s.AddTool(resolveChoiceTool(), handleResolveChoice)
	s.AddTool(endTurnTool(), handleEndTurn)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new territory game on the 10x10 grid. The human player connects via "+
			"`cartograph-cli join --addr localhost:<port>` in a separate terminal. "+
			"This call blocks until the human connects."),
		mcp.WithNumber("seat", mcp.Required(), mcp.Description("Which seat you play: 1 = goes first, 2 = goes second")),
		mcp.WithString("game_id", mcp.Description("Resume a stored game by its five character id instead of dealing a new one")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current game state, accumulated events, and any pending choice without acting. Read-only."),
	)
}

func selectCardTool() mcp.Tool {
	return mcp.NewTool("select_card",
		mcp.WithDescription("Take a card from your hand to start your turn. Until your opening card (id 99) "+
			"has been played it is the only legal pick."),
		mcp.WithNumber("card_id", mcp.Required(), mcp.Description("Card id from your hand")),
	)
}

func clickCellTool() mcp.Tool {
	return mcp.NewTool("click_cell",
		mcp.WithDescription("Click a board square while a card is resolving. Squares are numbered 0-99, row-major. "+
			"Move cards take two clicks: first your piece, then the destination. A destination off the board removes the piece."),
		mcp.WithNumber("square", mcp.Required(), mcp.Description("Board square index. May be outside 0-99 for the second click of a move.")),
	)
}

func resolveChoiceTool() mcp.Tool {
	return mcp.NewTool("resolve_choice",
		mcp.WithDescription("Answer the pending choice shown in the last response. Provide exactly the field the "+
			"choice kind asks for: direction, layer, or card_id (with discard=true to discard an opponent card). "+
			"cancel=true backs out where the choice allows it."),
		mcp.WithString("direction", mcp.Description("north, east, south or west")),
		mcp.WithString("layer", mcp.Description("points, lines or polygons")),
		mcp.WithNumber("card_id", mcp.Description("Card id for discard, deck, or opponent card picks")),
		mcp.WithBoolean("discard", mcp.Description("For opponent card picks: true discards the card instead of using it")),
		mcp.WithBoolean("cancel", mcp.Description("Cancel the choice where allowed")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End your turn early while a card with remaining plays is resolving."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	seat := request.GetInt("seat", 1)
	if seat != 1 && seat != 2 {
		return mcp.NewToolResultError("seat must be 1 or 2"), nil
	}
	gameID := request.GetString("game_id", "")

	cfg := game.DefaultConfig()
	if configFile != "" {
		parsed, err := game.ParseConfigFile(configFile)
		if err != nil {
			return mcp.NewToolResultErrorf("Failed to load config: %v", err), nil
		}
		cfg = parsed
	}

	sess, err := NewGameSession(cfg, seat, port, gameID, gameStore)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess

	sess.mu.Lock()
	resp := sess.respondLocked()
	sess.mu.Unlock()
	resp.Port = port

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess.mu.Lock()
	resp := sess.respondLocked()
	sess.mu.Unlock()

	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleSelectCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cardID := request.GetInt("card_id", 0)
	return act(cartnet.ClientMessage{Type: "select_card", CardID: cardID})
}

func handleClickCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	square := request.GetInt("square", -1)
	return act(cartnet.ClientMessage{Type: "click_cell", Square: square})
}

func handleResolveChoice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return act(cartnet.ClientMessage{
		Type:      "resolve_choice",
		Direction: request.GetString("direction", ""),
		Layer:     request.GetString("layer", ""),
		CardID:    request.GetInt("card_id", 0),
		Discard:   request.GetBool("discard", false),
		Cancel:    request.GetBool("cancel", false),
	})
}

func handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return act(cartnet.ClientMessage{Type: "end_turn"})
}

// act applies one message for the agent's seat and returns the fresh view.
func act(msg cartnet.ClientMessage) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess.mu.Lock()
	if sess.humanErr != nil {
		resp := sess.respondLocked()
		sess.mu.Unlock()
		activeSession = nil
		return mcp.NewToolResultText(respondJSON(resp)), nil
	}
	if err := applyMessage(sess.engine, sess.agent, msg); err != nil {
		sess.mu.Unlock()
		return mcp.NewToolResultErrorf("Rejected: %v", err), nil
	}
	sess.syncLocked(context.Background())
	if sess.engine.Phase() == game.PhaseGameOver {
		sess.sendGameOverLocked()
	}
	resp := sess.respondLocked()
	sess.mu.Unlock()

	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
