package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn       net.Conn
	playerName string // "P1" or "P2"
}

// Connect joins a hosted game and runs the REPL. gameID may be empty when
// the host is dealing a fresh game.
func Connect(ctx context.Context, addr, gameID string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: "join", GameID: gameID}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for game to start...")

	client := &Client{conn: conn, playerName: "P2"}
	return client.RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(os.Stdin)

	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			c.renderEvent(msg.Event)

		case "rejected":
			fmt.Printf("Rejected: %s\n", msg.Reason)

		case "state":
			c.renderState(msg.State)
			if msg.State != nil && msg.State.IsYourTurn {
				if err := c.promptCommand(reader, enc, msg.State); err != nil {
					return err
				}
			}

		case "choice":
			if err := c.promptChoice(reader, enc, msg.Choice); err != nil {
				return err
			}

		case "game_over":
			fmt.Println()
			fmt.Println("═══════════════════════════════════")
			fmt.Println("          GAME OVER")
			fmt.Println("═══════════════════════════════════")
			fmt.Println(msg.Result)
			if msg.Scores != nil {
				fmt.Printf("Player 1: %d points\n", msg.Scores.PlayerOne.FinalScore)
				fmt.Printf("Player 2: %d points\n", msg.Scores.PlayerTwo.FinalScore)
			}
			fmt.Println("═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	fmt.Printf("T%-3d %s\n", ev.Turn, ev.Details)
}

func cellGlyph(v int) string {
	switch v {
	case 1:
		return "①"
	case 2:
		return "②"
	default:
		return "·"
	}
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}

	valid := make(map[int]bool, len(sv.ValidSquares))
	for _, sq := range sv.ValidSquares {
		valid[sq] = true
	}

	fmt.Println()
	fmt.Println("    0 1 2 3 4 5 6 7 8 9")
	for row := 0; row < 10; row++ {
		fmt.Printf("%2d  ", row*10)
		for col := 0; col < 10; col++ {
			sq := row*10 + col
			glyph := cellGlyph(sv.Board[sq])
			if valid[sq] {
				glyph = "+"
			}
			if sq == sv.HotspotAnchor {
				glyph = "◎"
			}
			fmt.Printf("%s ", glyph)
		}
		fmt.Println()
	}

	turnInfo := fmt.Sprintf("Game %s | %s | Deck: %d | Opponent hand: %d",
		sv.GameID, sv.Phase, sv.DeckCount, sv.OpponentHandCount)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Println(turnInfo)
	if sv.ActiveCard != "" {
		fmt.Printf("Resolving %s (%d plays left)\n", sv.ActiveCard, sv.PlaysRemaining)
	}

	if len(sv.Hand) > 0 {
		fmt.Printf("Hand: ")
		for _, cv := range sv.Hand {
			fmt.Printf("[%d] %s  ", cv.ID, cv.Name)
		}
		fmt.Println()
	}
}

// promptCommand reads one action for the current state. Commands:
// play <card id>, click <square>, done.
func (c *Client) promptCommand(reader *bufio.Reader, enc *json.Encoder, sv *StateView) error {
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "play":
			if len(fields) != 2 {
				fmt.Println("Usage: play <card id>")
				continue
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("Usage: play <card id>")
				continue
			}
			return enc.Encode(ClientMessage{Type: "select_card", CardID: id})
		case "click":
			if len(fields) != 2 {
				fmt.Println("Usage: click <square>")
				continue
			}
			sq, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("Usage: click <square>")
				continue
			}
			return enc.Encode(ClientMessage{Type: "click_cell", Square: sq})
		case "done":
			return enc.Encode(ClientMessage{Type: "end_turn"})
		default:
			fmt.Println("Commands: play <card id> | click <square> | done")
		}
	}
}

func (c *Client) promptChoice(reader *bufio.Reader, enc *json.Encoder, cv *ChoiceView) error {
	if cv == nil {
		return nil
	}
	fmt.Printf("\n%s\n", cv.Prompt)
	for _, opt := range cv.Options {
		fmt.Printf("  [%d] %s\n", opt.ID, opt.Name)
	}

	for {
		fmt.Print("? ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		fields := strings.Fields(strings.ToLower(line))
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "cancel" {
			return enc.Encode(ClientMessage{Type: "resolve_choice", Cancel: true})
		}

		switch cv.Kind {
		case "direction":
			if _, ok := map[string]bool{"north": true, "east": true, "south": true, "west": true}[fields[0]]; !ok {
				fmt.Println("Enter north, east, south or west")
				continue
			}
			return enc.Encode(ClientMessage{Type: "resolve_choice", Direction: fields[0]})
		case "layer":
			if _, ok := map[string]bool{"points": true, "lines": true, "polygons": true}[fields[0]]; !ok {
				fmt.Println("Enter points, lines or polygons")
				continue
			}
			return enc.Encode(ClientMessage{Type: "resolve_choice", Layer: fields[0]})
		case "opponent card":
			if len(fields) != 2 || (fields[1] != "use" && fields[1] != "discard") {
				fmt.Println("Enter <card id> use|discard, or cancel")
				continue
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				fmt.Println("Enter <card id> use|discard, or cancel")
				continue
			}
			return enc.Encode(ClientMessage{Type: "resolve_choice", CardID: id, Discard: fields[1] == "discard"})
		default: // discard pick, deck pick
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				fmt.Println("Enter a card id, or cancel")
				continue
			}
			return enc.Encode(ClientMessage{Type: "resolve_choice", CardID: id})
		}
	}
}
