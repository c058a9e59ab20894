package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeCreateRoom   = 103
	MsgTypePlayerAction = 202
)

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, data []byte) error {
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

// parseCommand maps a console line onto a game event. Commands that
// carry a number ("bid 120", "goto 5") put it in the matching field.
func parseCommand(line string) (map[string]interface{}, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false
	}

	num := 0
	if len(fields) > 1 {
		num, _ = strconv.Atoi(fields[1])
	}

	switch fields[0] {
	case "start":
		return map[string]interface{}{"type": "start"}, true
	case "roll", "buy", "skip", "start_auction", "open_trade", "propose_trade",
		"accept_trade", "decline_trade", "cancel_trade", "declare_bankruptcy":
		return map[string]interface{}{"type": fields[0]}, true
	case "dice":
		return map[string]interface{}{"type": "change_dice"}, true
	case "bid":
		return map[string]interface{}{"type": "raise_bid", "amount": num}, true
	case "fold":
		return map[string]interface{}{"type": "leave_auction"}, true
	case "partner":
		return map[string]interface{}{"type": "select_partner", "n": num}, true
	case "offer":
		return map[string]interface{}{"type": "toggle_offer", "pos": num}, true
	case "request":
		return map[string]interface{}{"type": "toggle_request", "pos": num}, true
	case "offer_cash":
		return map[string]interface{}{"type": "set_offer_cash", "amount": num}, true
	case "request_cash":
		return map[string]interface{}{"type": "set_request_cash", "amount": num}, true
	case "house":
		return map[string]interface{}{"type": "build_house", "pos": num}, true
	case "hotel":
		return map[string]interface{}{"type": "build_hotel", "pos": num}, true
	case "demolish":
		return map[string]interface{}{"type": "sell_building", "pos": num}, true
	case "sell":
		return map[string]interface{}{"type": "sell_property", "pos": num}, true
	case "mortgage":
		return map[string]interface{}{"type": "mortgage", "pos": num}, true
	case "goto":
		return map[string]interface{}{"type": "choose_destination", "n": num}, true
	case "evaporate":
		return map[string]interface{}{"type": "evaporate", "pos": num}, true
	default:
		return nil, false
	}
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			data := message[4:]
			log.Printf("<- RECV (ID: %d): %s", msgID, string(data))
		}
	}()

	// A solo table is enough to exercise every move from the console.
	log.Println("Sending Create Room request...")
	create, _ := json.Marshal(map[string]interface{}{"name": "console", "max_players": 1})
	if err := send(c, MsgTypeCreateRoom, create); err != nil {
		log.Println("Write error:", err)
		return
	}

	log.Println("Client started. Try: start, roll, buy, skip, bid 120, fold, house 1, mortgage 3.")

	// Write loop
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		default:
			text, _ := reader.ReadString('\n')
			action, ok := parseCommand(strings.TrimSpace(text))
			if !ok {
				continue
			}
			actionData, _ := json.Marshal(action)
			if err := send(c, MsgTypePlayerAction, actionData); err != nil {
				log.Println("Write error:", err)
				return
			}
			log.Printf("-> SENT: %s", actionData)
		}
	}
}
