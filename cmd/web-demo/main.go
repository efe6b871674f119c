// Command web-demo runs scripted bot players against a running server. It
// opens one WebSocket connection per seat, creates a game, and answers every
// decision at random until the game ends. Useful as a smoke test and as a
// reference client for the wire protocol.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	addr    = flag.String("addr", "localhost:8080", "server address")
	players = flag.Int("players", 2, "number of bot seats")
	seed    = flag.Int64("seed", 0, "game seed (0 for random)")
	verbose = flag.Bool("v", false, "log every decision")
)

type wsMessage struct {
	Type     string          `json:"type"`
	GameID   string          `json:"game_id,omitempty"`
	PlayerID string          `json:"player_id,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

type pendingView struct {
	ID       string   `json:"id"`
	PlayerID string   `json:"player_id"`
	Kind     string   `json:"kind"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	Min      int      `json:"min"`
	Max      int      `json:"max"`
}

type gameView struct {
	GameID  string       `json:"game_id"`
	Turn    int          `json:"turn"`
	Pending *pendingView `json:"pending"`
}

type gameOver struct {
	Scores  map[string]int `json:"scores"`
	Winners []string       `json:"winners"`
	Turns   int            `json:"turns"`
}

type bot struct {
	id   string
	conn *websocket.Conn
	rng  *rand.Rand
}

func main() {
	flag.Parse()
	if *players < 2 || *players > 4 {
		log.Fatal("players must be between 2 and 4")
	}

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	names := make([]string, *players)
	for i := range names {
		names[i] = fmt.Sprintf("bot-%d", i+1)
	}

	// The first bot creates the game; the rest join once the ID is known.
	first, err := newBot(names[0], u.String(), 1)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	gameID, err := first.createGame(names, *seed)
	if err != nil {
		log.Fatalf("create game: %v", err)
	}
	log.Printf("created game %s with %d seats", gameID, *players)

	bots := []*bot{first}
	for i, name := range names[1:] {
		b, err := newBot(name, u.String(), int64(i+2))
		if err != nil {
			log.Fatalf("connect %s: %v", name, err)
		}
		if err := b.join(gameID); err != nil {
			log.Fatalf("join %s: %v", name, err)
		}
		bots = append(bots, b)
	}

	var wg sync.WaitGroup
	results := make(chan gameOver, len(bots))
	for _, b := range bots {
		wg.Add(1)
		go func(b *bot) {
			defer wg.Done()
			b.play(results)
		}(b)
	}
	wg.Wait()

	over := <-results
	fmt.Printf("game over after %d turns\n", over.Turns)
	for id, score := range over.Scores {
		fmt.Printf("  %s: %d points\n", id, score)
	}
	fmt.Printf("winners: %v\n", over.Winners)
	os.Exit(0)
}

func newBot(id, wsURL string, seed int64) (*bot, error) {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, err
	}
	return &bot{
		id:   id,
		conn: conn,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

func (b *bot) createGame(names []string, seed int64) (string, error) {
	data, _ := json.Marshal(map[string]interface{}{"players": names, "seed": seed})
	if err := b.conn.WriteJSON(wsMessage{Type: "create_game", PlayerID: b.id, Data: data}); err != nil {
		return "", err
	}
	msg, err := b.read()
	if err != nil {
		return "", err
	}
	if msg.Type == "error" {
		return "", fmt.Errorf("server: %s", string(msg.Data))
	}
	return msg.GameID, nil
}

func (b *bot) join(gameID string) error {
	if err := b.conn.WriteJSON(wsMessage{Type: "join_game", GameID: gameID, PlayerID: b.id}); err != nil {
		return err
	}
	msg, err := b.read()
	if err != nil {
		return err
	}
	if msg.Type == "error" {
		return fmt.Errorf("server: %s", string(msg.Data))
	}
	return nil
}

// play answers decisions addressed to this bot until the game ends.
func (b *bot) play(results chan<- gameOver) {
	defer b.conn.Close()
	for {
		msg, err := b.read()
		if err != nil {
			log.Printf("%s: read: %v", b.id, err)
			return
		}
		switch msg.Type {
		case "game_state":
			var view gameView
			if err := json.Unmarshal(msg.Data, &view); err != nil {
				log.Printf("%s: bad view: %v", b.id, err)
				continue
			}
			if view.Pending == nil || view.Pending.PlayerID != b.id {
				continue
			}
			chosen := b.choose(view.Pending)
			if *verbose {
				log.Printf("%s: turn %d %s -> %v", b.id, view.Turn, view.Pending.Kind, chosen)
			}
			data, _ := json.Marshal(map[string][]string{"chosen": chosen})
			if err := b.conn.WriteJSON(wsMessage{Type: "decision", Data: data}); err != nil {
				log.Printf("%s: send: %v", b.id, err)
				return
			}

		case "game_over":
			var over gameOver
			if err := json.Unmarshal(msg.Data, &over); err == nil {
				results <- over
			}
			return

		case "error":
			log.Printf("%s: server error: %s", b.id, string(msg.Data))
		}
	}
}

// choose picks a uniformly random legal answer.
func (b *bot) choose(p *pendingView) []string {
	maxTake := p.Max
	if maxTake > len(p.Options) {
		maxTake = len(p.Options)
	}
	minTake := p.Min
	if minTake > maxTake {
		minTake = maxTake
	}
	take := minTake
	if maxTake > minTake {
		take = minTake + b.rng.Intn(maxTake-minTake+1)
	}
	options := append([]string(nil), p.Options...)
	b.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options[:take]
}

func (b *bot) read() (wsMessage, error) {
	var msg wsMessage
	b.conn.SetReadDeadline(time.Now().Add(2 * time.Minute))
	err := b.conn.ReadJSON(&msg)
	return msg, err
}
