// Command demo-client drives a complete match against a running server:
// it registers two players, attaches both to the same match and keeps
// submitting affordable cards until one of them wins.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

var (
	addr    = flag.String("addr", "localhost:8080", "server address")
	matchID = flag.String("match", "demo-match", "match id both players join")
)

type roundStart struct {
	Type  string `json:"type"`
	Round int    `json:"round"`
	Hand  []struct {
		ID   string `json:"id"`
		Cost int    `json:"cost"`
	} `json:"hand"`
	Mana      int  `json:"mana"`
	GoesFirst bool `json:"goes_first"`
}

type event struct {
	Type    string         `json:"type"`
	Tick    string         `json:"tick"`
	Winner  string         `json:"winner"`
	Message string         `json:"message"`
	Health  map[string]int `json:"health"`
}

func main() {
	flag.Parse()

	var wg sync.WaitGroup
	for _, name := range []string{"demo-alice", "demo-bob"} {
		wg.Add(1)
		go func(player string) {
			defer wg.Done()
			if err := runPlayer(player); err != nil {
				log.Printf("[%s] %v", player, err)
			}
		}(name)
	}
	wg.Wait()
}

func runPlayer(player string) error {
	token, err := login(player)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	u := url.URL{
		Scheme:   "ws",
		Host:     *addr,
		Path:     "/ws",
		RawQuery: url.Values{"token": {token}, "match": {*matchID}}.Encode(),
	}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()
	log.Printf("[%s] connected to match %s", player, *matchID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// The server tears the connection down after game over.
			return nil
		}

		var ev event
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}
		switch ev.Type {
		case "ROUND_START":
			var rs roundStart
			if err := json.Unmarshal(data, &rs); err != nil {
				continue
			}
			cards := pickCards(rs)
			log.Printf("[%s] round %d, submitting %v", player, rs.Round, cards)
			submit := map[string]any{"type": "submit", "cards": cards}
			if err := conn.WriteJSON(submit); err != nil {
				return fmt.Errorf("submit: %w", err)
			}
		case "GAME_OVER":
			log.Printf("[%s] game over, winner: %s", player, ev.Winner)
		case "ERROR":
			log.Printf("[%s] server error: %s", player, ev.Message)
		case "CAST", "TRIGGERED":
			log.Printf("[%s] %s by %s, health %v", player, ev.Type, ev.Tick, ev.Health)
		}
	}
}

// pickCards submits every card the round's mana can pay for, greedily from
// the left of the hand.
func pickCards(rs roundStart) []string {
	budget := rs.Mana
	cards := make([]string, 0, len(rs.Hand))
	for _, c := range rs.Hand {
		if c.Cost > budget {
			continue
		}
		budget -= c.Cost
		cards = append(cards, c.ID)
	}
	return cards
}

func login(player string) (string, error) {
	creds, _ := json.Marshal(map[string]string{
		"user_id":  player,
		"password": "demo-password",
	})

	// Registration may already have happened on a previous run.
	resp, err := http.Post("http://"+*addr+"/register", "application/json", bytes.NewReader(creds))
	if err != nil {
		return "", err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		return "", fmt.Errorf("register: status %d", resp.StatusCode)
	}

	resp, err = http.Post("http://"+*addr+"/login", "application/json", bytes.NewReader(creds))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login: status %d", resp.StatusCode)
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	return payload.Token, nil
}
