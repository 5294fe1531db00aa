package game

// EventType indicates the category of an emitted match event.
type EventType string

const (
	EventRoundStart EventType = "ROUND_START"
	EventTick       EventType = "TICK"
	EventCast       EventType = "CAST"
	EventTriggered  EventType = "TRIGGERED"
	EventGameOver   EventType = "GAME_OVER"
	EventError      EventType = "ERROR"
)

// CardView is the client-facing snapshot of a card instance.
type CardView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Text  string `json:"text"`
	Cost  int    `json:"cost"`
	Timer int    `json:"timer"`
}

// Delta is one incremental state update emitted during round resolution.
// Maps are keyed by player id; absent keys mean no change for that player.
// Key is unique per emission so clients can deduplicate on replay.
type Delta struct {
	Key       string                `json:"key"`
	Type      EventType             `json:"type"`
	Tick      string                `json:"tick"`
	DropZones map[string][]CardView `json:"dropzones,omitempty"`
	Health    map[string]int        `json:"health,omitempty"`
	Mana      map[string]int        `json:"mana,omitempty"`
}

// RoundStart is the per-player payload sent when both submissions are in and
// resolution is about to begin.
type RoundStart struct {
	Type           EventType  `json:"type"`
	Round          int        `json:"round"`
	Hand           []CardView `json:"hand"`
	DropZone       []CardView `json:"dropzone"`
	Health         int        `json:"health"`
	Mana           int        `json:"mana"`
	Drawn          int        `json:"drawn"`
	OpponentHealth int        `json:"opponent_health"`
	OpponentMana   int        `json:"opponent_mana"`
	GoesFirst      bool       `json:"goes_first"`
}

// GameOver names the surviving player. Terminal for the match.
type GameOver struct {
	Type   EventType `json:"type"`
	Winner string    `json:"winner"`
}

// ErrorEvent is the generic failure signal clients fall back to when a round
// aborts. Deliberately unstructured; it is not a game-over.
type ErrorEvent struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
}

// Emitter is the transport boundary the resolver needs: addressed sends,
// match broadcast and forced teardown. Wire encoding, retries and
// reconnection are the transport's concern.
type Emitter interface {
	SendTo(playerID string, payload any)
	Broadcast(payload any)
	Shutdown()
}

// NopEmitter discards everything. Used by tests that only care about state.
type NopEmitter struct{}

func (NopEmitter) SendTo(string, any) {}
func (NopEmitter) Broadcast(any)      {}
func (NopEmitter) Shutdown()          {}

// CardViews converts card instances to their client snapshots.
func CardViews(cards []*Card) []CardView {
	views := make([]CardView, len(cards))
	for i, c := range cards {
		views[i] = CardView{
			ID:    c.ID,
			Name:  c.Name,
			Text:  c.Text,
			Cost:  c.Cost,
			Timer: c.Timer,
		}
	}
	return views
}
