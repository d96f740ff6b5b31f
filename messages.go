package main

// Messages coming from clients
type clientMessage struct {
	Type       string `json:"type"`                 // "create_room", "join_room", "player_ready", "submit_answer", "submit_guess", "play_again"
	PlayerName string `json:"playerName,omitempty"` // create_room / join_room
	RoomCode   string `json:"roomCode,omitempty"`   // everything except create_room
	Ready      *bool  `json:"ready,omitempty"`      // player_ready
	Answer     string `json:"answer,omitempty"`     // submit_answer
	Guess      string `json:"guess,omitempty"`      // submit_guess
}

// playerInfo is the public view of a player carried by lobby updates.
type playerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	Score int    `json:"score"`
}

func playerInfos(room *Room) []playerInfo {
	players := make([]playerInfo, 0, len(room.Players))
	for _, p := range room.Players {
		players = append(players, playerInfo{
			ID:    p.ID,
			Name:  p.Name,
			Ready: p.Ready,
			Score: p.Score,
		})
	}
	return players
}

type roomCreatedMessage struct {
	Type     string       `json:"type"` // "room_created"
	RoomCode string       `json:"roomCode"`
	PlayerID string       `json:"playerId"`
	Players  []playerInfo `json:"players"`
}

type roomJoinedMessage struct {
	Type     string       `json:"type"` // "room_joined"
	RoomCode string       `json:"roomCode"`
	PlayerID string       `json:"playerId"`
	Players  []playerInfo `json:"players"`
}

type playerJoinedMessage struct {
	Type    string       `json:"type"` // "player_joined"
	Players []playerInfo `json:"players"`
}

type playerReadyMessage struct {
	Type    string       `json:"type"` // "player_ready_update"
	Players []playerInfo `json:"players"`
}

type playerLeftMessage struct {
	Type    string       `json:"type"` // "player_left"
	Players []playerInfo `json:"players"`
}

// Sent to a single client when a create/join request fails.
type errorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

type gameStartingMessage struct {
	Type        string `json:"type"` // "game_starting"
	TotalRounds int    `json:"totalRounds"`
}

type questionPhaseMessage struct {
	Type      string `json:"type"` // "question_phase"
	Round     int    `json:"round"`
	Question  string `json:"question"`
	TimeLimit int    `json:"timeLimit"` // seconds
}

// guessPhaseMessage is unicast: each player sees their partner's
// answer hidden among a different set of decoys.
type guessPhaseMessage struct {
	Type      string   `json:"type"` // "guess_phase"
	Question  string   `json:"question"`
	Answers   []string `json:"answers"`
	TimeLimit int      `json:"timeLimit"` // seconds
}

type guessOutcome struct {
	Correct bool   `json:"correct"`
	Guess   string `json:"guess"`
}

type roundResultMessage struct {
	Type          string       `json:"type"` // "round_result"
	YourResult    guessOutcome `json:"yourResult"`
	PartnerResult guessOutcome `json:"partnerResult"`
	YourAnswer    string       `json:"yourAnswer"`
	PartnerAnswer string       `json:"partnerAnswer"`
	IsLastRound   bool         `json:"isLastRound"`
}

type playerScore struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type gameOverMessage struct {
	Type    string        `json:"type"` // "game_over"
	Results []playerScore `json:"results"`
}
