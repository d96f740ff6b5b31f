package main

import (
	"math/rand"
	"slices"
	"strings"
	"time"
)

const (
	roundsPerGame = 5
	decoyCount    = 3

	// Limits shown to clients, in seconds. The server-side deadlines
	// below run two seconds longer so the server only force-fills
	// after every honest client has already given up.
	answerTimeLimit = 30
	guessTimeLimit  = 20

	startDelay     = 1500 * time.Millisecond
	answerDeadline = 32 * time.Second
	guessDeadline  = 22 * time.Second
	resultDelay    = 4 * time.Second

	noAnswerSentinel = "(No answer)"
	noGuessSentinel  = "(No guess)"
)

// sender is the delivery side of the transport. toRoom fans a message
// out to every player in the room; toPlayer targets one connection.
type sender interface {
	toRoom(room *Room, msg any)
	toPlayer(playerID string, msg any)
}

// engine is the per-room state machine. Every method runs on the hub
// goroutine, as do all armed timer callbacks, so reactions never
// interleave and nothing here needs a lock.
type engine struct {
	cfg   *Config
	rooms *roomRegistry
	out   sender
	rng   *rand.Rand
}

func newEngine(cfg *Config, out sender, run taskRunner, rng *rand.Rand) *engine {
	return &engine{
		cfg:   cfg,
		rooms: newRoomRegistry(rng, run),
		out:   out,
		rng:   rng,
	}
}

func (e *engine) createRoom(playerID, playerName string) {
	host := &Player{ID: playerID, Name: playerName}
	room := e.rooms.create(host)

	logf(e.cfg, "GAMES: %q created room %s", playerName, room.Code)

	e.out.toPlayer(playerID, roomCreatedMessage{
		Type:     "room_created",
		RoomCode: room.Code,
		PlayerID: playerID,
		Players:  playerInfos(room),
	})
}

func (e *engine) joinRoom(playerID, playerName, code string) {
	code = strings.ToUpper(strings.TrimSpace(code))

	joiner := &Player{ID: playerID, Name: playerName}
	room, err := e.rooms.join(code, joiner)
	if err != nil {
		e.out.toPlayer(playerID, errorMessage{Type: "error", Message: err.Error()})
		return
	}

	logf(e.cfg, "GAMES: %q joined room %s", playerName, room.Code)

	e.out.toPlayer(playerID, roomJoinedMessage{
		Type:     "room_joined",
		RoomCode: room.Code,
		PlayerID: playerID,
		Players:  playerInfos(room),
	})
	for _, p := range room.Players {
		if p.ID != playerID {
			e.out.toPlayer(p.ID, playerJoinedMessage{Type: "player_joined", Players: playerInfos(room)})
		}
	}
}

// setReady flips a player's readiness and starts the game once the
// room holds two ready players. Lookups against a vanished room are
// treated as stale and dropped.
func (e *engine) setReady(playerID, code string, ready bool) {
	room, err := e.rooms.find(code)
	if err != nil {
		return
	}
	p := room.player(playerID)
	if p == nil {
		return
	}

	p.Ready = ready
	e.out.toRoom(room, playerReadyMessage{Type: "player_ready_update", Players: playerInfos(room)})

	if room.State == stateWaiting && len(room.Players) == maxPlayersPerRoom && room.allReady() {
		e.startGame(room)
	}
}

func (e *engine) startGame(room *Room) {
	room.State = statePlaying
	room.Round = 0
	for _, p := range room.Players {
		p.Score = 0
	}

	// rand.Shuffle is a Fisher-Yates shuffle, so every 5-question
	// sample of the pool is equally likely.
	pool := slices.Clone(questionPool)
	e.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	room.Questions = pool[:roundsPerGame]

	logf(e.cfg, "GAMES: Room %s starting with %d rounds", room.Code, len(room.Questions))

	e.out.toRoom(room, gameStartingMessage{Type: "game_starting", TotalRounds: len(room.Questions)})

	if err := room.advanceTimer.arm(startDelay, func() { e.startRound(room) }); err != nil {
		logf(e.cfg, "GAMES: Room %s: %v", room.Code, err)
	}
}

func (e *engine) startRound(room *Room) {
	room.Round++
	room.Answers = make(map[string]string, len(room.Players))
	room.Guesses = make(map[string]string, len(room.Players))

	question := room.Questions[room.Round-1]

	e.out.toRoom(room, questionPhaseMessage{
		Type:      "question_phase",
		Round:     room.Round,
		Question:  question.ForPlayer,
		TimeLimit: answerTimeLimit,
	})

	if err := room.answerTimer.arm(answerDeadline, func() { e.finishAnswerPhase(room) }); err != nil {
		logf(e.cfg, "GAMES: Room %s: %v", room.Code, err)
	}
}

func (e *engine) submitAnswer(playerID, code, answer string) {
	room, err := e.rooms.find(code)
	if err != nil {
		return
	}
	if room.State != statePlaying || room.Answers == nil || room.player(playerID) == nil {
		return
	}
	// First submission wins; a duplicate or post-deadline answer must
	// not alter state or re-trigger the phase advance.
	if _, recorded := room.Answers[playerID]; recorded {
		return
	}

	room.Answers[playerID] = answer

	if len(room.Answers) == len(room.Players) {
		room.answerTimer.cancel()
		e.startGuessPhase(room)
	}
}

// finishAnswerPhase runs at the answer deadline and fills in the
// sentinel for anyone who never responded.
func (e *engine) finishAnswerPhase(room *Room) {
	for _, p := range room.Players {
		if _, ok := room.Answers[p.ID]; !ok {
			room.Answers[p.ID] = noAnswerSentinel
		}
	}
	e.startGuessPhase(room)
}

func (e *engine) startGuessPhase(room *Room) {
	question := room.Questions[room.Round-1]

	for _, p := range room.Players {
		partner := room.partnerOf(p.ID)
		correct := room.Answers[partner.ID]

		choices := append([]string{correct}, decoyAnswers(question.Category, correct, decoyCount, e.rng)...)
		e.rng.Shuffle(len(choices), func(i, j int) {
			choices[i], choices[j] = choices[j], choices[i]
		})

		e.out.toPlayer(p.ID, guessPhaseMessage{
			Type:      "guess_phase",
			Question:  question.ForGuesser,
			Answers:   choices,
			TimeLimit: guessTimeLimit,
		})
	}

	if err := room.guessTimer.arm(guessDeadline, func() { e.finishGuessPhase(room) }); err != nil {
		logf(e.cfg, "GAMES: Room %s: %v", room.Code, err)
	}
}

func (e *engine) submitGuess(playerID, code, guess string) {
	room, err := e.rooms.find(code)
	if err != nil {
		return
	}
	if room.State != statePlaying || room.Guesses == nil || room.player(playerID) == nil {
		return
	}
	// The guess phase begins only once every answer is in; a guess
	// sent during the answer phase is premature and dropped.
	if len(room.Answers) < len(room.Players) {
		return
	}
	if _, recorded := room.Guesses[playerID]; recorded {
		return
	}

	room.Guesses[playerID] = guess

	if len(room.Guesses) == len(room.Players) {
		room.guessTimer.cancel()
		e.endRound(room)
	}
}

func (e *engine) finishGuessPhase(room *Room) {
	for _, p := range room.Players {
		if _, ok := room.Guesses[p.ID]; !ok {
			room.Guesses[p.ID] = noGuessSentinel
		}
	}
	e.endRound(room)
}

// endRound scores both players and delivers each a private result.
// A player's correctness depends only on their own guess against the
// partner's answer.
func (e *engine) endRound(room *Room) {
	isLastRound := room.Round >= len(room.Questions)

	for _, p := range room.Players {
		partner := room.partnerOf(p.ID)
		if isCorrectGuess(room.Guesses[p.ID], room.Answers[partner.ID]) {
			p.Score++
		}
	}

	for _, p := range room.Players {
		partner := room.partnerOf(p.ID)

		e.out.toPlayer(p.ID, roundResultMessage{
			Type: "round_result",
			YourResult: guessOutcome{
				Correct: isCorrectGuess(room.Guesses[p.ID], room.Answers[partner.ID]),
				Guess:   room.Guesses[p.ID],
			},
			PartnerResult: guessOutcome{
				Correct: isCorrectGuess(room.Guesses[partner.ID], room.Answers[p.ID]),
				Guess:   room.Guesses[partner.ID],
			},
			YourAnswer:    room.Answers[p.ID],
			PartnerAnswer: room.Answers[partner.ID],
			IsLastRound:   isLastRound,
		})
	}

	err := room.advanceTimer.arm(resultDelay, func() {
		if isLastRound {
			e.endGame(room)
		} else {
			e.startRound(room)
		}
	})
	if err != nil {
		logf(e.cfg, "GAMES: Room %s: %v", room.Code, err)
	}
}

func (e *engine) endGame(room *Room) {
	room.State = stateFinished

	results := make([]playerScore, 0, len(room.Players))
	for _, p := range room.Players {
		results = append(results, playerScore{ID: p.ID, Name: p.Name, Score: p.Score})
	}

	logf(e.cfg, "GAMES: Room %s finished", room.Code)

	e.out.toRoom(room, gameOverMessage{Type: "game_over", Results: results})
}

// playAgain returns a finished room to the lobby with the same
// players, cleared scores and readiness.
func (e *engine) playAgain(playerID, code string) {
	room, err := e.rooms.find(code)
	if err != nil {
		return
	}
	if room.State != stateFinished || room.player(playerID) == nil {
		return
	}

	room.State = stateWaiting
	room.Round = 0
	room.Questions = nil
	room.Answers = nil
	room.Guesses = nil
	for _, p := range room.Players {
		p.Ready = false
		p.Score = 0
	}

	e.out.toRoom(room, playerReadyMessage{Type: "player_ready_update", Players: playerInfos(room)})
}

// dropPlayer removes a disconnected player from whichever room they
// occupy. The last player leaving destroys the room; otherwise any
// in-flight round is abandoned and the room returns to the lobby.
func (e *engine) dropPlayer(playerID string) {
	room := e.rooms.roomOf(playerID)
	if room == nil {
		return
	}

	room.Players = slices.DeleteFunc(room.Players, func(p *Player) bool {
		return p.ID == playerID
	})

	room.cancelTimers()

	if len(room.Players) == 0 {
		e.rooms.remove(room.Code)
		logf(e.cfg, "GAMES: Room %s destroyed", room.Code)
		return
	}

	room.State = stateWaiting
	room.Round = 0
	room.Questions = nil
	room.Answers = nil
	room.Guesses = nil
	for _, p := range room.Players {
		p.Ready = false
	}

	e.out.toRoom(room, playerLeftMessage{Type: "player_left", Players: playerInfos(room)})
}
