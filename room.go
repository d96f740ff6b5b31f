package main

import (
	"math/rand"
	"slices"
)

const (
	maxPlayersPerRoom = 2

	roomCodeLength = 6
	// Drops 0/O/1/I so codes are unambiguous when read aloud.
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

type gameState string

const (
	stateWaiting  gameState = "waiting"
	statePlaying  gameState = "playing"
	stateFinished gameState = "finished"
)

// Player is owned exclusively by its room and lives exactly as long
// as its connection.
type Player struct {
	ID    string
	Name  string
	Ready bool
	Score int
}

type Room struct {
	Code      string
	Players   []*Player // join order, at most maxPlayersPerRoom
	State     gameState
	Round     int        // 1-based while a round is active, 0 otherwise
	Questions []Question // sampled once per game start
	Answers   map[string]string
	Guesses   map[string]string

	answerTimer  *roundTimer
	guessTimer   *roundTimer
	advanceTimer *roundTimer // start-of-game and between-round delays
}

func (r *Room) player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) partnerOf(id string) *Player {
	for _, p := range r.Players {
		if p.ID != id {
			return p
		}
	}
	return nil
}

func (r *Room) allReady() bool {
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

func (r *Room) cancelTimers() {
	r.answerTimer.cancel()
	r.guessTimer.cancel()
	r.advanceTimer.cancel()
}

// roomRegistry owns the room map. It is only ever touched from the
// hub goroutine, so it carries no lock of its own.
type roomRegistry struct {
	rooms map[string]*Room
	rng   *rand.Rand
	run   taskRunner
}

func newRoomRegistry(rng *rand.Rand, run taskRunner) *roomRegistry {
	return &roomRegistry{
		rooms: make(map[string]*Room),
		rng:   rng,
		run:   run,
	}
}

// newRoomCode draws codes until one is free. Collisions are rare
// enough (32^6 codes) that the loop almost never runs twice.
func (reg *roomRegistry) newRoomCode() string {
	for {
		buf := make([]byte, roomCodeLength)
		for i := range buf {
			buf[i] = roomCodeAlphabet[reg.rng.Intn(len(roomCodeAlphabet))]
		}
		code := string(buf)

		if _, exists := reg.rooms[code]; !exists {
			return code
		}
	}
}

func (reg *roomRegistry) create(host *Player) *Room {
	room := &Room{
		Code:         reg.newRoomCode(),
		Players:      []*Player{host},
		State:        stateWaiting,
		answerTimer:  newRoundTimer(reg.run),
		guessTimer:   newRoundTimer(reg.run),
		advanceTimer: newRoundTimer(reg.run),
	}
	reg.rooms[room.Code] = room

	return room
}

func (reg *roomRegistry) find(code string) (*Room, error) {
	room, ok := reg.rooms[code]
	if !ok {
		return nil, errRoomNotFound
	}
	return room, nil
}

func (reg *roomRegistry) join(code string, p *Player) (*Room, error) {
	room, err := reg.find(code)
	if err != nil {
		return nil, err
	}
	if len(room.Players) >= maxPlayersPerRoom {
		return nil, errRoomFull
	}
	if room.State != stateWaiting {
		return nil, errGameInProgress
	}

	room.Players = append(room.Players, p)

	return room, nil
}

func (reg *roomRegistry) remove(code string) {
	delete(reg.rooms, code)
}

// roomOf finds the room a player currently occupies, for events that
// arrive without a room code (disconnects).
func (reg *roomRegistry) roomOf(playerID string) *Room {
	for _, room := range reg.rooms {
		if slices.ContainsFunc(room.Players, func(p *Player) bool { return p.ID == playerID }) {
			return room
		}
	}
	return nil
}
