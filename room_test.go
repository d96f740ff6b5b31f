package main

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *roomRegistry {
	runner := &fakeRunner{}
	return newRoomRegistry(rand.New(rand.NewSource(11)), runner.runAfter)
}

func TestCreateRoom(t *testing.T) {
	reg := newTestRegistry()

	room := reg.create(&Player{ID: "alice", Name: "Alice"})

	assert.Len(t, room.Code, roomCodeLength)
	for _, c := range room.Code {
		assert.True(t, strings.ContainsRune(roomCodeAlphabet, c), "code %q uses %q outside the alphabet", room.Code, c)
	}

	assert.Equal(t, stateWaiting, room.State)
	require.Len(t, room.Players, 1)
	assert.Equal(t, "Alice", room.Players[0].Name)

	found, err := reg.find(room.Code)
	require.NoError(t, err)
	assert.Same(t, room, found)
}

func TestRoomCodesAreUnique(t *testing.T) {
	reg := newTestRegistry()

	codes := map[string]bool{}
	for i := 0; i < 500; i++ {
		room := reg.create(&Player{ID: "p"})
		assert.False(t, codes[room.Code])
		codes[room.Code] = true
	}
}

func TestFindMissingRoom(t *testing.T) {
	reg := newTestRegistry()

	_, err := reg.find("ABC234")
	assert.ErrorIs(t, err, errRoomNotFound)
}

func TestJoinRefusals(t *testing.T) {
	reg := newTestRegistry()
	room := reg.create(&Player{ID: "alice"})

	_, err := reg.join("ABC234", &Player{ID: "bob"})
	assert.ErrorIs(t, err, errRoomNotFound)

	_, err = reg.join(room.Code, &Player{ID: "bob"})
	require.NoError(t, err)

	_, err = reg.join(room.Code, &Player{ID: "carol"})
	assert.ErrorIs(t, err, errRoomFull)
	assert.Len(t, room.Players, maxPlayersPerRoom)

	room.Players = room.Players[:1]
	room.State = statePlaying
	_, err = reg.join(room.Code, &Player{ID: "carol"})
	assert.ErrorIs(t, err, errGameInProgress)
}

func TestRemoveRoom(t *testing.T) {
	reg := newTestRegistry()
	room := reg.create(&Player{ID: "alice"})

	reg.remove(room.Code)

	_, err := reg.find(room.Code)
	assert.ErrorIs(t, err, errRoomNotFound)
}

func TestRoomOf(t *testing.T) {
	reg := newTestRegistry()
	room := reg.create(&Player{ID: "alice"})

	assert.Same(t, room, reg.roomOf("alice"))
	assert.Nil(t, reg.roomOf("bob"))
}

func TestPartnerOf(t *testing.T) {
	room := &Room{Players: []*Player{{ID: "alice"}, {ID: "bob"}}}

	assert.Equal(t, "bob", room.partnerOf("alice").ID)
	assert.Equal(t, "alice", room.partnerOf("bob").ID)

	solo := &Room{Players: []*Player{{ID: "alice"}}}
	assert.Nil(t, solo.partnerOf("alice"))
}
