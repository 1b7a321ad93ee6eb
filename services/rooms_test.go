package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRooms_JoinLeave(t *testing.T) {
	req := require.New(t)
	r := NewRooms()
	conn1 := uuid.NewString()
	conn2 := uuid.NewString()

	r.Join(conn1, "1-2")
	r.Join(conn2, "1-2")
	req.ElementsMatch([]string{conn1, conn2}, r.Members("1-2"))

	r.Leave(conn1, "1-2")
	req.Equal([]string{conn2}, r.Members("1-2"))

	// Leaving a room you are not in is a no-op
	r.Leave(conn1, "1-2")
	req.Equal([]string{conn2}, r.Members("1-2"))
}

func TestRooms_EmptyRoomPruned(t *testing.T) {
	req := require.New(t)
	r := NewRooms()
	connID := uuid.NewString()

	r.Join(connID, "1-2")
	r.Leave(connID, "1-2")

	req.Empty(r.Members("1-2"))
	req.Empty(r.rooms)
}

func TestRooms_LeaveAll(t *testing.T) {
	req := require.New(t)
	r := NewRooms()
	conn1 := uuid.NewString()
	conn2 := uuid.NewString()

	r.Join(conn1, "1-2")
	r.Join(conn1, "1-3")
	r.Join(conn2, "1-2")

	left := r.LeaveAll(conn1)
	req.ElementsMatch([]string{"1-2", "1-3"}, left)

	req.Equal([]string{conn2}, r.Members("1-2"))
	req.Empty(r.Members("1-3"))
}

func TestRooms_MembersOfUnknownRoom(t *testing.T) {
	require.Empty(t, NewRooms().Members("nope"))
}

func TestRoomKey_OrderIndependent(t *testing.T) {
	req := require.New(t)

	// Both participants must compute the same key on their own
	req.Equal("1-2", RoomKey(1, 2))
	req.Equal("1-2", RoomKey(2, 1))
	req.Equal(RoomKey(42, 7), RoomKey(7, 42))

	req.Equal("1-2-item-5", RoomKeyForItem(2, 1, 5))
	req.NotEqual(RoomKey(1, 2), RoomKeyForItem(1, 2, 5))
}
