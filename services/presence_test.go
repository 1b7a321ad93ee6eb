package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPresence_RegisterAndLookup(t *testing.T) {
	req := require.New(t)
	p := NewPresence()
	connID := uuid.NewString()

	_, ok := p.Lookup(connID)
	req.False(ok)

	req.True(p.Register(connID, 7))

	userID, ok := p.Lookup(connID)
	req.True(ok)
	req.Equal(uint(7), userID)
}

func TestPresence_DuplicateRegisterRejected(t *testing.T) {
	req := require.New(t)
	p := NewPresence()
	connID := uuid.NewString()

	req.True(p.Register(connID, 7))
	// A connection binds its user once, a second register must not overwrite
	req.False(p.Register(connID, 8))

	userID, _ := p.Lookup(connID)
	req.Equal(uint(7), userID)
}

func TestPresence_Unregister(t *testing.T) {
	req := require.New(t)
	p := NewPresence()
	connID := uuid.NewString()

	p.Register(connID, 7)
	userID, ok := p.Unregister(connID)
	req.True(ok)
	req.Equal(uint(7), userID)

	_, ok = p.Lookup(connID)
	req.False(ok)

	// Unregistering an absent connection is a no-op
	_, ok = p.Unregister(connID)
	req.False(ok)
}

func TestPresence_PerConnectionNotPerUser(t *testing.T) {
	req := require.New(t)
	p := NewPresence()
	conn1 := uuid.NewString()
	conn2 := uuid.NewString()

	// Same user, two connections: two independent entries
	req.True(p.Register(conn1, 7))
	req.True(p.Register(conn2, 7))

	_, ok := p.Unregister(conn1)
	req.True(ok)

	// The other connection of the same user stays registered
	userID, ok := p.Lookup(conn2)
	req.True(ok)
	req.Equal(uint(7), userID)
}
