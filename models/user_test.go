package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUser_PasswordHashing(t *testing.T) {
	req := require.New(t)

	var u User
	req.NoError(u.SetPassword("hunter22"))
	req.NotEqual("hunter22", u.PasswordHash)

	req.True(u.CheckPassword("hunter22"))
	req.False(u.CheckPassword("wrong"))
	req.False(u.CheckPassword(""))
}

func TestItem_EnumValidation(t *testing.T) {
	req := require.New(t)

	req.True(ValidCategory("weapon"))
	req.True(ValidCategory("other"))
	req.False(ValidCategory("spaceship"))

	req.True(ValidRarity("legendary"))
	req.False(ValidRarity("ultra"))
}
