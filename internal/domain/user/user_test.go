package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainuser "nodal/internal/domain/user"
)

func TestNewEmail_NormalizesCase(t *testing.T) {
	email, err := domainuser.NewEmail("User@Example.COM")
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestNewEmail_RejectsMalformed(t *testing.T) {
	_, err := domainuser.NewEmail("not-an-email")
	assert.ErrorContains(t, err, "invalid email address")
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name    string
		pass    string
		wantErr string
	}{
		{"too short", "ab1", "at least 8 characters"},
		{"no digit", "abcdefgh", "letters and digits"},
		{"no letter", "12345678", "letters and digits"},
		{"valid", "abcdefg1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := domainuser.ValidatePassword(tc.pass)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestUser_Debit(t *testing.T) {
	u := &domainuser.User{CoinBalance: 100}

	err := u.Debit(150)
	assert.ErrorContains(t, err, "insufficient balance")
	assert.Equal(t, int64(100), u.CoinBalance)

	err = u.Debit(40)
	assert.NoError(t, err)
	assert.Equal(t, int64(60), u.CoinBalance)
}

func TestUser_Credit(t *testing.T) {
	u := &domainuser.User{CoinBalance: 10}
	u.Credit(25)
	assert.Equal(t, int64(35), u.CoinBalance)
}

func TestUser_HasTraffic(t *testing.T) {
	u := &domainuser.User{TrafficQuota: 100, TrafficUsed: 100}
	assert.False(t, u.HasTraffic())

	u.TrafficQuota = 101
	assert.True(t, u.HasTraffic())
}

func TestUser_GrantAndAddTraffic(t *testing.T) {
	u := &domainuser.User{TrafficQuota: 10, TrafficUsed: 5}
	u.GrantTraffic(20)
	u.AddTrafficUsed(3)
	assert.Equal(t, uint64(30), u.TrafficQuota)
	assert.Equal(t, uint64(8), u.TrafficUsed)
}

func TestUser_IsActive(t *testing.T) {
	u := &domainuser.User{Status: domainuser.StatusActive}
	assert.True(t, u.IsActive())
	u.Status = domainuser.StatusDisabled
	assert.False(t, u.IsActive())
}
