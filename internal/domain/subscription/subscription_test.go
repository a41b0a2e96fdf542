package subscription_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainsub "nodal/internal/domain/subscription"
)

func TestNewSubscription_RequiresUserID(t *testing.T) {
	_, err := domainsub.NewSubscription(0, "token")
	assert.ErrorContains(t, err, "user ID is required")
}

func TestNewSubscription_RequiresToken(t *testing.T) {
	_, err := domainsub.NewSubscription(1, "")
	assert.ErrorContains(t, err, "token is required")
}

func TestNewSubscription_Success(t *testing.T) {
	s, err := domainsub.NewSubscription(1, "tok123")
	require.NoError(t, err)

	assert.Equal(t, uint(1), s.UserID())
	assert.Equal(t, "tok123", s.Token())
	assert.Nil(t, s.LastAccessed())
}

func TestReconstructSubscription_RequiresID(t *testing.T) {
	_, err := domainsub.ReconstructSubscription(0, 1, "tok", nil, time.Now(), time.Now())
	assert.ErrorContains(t, err, "subscription ID cannot be zero")
}

func TestSubscription_Touch(t *testing.T) {
	s, err := domainsub.NewSubscription(1, "tok123")
	require.NoError(t, err)

	s.Touch()

	require.NotNil(t, s.LastAccessed())
	assert.WithinDuration(t, time.Now(), *s.LastAccessed(), time.Second)
}

func TestSubscription_Matches(t *testing.T) {
	s, err := domainsub.NewSubscription(1, "correct-token")
	require.NoError(t, err)

	assert.True(t, s.Matches("correct-token"))
	assert.False(t, s.Matches("wrong-token"))
}

func TestSubscription_Reset(t *testing.T) {
	s, err := domainsub.NewSubscription(1, "old-token")
	require.NoError(t, err)

	err = s.Reset("")
	assert.ErrorContains(t, err, "token is required")
	assert.Equal(t, "old-token", s.Token())

	err = s.Reset("new-token")
	assert.NoError(t, err)
	assert.Equal(t, "new-token", s.Token())
	assert.False(t, s.Matches("old-token"))
}
