package impl

import (
	"context"
	"strings"
	"testing"

	"stayhub/internal/domain/entity"
	"stayhub/internal/domain/repository"
	mockRepo "stayhub/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUsernameFromEmail(t *testing.T) {
	cases := []struct {
		email string
		want  string
	}{
		{"bob@example.com", "bob"},
		{"Bob.Smith@example.com", "bobsmith"},
		{"a@x.com", "usera"},
		{"+-@x.com", "user"},
		{"ab12@x.com", "ab12"},
		{"no-at-sign", "noatsign"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, usernameFromEmail(tc.email), "email %q", tc.email)
	}
}

func TestResolveAvailableUsername_NoCollision(t *testing.T) {
	identities := new(mockRepo.MockIdentityRepository)
	identities.On("FindByUsername", mock.Anything, "bob").
		Return(nil, repository.ErrIdentityNotFound).Once()

	username, err := resolveAvailableUsername(context.Background(), identities, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", username)
	identities.AssertExpectations(t)
}

func TestResolveAvailableUsername_NumericSuffixOnCollision(t *testing.T) {
	identities := new(mockRepo.MockIdentityRepository)
	identities.On("FindByUsername", mock.Anything, "bob").
		Return(&entity.Identity{Username: "bob"}, nil).Once()
	identities.On("FindByUsername", mock.Anything, "bob1").
		Return(nil, repository.ErrIdentityNotFound).Once()

	username, err := resolveAvailableUsername(context.Background(), identities, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob1", username)
	identities.AssertExpectations(t)
}

func TestResolveAvailableUsername_RandomSuffixWhenExhausted(t *testing.T) {
	identities := new(mockRepo.MockIdentityRepository)
	identities.On("FindByUsername", mock.Anything, mock.Anything).
		Return(&entity.Identity{}, nil)

	username, err := resolveAvailableUsername(context.Background(), identities, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(username, "bob"))
	assert.Len(t, username, len("bob")+randomSuffixLength)
}

func TestResolveAvailableUsername_StoreErrorPropagates(t *testing.T) {
	identities := new(mockRepo.MockIdentityRepository)
	identities.On("FindByUsername", mock.Anything, "bob").
		Return(nil, assert.AnError).Once()

	_, err := resolveAvailableUsername(context.Background(), identities, "bob@example.com")
	assert.Error(t, err)
}
