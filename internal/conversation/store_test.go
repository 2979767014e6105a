package conversation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gateway/internal/conversation"
	"gateway/pkg/domain"
	"gateway/pkg/serrors"
	"gateway/pkg/storage"
	"gateway/pkg/storage/memory"
	mockstorage "gateway/pkg/storage/mock"
)

func expectWithTx(
	t *testing.T,
	ctrl *gomock.Controller,
	m *mockstorage.MockStorage,
	fn func(tx *mockstorage.MockAllStorage)) {
	t.Helper()

	m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cb func(storage.AllStorage) error) error {
			tx := mockstorage.NewMockAllStorage(ctrl)
			if fn != nil {
				fn(tx)
			}

			return cb(tx)
		},
	)
}

func message(chatID string) domain.ChatbotMessage {
	return domain.ChatbotMessage{
		ChatID: chatID,
		Text:   "hello",
		Context: domain.ChatContext{
			Language: "en",
			Timezone: "Europe/Kyiv",
			Slots:    map[string]any{"client_id": "42"},
		},
	}
}

func TestStore_Load_NewConversation(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	s := conversation.New(st, conversation.Options{TTL: time.Hour, MaxHistory: 20})

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().ConversationByChatID(gomock.Any(), "chat-1").Return(nil, nil)
		tx.EXPECT().UpsertConversation(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c *domain.Conversation) error {
				require.Equal(t, "chat-1", c.ChatID)
				require.Equal(t, "en", c.Language)

				return nil
			})
	})

	state, err := s.Load(context.Background(), message("chat-1"))
	require.NoError(t, err)
	require.Equal(t, "en", state.Language)
	require.Equal(t, "42", state.Slots["client_id"])
	require.Equal(t, "Europe/Kyiv", state.Metadata["timezone"])
}

func TestStore_Load_ExpiredIsReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	s := conversation.New(st, conversation.Options{TTL: time.Hour, MaxHistory: 20})

	stale := domain.NewConversation("chat-1")
	stale.Language = "uk"
	stale.AppendHistory(domain.RoleUser, "old message", 20)
	stale.LastUpdated = time.Now().Add(-2 * time.Hour)

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().ConversationByChatID(gomock.Any(), "chat-1").Return(stale, nil)
		tx.EXPECT().UpsertConversation(gomock.Any(), gomock.Any()).Return(nil)
	})

	state, err := s.Load(context.Background(), message("chat-1"))
	require.NoError(t, err)
	require.Empty(t, state.History)
	require.Equal(t, "en", state.Language)
}

func TestStore_Load_KeepsFreshState(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	s := conversation.New(st, conversation.Options{TTL: time.Hour, MaxHistory: 20})

	fresh := domain.NewConversation("chat-1")
	fresh.Language = "uk"
	fresh.AppendHistory(domain.RoleUser, "previous", 20)

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().ConversationByChatID(gomock.Any(), "chat-1").Return(fresh, nil)
		tx.EXPECT().UpsertConversation(gomock.Any(), gomock.Any()).Return(nil)
	})

	state, err := s.Load(context.Background(), message("chat-1"))
	require.NoError(t, err)
	require.Len(t, state.History, 1)
	require.Equal(t, "uk", state.Language)
}

func TestStore_Load_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	s := conversation.New(st, conversation.Options{TTL: time.Hour})

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().ConversationByChatID(gomock.Any(), "chat-1").Return(nil, errors.New("db down"))
	})

	_, err := s.Load(context.Background(), message("chat-1"))
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestStore_Persist(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	s := conversation.New(st, conversation.Options{TTL: time.Hour})

	state := domain.NewConversation("chat-1")
	state.LastUpdated = time.Time{}

	st.EXPECT().UpsertConversation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c *domain.Conversation) error {
			require.NotSame(t, state, c)
			require.False(t, c.LastUpdated.IsZero())

			return nil
		})
	require.NoError(t, s.Persist(context.Background(), state))
	require.False(t, state.LastUpdated.IsZero())

	st.EXPECT().UpsertConversation(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	require.ErrorIs(t, s.Persist(context.Background(), state), serrors.ErrUnavailable)

	require.ErrorIs(t, s.Persist(context.Background(), nil), serrors.ErrBadRequest)
}

func TestStore_WithMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := conversation.New(memory.New(), conversation.Options{TTL: time.Hour, MaxHistory: 2})

	state, err := s.Load(ctx, message("chat-1"))
	require.NoError(t, err)

	state.AppendHistory(domain.RoleUser, "one", s.MaxHistory())
	state.AppendHistory(domain.RoleAssistant, "two", s.MaxHistory())
	state.AppendHistory(domain.RoleUser, "three", s.MaxHistory())
	require.NoError(t, s.Persist(ctx, state))

	again, err := s.Load(ctx, message("chat-1"))
	require.NoError(t, err)
	require.Equal(t, []domain.HistoryEntry{
		{Role: domain.RoleAssistant, Content: "two"},
		{Role: domain.RoleUser, Content: "three"},
	}, again.History)

	n, err := s.DeleteExpired(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}
