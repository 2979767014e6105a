package conversation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"gateway/internal/conversation"
	mockconversation "gateway/internal/conversation/mock"
)

func TestRunJanitor_PrunesUntilCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctrl := gomock.NewController(t)
	s := mockconversation.NewMockStore(ctrl)
	s.EXPECT().TTL().Return(time.Hour).AnyTimes()

	pruned := make(chan struct{}, 1)
	s.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, before time.Time) (int64, error) {
			require.WithinDuration(t, time.Now().Add(-time.Hour), before, time.Second)
			select {
			case pruned <- struct{}{}:
			default:
			}

			return 1, nil
		}).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		conversation.RunJanitor(ctx, s, 5*time.Millisecond)
	}()

	select {
	case <-pruned:
	case <-time.After(time.Second):
		t.Fatal("janitor did not run")
	}

	cancel()
	wg.Wait()
}

func TestRunJanitor_Disabled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctrl := gomock.NewController(t)
	s := mockconversation.NewMockStore(ctrl)
	s.EXPECT().TTL().Return(time.Hour).AnyTimes()

	// returns immediately without a ticker
	conversation.RunJanitor(context.Background(), s, 0)
}
