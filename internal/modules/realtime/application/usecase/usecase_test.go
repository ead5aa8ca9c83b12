package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	paymentsdomain "skyflyBff/internal/modules/payments/domain"
	"skyflyBff/internal/modules/realtime/domain"
	"skyflyBff/internal/platform/rest"
	"skyflyBff/internal/shared/auth"
)

type fakeStatus struct {
	body    []byte
	ok      bool
	queries []paymentsdomain.TransactionStatusQuery
}

func (f *fakeStatus) Execute(_ context.Context, query paymentsdomain.TransactionStatusQuery) (rest.Result, bool) {
	f.queries = append(f.queries, query)
	if !f.ok {
		return rest.Result{}, false
	}
	return rest.Ok(f.body), true
}

type recordingBroadcaster struct {
	got []*domain.Message
}

func (b *recordingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	b.got = append(b.got, msg)
}

func TestConnectTransactionUseCase_Execute(t *testing.T) {
	t.Run("snapshot from backend", func(t *testing.T) {
		status := &fakeStatus{ok: true, body: []byte(`{"status":"PENDING"}`)}
		uc := NewConnectTransactionUseCase(auth.NewTokenChecker(""), status)

		out, err := uc.Execute(context.Background(), ConnectTransactionInput{Token: "tkn", TransactionID: " trx-1 "})

		require.NoError(t, err)
		require.Equal(t, []string{"transactions.trx-1"}, out.Topics)
		require.NotNil(t, out.Snapshot)
		require.Equal(t, domain.ActionSnapshot, out.Snapshot.Action)
		require.Equal(t, []paymentsdomain.TransactionStatusQuery{{TransactionID: "trx-1", Token: "tkn"}}, status.queries)
	})

	t.Run("no snapshot when lookup fails", func(t *testing.T) {
		uc := NewConnectTransactionUseCase(auth.NewTokenChecker(""), &fakeStatus{})

		out, err := uc.Execute(context.Background(), ConnectTransactionInput{Token: "tkn", TransactionID: "trx-1"})

		require.NoError(t, err)
		require.Nil(t, out.Snapshot)
	})

	t.Run("remembered update served to an admitted caller when lookup fails", func(t *testing.T) {
		status := &fakeStatus{ok: true, body: []byte(`{"status":"PENDING"}`)}
		uc := NewConnectTransactionUseCase(auth.NewTokenChecker(""), status)
		_, err := uc.Execute(context.Background(), ConnectTransactionInput{Token: "tkn", TransactionID: "trx-1"})
		require.NoError(t, err)

		status.ok = false
		update := domain.BuildStatusMessage(domain.StatusUpdate{TransactionID: "trx-1", Status: "PAID"}, time.Now())
		uc.Remember(update)

		out, err := uc.Execute(context.Background(), ConnectTransactionInput{Token: "tkn", TransactionID: "trx-1"})

		require.NoError(t, err)
		require.Same(t, update, out.Snapshot)
	})

	t.Run("remembered update alone admits nobody", func(t *testing.T) {
		uc := NewConnectTransactionUseCase(auth.NewTokenChecker(""), &fakeStatus{})
		uc.Remember(domain.BuildStatusMessage(domain.StatusUpdate{TransactionID: "trx-1", Status: "PAID"}, time.Now()))

		out, err := uc.Execute(context.Background(), ConnectTransactionInput{Token: "tkn", TransactionID: "trx-1"})

		require.NoError(t, err)
		require.Nil(t, out.Snapshot)
	})

	t.Run("refused caller never gets another caller's snapshot", func(t *testing.T) {
		status := &fakeStatus{ok: true, body: []byte(`{"status":"PAID","owner":"alice"}`)}
		uc := NewConnectTransactionUseCase(auth.NewTokenChecker(""), status)

		owner, err := uc.Execute(context.Background(), ConnectTransactionInput{Token: "owner-token", TransactionID: "trx-1"})
		require.NoError(t, err)
		require.NotNil(t, owner.Snapshot)

		status.ok = false
		other, err := uc.Execute(context.Background(), ConnectTransactionInput{Token: "other-token", TransactionID: "trx-1"})

		require.NoError(t, err)
		require.Nil(t, other.Snapshot)
		require.Equal(t, "other-token", status.queries[1].Token)

		again, err := uc.Execute(context.Background(), ConnectTransactionInput{Token: "owner-token", TransactionID: "trx-1"})
		require.NoError(t, err)
		require.Same(t, owner.Snapshot, again.Snapshot)
	})

	t.Run("refresh re-checks the caller", func(t *testing.T) {
		status := &fakeStatus{ok: true, body: []byte(`{"status":"PENDING"}`)}
		uc := NewConnectTransactionUseCase(auth.NewTokenChecker(""), status)

		require.NotNil(t, uc.Refresh(context.Background(), "trx-1", "tkn"))
		require.Nil(t, uc.Refresh(context.Background(), "trx-1", ""))
		require.Nil(t, uc.Refresh(context.Background(), " ", "tkn"))
		require.Len(t, status.queries, 1)
	})

	t.Run("rejections", func(t *testing.T) {
		status := &fakeStatus{ok: true}
		uc := NewConnectTransactionUseCase(auth.NewTokenChecker(""), status)

		_, err := uc.Execute(context.Background(), ConnectTransactionInput{Token: "tkn"})
		require.ErrorIs(t, err, domain.ErrMissingTransaction)

		_, err = uc.Execute(context.Background(), ConnectTransactionInput{TransactionID: "trx-1"})
		require.ErrorIs(t, err, auth.ErrMissingToken)
		require.Empty(t, status.queries)
	})
}

func TestBroadcastUseCase_PublishStatus(t *testing.T) {
	broadcaster := &recordingBroadcaster{}
	uc := NewBroadcastUseCase(broadcaster)

	msg, err := uc.PublishStatus(context.Background(), domain.StatusUpdate{TransactionID: "trx-1", Status: "PAID"})
	require.NoError(t, err)
	require.Equal(t, []*domain.Message{msg}, broadcaster.got)
	require.Equal(t, "transactions.trx-1", msg.Topic)

	_, err = uc.PublishStatus(context.Background(), domain.StatusUpdate{Status: "PAID"})
	require.True(t, errors.Is(err, domain.ErrMissingTransaction))
	require.Len(t, broadcaster.got, 1)
}

func TestSnapshotCache_EvictsOldest(t *testing.T) {
	cache := newSnapshotCache()
	for i := 0; i < maxCachedTransactions+1; i++ {
		cache.set("trx-"+strconv.Itoa(i), "tkn", &domain.Message{})
	}
	require.Len(t, cache.entries, maxCachedTransactions)
}

func TestSnapshotCache_KeyedByCaller(t *testing.T) {
	cache := newSnapshotCache()
	msg := &domain.Message{ResourceID: "trx-1"}
	cache.set("trx-1", "owner", msg)

	_, ok := cache.get("trx-1", "someone-else")
	require.False(t, ok)

	entry, ok := cache.get(" trx-1 ", "owner")
	require.True(t, ok)
	require.Same(t, msg, entry.msg)

	update := &domain.Message{ResourceID: "trx-1"}
	require.Equal(t, 1, cache.refresh("trx-1", update))
	require.Zero(t, cache.refresh("trx-2", update))
	entry, _ = cache.get("trx-1", "owner")
	require.Same(t, update, entry.msg)
}
