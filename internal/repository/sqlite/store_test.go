package sqlite_test

import (
	"casino_engine/internal/model"
	"casino_engine/internal/repository/sqlite"
	"casino_engine/internal/repository/sqlite/sqlitetest"
	"context"
	"errors"
	"testing"
	"time"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := sqlite.Open(context.Background(), " "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestAccountRoundTrip(t *testing.T) {
	t.Parallel()

	store := sqlitetest.Open(t)
	ctx := context.Background()
	accounts := store.Accounts()

	now := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)
	created, err := accounts.Create(ctx, &model.Account{ID: 42, Name: "ana", Balance: 1000, CreatedAt: now})
	if err != nil || !created {
		t.Fatalf("create = (%v, %v), want (true, nil)", created, err)
	}
	created, err = accounts.Create(ctx, &model.Account{ID: 42, Name: "other", Balance: 5, CreatedAt: now})
	if err != nil || created {
		t.Fatalf("second create = (%v, %v), want (false, nil)", created, err)
	}

	a, err := accounts.Get(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "ana" || a.Balance != 1000 || !a.CreatedAt.Equal(now) || a.LastDailyClaim != nil {
		t.Fatalf("account = %+v", a)
	}

	claim := now.Add(time.Hour)
	a.Balance, a.GamesPlayed, a.DailyStreak, a.LastDailyClaim = 1500, 3, 2, &claim
	if err := accounts.Update(ctx, a); err != nil {
		t.Fatal(err)
	}
	got, err := accounts.GetForUpdate(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if got.Balance != 1500 || got.GamesPlayed != 3 || got.DailyStreak != 2 || !got.LastDailyClaim.Equal(claim) {
		t.Fatalf("updated account = %+v", got)
	}

	if _, err := accounts.Get(ctx, 7); !errors.Is(err, model.ErrAccountNotFound) {
		t.Fatalf("Get(missing) = %v, want ErrAccountNotFound", err)
	}
	if err := accounts.Update(ctx, &model.Account{ID: 7}); !errors.Is(err, model.ErrAccountNotFound) {
		t.Fatalf("Update(missing) = %v, want ErrAccountNotFound", err)
	}
}

func TestBalanceCannotGoNegative(t *testing.T) {
	t.Parallel()

	store := sqlitetest.Open(t)
	ctx := context.Background()
	if _, err := store.Accounts().Create(ctx, &model.Account{ID: 1, Balance: 10, CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := store.Accounts().Update(ctx, &model.Account{ID: 1, Balance: -1}); err == nil {
		t.Fatal("negative balance accepted")
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	t.Parallel()

	store := sqlitetest.Open(t)
	ctx := context.Background()
	now := time.Now()
	if _, err := store.Accounts().Create(ctx, &model.Account{ID: 1, Balance: 100, CreatedAt: now}); err != nil {
		t.Fatal(err)
	}

	for i, amount := range []int64{-10, 25, -5} {
		tx := &model.Transaction{AccountID: 1, Amount: amount, Kind: model.TransactionStake, CreatedAt: now.Add(time.Duration(i) * time.Second)}
		if err := store.Transactions().Create(ctx, tx); err != nil {
			t.Fatal(err)
		}
		if tx.ID == 0 {
			t.Fatal("transaction id not set")
		}
	}
	txs, err := store.Transactions().ListByAccount(ctx, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 2 || txs[0].Amount != -5 || txs[1].Amount != 25 {
		t.Fatalf("transactions = %+v", txs)
	}

	o := &model.GameOutcome{AccountID: 1, Game: model.GameDice, BetAmount: 10, Result: model.ResultLoss, NetChange: -10, CreatedAt: now}
	if err := store.Outcomes().Create(ctx, o); err != nil {
		t.Fatal(err)
	}
	outcomes, err := store.Outcomes().ListByAccount(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 1 || outcomes[0].Game != model.GameDice || outcomes[0].Result != model.ResultLoss {
		t.Fatalf("outcomes = %+v", outcomes)
	}
}

func TestUnlockIsUnique(t *testing.T) {
	t.Parallel()

	store := sqlitetest.Open(t)
	ctx := context.Background()
	now := time.Now()
	if _, err := store.Accounts().Create(ctx, &model.Account{ID: 1, Balance: 100, CreatedAt: now}); err != nil {
		t.Fatal(err)
	}

	u := &model.AchievementUnlock{AccountID: 1, Key: "first_win", UnlockedAt: now}
	if err := store.Achievements().Unlock(ctx, u); err != nil {
		t.Fatal(err)
	}
	if err := store.Achievements().Unlock(ctx, u); !errors.Is(err, model.ErrAlreadyUnlocked) {
		t.Fatalf("second unlock = %v, want ErrAlreadyUnlocked", err)
	}
	list, err := store.Achievements().ListByAccount(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Key != "first_win" {
		t.Fatalf("unlocks = %+v", list)
	}
}

func TestTxManagerRollsBack(t *testing.T) {
	t.Parallel()

	store := sqlitetest.Open(t)
	ctx := context.Background()
	if _, err := store.Accounts().Create(ctx, &model.Account{ID: 1, Balance: 100, CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := store.TxManager().Do(ctx, func(txCtx context.Context) error {
		a, err := store.Accounts().GetForUpdate(txCtx, 1)
		if err != nil {
			return err
		}
		a.Balance = 0
		if err := store.Accounts().Update(txCtx, a); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Do = %v, want boom", err)
	}
	a, err := store.Accounts().Get(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if a.Balance != 100 {
		t.Fatalf("balance after rollback = %d, want 100", a.Balance)
	}
}
