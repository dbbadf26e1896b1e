package ledger

import (
	"casino_engine/internal/logger"
	"casino_engine/internal/model"
	"casino_engine/internal/repository"
	"casino_engine/internal/repository/sqlite"
	"casino_engine/internal/repository/sqlite/sqlitetest"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func newLedger(t *testing.T) (*serv, *sqlite.Store) {
	t.Helper()

	store := sqlitetest.Open(t)
	s := NewLedgerService(store.Accounts(), store.Transactions(), store.Outcomes(), store.TxManager(), logger.Discard(), 1000)
	return s.(*serv), store
}

func TestGetOrCreateAccount(t *testing.T) {
	t.Parallel()

	s, _ := newLedger(t)
	ctx := context.Background()

	a, err := s.GetOrCreateAccount(ctx, 10, "bia")
	if err != nil {
		t.Fatal(err)
	}
	if a.Balance != 1000 || a.Name != "bia" {
		t.Fatalf("new account = %+v", a)
	}

	a.Balance = 0
	again, err := s.GetOrCreateAccount(ctx, 10, "")
	if err != nil {
		t.Fatal(err)
	}
	if again.Balance != 1000 || again.Name != "bia" {
		t.Fatalf("second call = %+v, want untouched account", again)
	}

	renamed, err := s.GetOrCreateAccount(ctx, 10, "beatriz")
	if err != nil {
		t.Fatal(err)
	}
	if renamed.Name != "beatriz" || renamed.Balance != 1000 {
		t.Fatalf("renamed = %+v", renamed)
	}

	if _, err := s.Account(ctx, 11); !errors.Is(err, model.ErrAccountNotFound) {
		t.Fatalf("Account(missing) = %v, want ErrAccountNotFound", err)
	}
}

func TestApplyPersistsMutation(t *testing.T) {
	t.Parallel()

	s, _ := newLedger(t)
	ctx := context.Background()
	if _, err := s.GetOrCreateAccount(ctx, 1, "a"); err != nil {
		t.Fatal(err)
	}

	a, err := s.Apply(ctx, 1, func(_ context.Context, acc *model.Account) (model.Mutation, error) {
		acc.Balance -= 100
		acc.GamesPlayed++
		return model.Mutation{
			Transactions: []model.Transaction{{AccountID: acc.ID, Amount: -100, Kind: model.TransactionStake}},
			Outcome:      &model.GameOutcome{AccountID: acc.ID, Game: model.GameDice, BetAmount: 100, Result: model.ResultLoss, NetChange: -100},
		}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if a.Balance != 900 {
		t.Fatalf("balance = %d, want 900", a.Balance)
	}

	stored, _ := s.Account(ctx, 1)
	if stored.Balance != 900 || stored.GamesPlayed != 1 {
		t.Fatalf("stored = %+v", stored)
	}
	txs, _ := s.Transactions(ctx, 1, 10)
	if len(txs) != 1 || txs[0].Amount != -100 || txs[0].CreatedAt.IsZero() {
		t.Fatalf("transactions = %+v", txs)
	}
	outcomes, _ := s.Outcomes(ctx, 1, 10)
	if len(outcomes) != 1 || outcomes[0].NetChange != -100 {
		t.Fatalf("outcomes = %+v", outcomes)
	}
}

func TestApplyRollsBackOnMutateError(t *testing.T) {
	t.Parallel()

	s, _ := newLedger(t)
	ctx := context.Background()
	if _, err := s.GetOrCreateAccount(ctx, 1, "a"); err != nil {
		t.Fatal(err)
	}

	_, err := s.Apply(ctx, 1, func(_ context.Context, acc *model.Account) (model.Mutation, error) {
		acc.Balance = 5
		return model.Mutation{}, model.ErrInsufficientFunds
	})
	if !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("Apply = %v, want ErrInsufficientFunds", err)
	}
	if a, _ := s.Account(ctx, 1); a.Balance != 1000 {
		t.Fatalf("balance after rollback = %d, want 1000", a.Balance)
	}

	_, err = s.Apply(ctx, 1, func(_ context.Context, acc *model.Account) (model.Mutation, error) {
		acc.Balance = -1
		return model.Mutation{}, nil
	})
	if !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("negative balance = %v, want ErrInsufficientFunds", err)
	}

	if _, err := s.Apply(ctx, 99, func(context.Context, *model.Account) (model.Mutation, error) {
		return model.Mutation{}, nil
	}); !errors.Is(err, model.ErrAccountNotFound) {
		t.Fatalf("Apply(missing) = %v, want ErrAccountNotFound", err)
	}
}

func TestApplyMutateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "domain", err: fmt.Errorf("%w: need 10", model.ErrInsufficientFunds), want: model.ErrInsufficientFunds},
		{name: "not earned", err: model.ErrNotEarned, want: model.ErrNotEarned},
		{name: "storage", err: errors.New("disk I/O error"), want: model.ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _ := newLedger(t)
			ctx := context.Background()
			if _, err := s.GetOrCreateAccount(ctx, 1, "a"); err != nil {
				t.Fatal(err)
			}
			_, err := s.Apply(ctx, 1, func(context.Context, *model.Account) (model.Mutation, error) {
				return model.Mutation{}, tt.err
			})
			if !errors.Is(err, tt.want) {
				t.Errorf("Apply() = %v, want %v", err, tt.want)
			}
			if tt.want == model.ErrInternal && err != model.ErrInternal {
				t.Errorf("Apply() leaks storage error %v", err)
			}
		})
	}
}

func TestApplyPairArgumentOrder(t *testing.T) {
	t.Parallel()

	s, _ := newLedger(t)
	ctx := context.Background()
	for _, id := range []int64{5, 3} {
		if _, err := s.GetOrCreateAccount(ctx, id, fmt.Sprint(id)); err != nil {
			t.Fatal(err)
		}
	}

	a, b, err := s.ApplyPair(ctx, 5, 3, func(_ context.Context, from, to *model.Account) (model.Mutation, error) {
		if from.ID != 5 || to.ID != 3 {
			return model.Mutation{}, fmt.Errorf("got %d -> %d", from.ID, to.ID)
		}
		from.Balance -= 300
		to.Balance += 300
		return model.Mutation{}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if a.Balance != 700 || b.Balance != 1300 {
		t.Fatalf("balances = %d/%d", a.Balance, b.Balance)
	}

	if _, _, err := s.ApplyPair(ctx, 3, 3, nil); !errors.Is(err, model.ErrInvalidTransfer) {
		t.Fatalf("self pair = %v, want ErrInvalidTransfer", err)
	}
}

// flakyAccounts отдаёт конфликт на первые fail вызовов GetForUpdate
type flakyAccounts struct {
	repository.AccountRepository
	fail  int32
	calls atomic.Int32
}

func (f *flakyAccounts) GetForUpdate(ctx context.Context, id int64) (*model.Account, error) {
	if f.calls.Add(1) <= f.fail {
		return nil, fmt.Errorf("%w: serialization failure", model.ErrConcurrencyConflict)
	}
	return f.AccountRepository.GetForUpdate(ctx, id)
}

func TestApplyRetriesConflictOnce(t *testing.T) {
	t.Parallel()

	s, store := newLedger(t)
	ctx := context.Background()
	if _, err := s.GetOrCreateAccount(ctx, 1, "a"); err != nil {
		t.Fatal(err)
	}

	noop := func(_ context.Context, acc *model.Account) (model.Mutation, error) {
		acc.Balance++
		return model.Mutation{}, nil
	}

	flaky := &flakyAccounts{AccountRepository: store.Accounts(), fail: 1}
	s.accounts = flaky
	if _, err := s.Apply(ctx, 1, noop); err != nil {
		t.Fatalf("one conflict = %v, want retried success", err)
	}
	if got := flaky.calls.Load(); got != 2 {
		t.Fatalf("attempts = %d, want 2", got)
	}

	flaky = &flakyAccounts{AccountRepository: store.Accounts(), fail: 2}
	s.accounts = flaky
	if _, err := s.Apply(ctx, 1, noop); !errors.Is(err, model.ErrConcurrencyConflict) {
		t.Fatalf("two conflicts = %v, want ErrConcurrencyConflict", err)
	}
	if got := flaky.calls.Load(); got != 2 {
		t.Fatalf("attempts = %d, want 2", got)
	}
}
