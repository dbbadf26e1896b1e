package achievement

import (
	"casino_engine/internal/events"
	"casino_engine/internal/logger"
	"casino_engine/internal/model"
	"casino_engine/internal/repository/sqlite/sqlitetest"
	"casino_engine/internal/service"
	"casino_engine/internal/service/ledger"
	"context"
	"sort"
	"sync"
	"testing"
)

func newAchievements(t *testing.T) (*serv, service.LedgerService) {
	t.Helper()

	store := sqlitetest.Open(t)
	log := logger.Discard()
	l := ledger.NewLedgerService(store.Accounts(), store.Transactions(), store.Outcomes(), store.TxManager(), log, 1000)
	s := NewAchievementService(l, store.Achievements(), events.Nop(), log)
	return s.(*serv), l
}

// withStats создаёт счёт и выставляет ему статистику напрямую
func withStats(t *testing.T, l service.LedgerService, id int64, st model.Stats) {
	t.Helper()

	ctx := context.Background()
	if _, err := l.GetOrCreateAccount(ctx, id, "player"); err != nil {
		t.Fatal(err)
	}
	_, err := l.Apply(ctx, id, func(_ context.Context, a *model.Account) (model.Mutation, error) {
		a.Balance = st.Balance
		a.TotalWon = st.TotalWon
		a.TotalLost = st.TotalLost
		a.GamesPlayed = st.GamesPlayed
		a.GamesWon = st.GamesWon
		a.DailyStreak = st.DailyStreak
		return model.Mutation{}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func keys(list []model.Achievement) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Key)
	}
	sort.Strings(out)
	return out
}

func TestDefinitions(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, d := range Definitions() {
		if seen[d.Key] {
			t.Errorf("duplicate key %q", d.Key)
		}
		seen[d.Key] = true
		if d.Reward <= 0 {
			t.Errorf("%s: reward = %d", d.Key, d.Reward)
		}
		if d.Predicate(model.Stats{}) {
			t.Errorf("%s: unlocked by empty stats", d.Key)
		}
	}
	if len(seen) != 9 {
		t.Errorf("definitions = %d, want 9", len(seen))
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		stats       model.Stats
		want        []string
		wantBalance int64
	}{
		{
			name:        "nothing",
			stats:       model.Stats{Balance: 500, GamesPlayed: 3},
			want:        []string{},
			wantBalance: 500,
		},
		{
			name:        "first win",
			stats:       model.Stats{Balance: 500, GamesPlayed: 1, GamesWon: 1},
			want:        []string{"first_win"},
			wantBalance: 600,
		},
		{
			name:        "several at once",
			stats:       model.Stats{Balance: 500, GamesPlayed: 12, GamesWon: 2, TotalLost: 6000},
			want:        []string{"first_win", "regular", "unlucky"},
			wantBalance: 500 + 100 + 250 + 500,
		},
		{
			name:        "reward unlocks the next one",
			stats:       model.Stats{Balance: 9950, GamesPlayed: 1, GamesWon: 1},
			want:        []string{"first_win", "rich"},
			wantBalance: 9950 + 100 + 1000,
		},
		{
			name:        "streaks",
			stats:       model.Stats{Balance: 100, DailyStreak: 30},
			want:        []string{"devoted", "loyal"},
			wantBalance: 100 + 700 + 3000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, l := newAchievements(t)
			ctx := context.Background()
			withStats(t, l, 1, tt.stats)

			got, err := s.Evaluate(ctx, 1)
			if err != nil {
				t.Fatal(err)
			}
			gotKeys := keys(got)
			if len(gotKeys) != len(tt.want) {
				t.Fatalf("unlocked = %v, want %v", gotKeys, tt.want)
			}
			for i := range gotKeys {
				if gotKeys[i] != tt.want[i] {
					t.Fatalf("unlocked = %v, want %v", gotKeys, tt.want)
				}
			}

			acc, err := l.Account(ctx, 1)
			if err != nil {
				t.Fatal(err)
			}
			if acc.Balance != tt.wantBalance {
				t.Errorf("balance = %d, want %d", acc.Balance, tt.wantBalance)
			}

			txs, err := l.Transactions(ctx, 1, 50)
			if err != nil {
				t.Fatal(err)
			}
			rewards := 0
			for _, tx := range txs {
				if tx.Kind == model.TransactionAchievement {
					rewards++
				}
			}
			if rewards != len(tt.want) {
				t.Errorf("reward rows = %d, want %d", rewards, len(tt.want))
			}

			again, err := s.Evaluate(ctx, 1)
			if err != nil {
				t.Fatal(err)
			}
			if len(again) != 0 {
				t.Errorf("second evaluate unlocked %v", keys(again))
			}
		})
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	t.Parallel()

	s, l := newAchievements(t)
	ctx := context.Background()
	withStats(t, l, 1, model.Stats{Balance: 0, GamesPlayed: 1, GamesWon: 1})

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Evaluate(ctx, 1)
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			total += len(got)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if total != 1 {
		t.Errorf("unlocks across callers = %d, want 1", total)
	}
	acc, err := l.Account(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if acc.Balance != 100 {
		t.Errorf("balance = %d, want exactly one reward", acc.Balance)
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	s, l := newAchievements(t)
	ctx := context.Background()
	withStats(t, l, 1, model.Stats{Balance: 10, DailyStreak: 7})

	if list, err := s.List(ctx, 1); err != nil || len(list) != 0 {
		t.Fatalf("List() before = %v, %v", list, err)
	}
	if _, err := s.Evaluate(ctx, 1); err != nil {
		t.Fatal(err)
	}
	list, err := s.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Key != "loyal" || list[0].Reward != 700 || list[0].UnlockedAt.IsZero() {
		t.Errorf("List() = %+v", list)
	}
}
