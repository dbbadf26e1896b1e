package session

import (
	"casino_engine/internal/model"
	"sync"
)

// Registry - живые сессии по счетам, не больше одной на счёт.
// Последняя завершённая сессия счёта остаётся доступной по ID, пока он не начнёт новую
type Registry struct {
	mu   sync.Mutex
	live map[int64]*handle
	done map[int64]*handle
	byID map[string]*handle
}

func NewRegistry() *Registry {
	return &Registry{
		live: make(map[int64]*handle),
		done: make(map[int64]*handle),
		byID: make(map[string]*handle),
	}
}

// Reserve занимает счёт под сессию. ErrSessionActive, если у счёта уже есть живая
func (r *Registry) Reserve(h *handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live[h.accountID]; ok {
		return model.ErrSessionActive
	}
	if old, ok := r.done[h.accountID]; ok {
		delete(r.byID, old.id)
		delete(r.done, h.accountID)
	}
	r.live[h.accountID] = h
	r.byID[h.id] = h
	return nil
}

// Release освобождает счёт после завершения сессии
func (r *Registry) Release(h *handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.live[h.accountID]; ok && cur == h {
		delete(r.live, h.accountID)
	}
	r.done[h.accountID] = h
}

// Cancel снимает резерв сессии, которая так и не началась
func (r *Registry) Cancel(h *handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.live[h.accountID]; ok && cur == h {
		delete(r.live, h.accountID)
	}
	delete(r.byID, h.id)
}

// Lookup ищет сессию по ID: живую или последнюю завершённую
func (r *Registry) Lookup(id string) (*handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.byID[id]
	return h, ok
}

// Active - живая сессия счёта
func (r *Registry) Active(accountID int64) (*handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.live[accountID]
	return h, ok
}

// Live - снимок всех живых сессий
func (r *Registry) Live() []*handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*handle, 0, len(r.live))
	for _, h := range r.live {
		out = append(out, h)
	}
	return out
}
