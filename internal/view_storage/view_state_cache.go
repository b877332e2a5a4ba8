package view_storage

import (
	"sort"
	"sync"

	"github.com/trsv-dev/dpim-portal/internal/viewmodel"
)

// ViewStateCache In-memory хранилище состояния таблицы серверов (ViewState) каждой сессии.
type ViewStateCache struct {
	mu       sync.RWMutex
	cache    map[string]viewmodel.ViewState
	newState func() viewmodel.ViewState
}

// NewViewStateCache Конструктор ViewStateCache. newState создает начальное состояние
// для сессии, у которой его еще нет.
func NewViewStateCache(newState func() viewmodel.ViewState) *ViewStateCache {
	if newState == nil {
		newState = func() viewmodel.ViewState {
			return viewmodel.NewViewState(viewmodel.DefaultItemsPerPage)
		}
	}

	return &ViewStateCache{
		cache:    make(map[string]viewmodel.ViewState),
		newState: newState,
	}
}

// Get Метод для извлечения состояния сессии.
func (vc *ViewStateCache) Get(key string) (viewmodel.ViewState, bool) {
	vc.mu.RLock()
	defer vc.mu.RUnlock()

	v, ok := vc.cache[key]

	return v, ok
}

// Apply Применяет переход fn к состоянию сессии под блокировкой и возвращает копию результата.
// Два перехода одной сессии никогда не выполняются одновременно и применяются в порядке вызова.
// Если состояния нет, оно создается через newState. fn == nil просто возвращает состояние.
func (vc *ViewStateCache) Apply(key string, fn func(state *viewmodel.ViewState)) viewmodel.ViewState {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	state, ok := vc.cache[key]
	if !ok {
		state = vc.newState()
	}

	if fn != nil {
		fn(&state)
	}

	vc.cache[key] = state

	return state
}

// Delete Метод для удаления состояния сессии (при выходе пользователя).
func (vc *ViewStateCache) Delete(key string) {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	delete(vc.cache, key)
}

// Keys Ключи всех сессий, для которых есть состояние, в отсортированном порядке.
func (vc *ViewStateCache) Keys() []string {
	vc.mu.RLock()
	defer vc.mu.RUnlock()

	keys := make([]string, 0, len(vc.cache))
	for k := range vc.cache {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Len Количество сессий в кэше.
func (vc *ViewStateCache) Len() int {
	vc.mu.RLock()
	defer vc.mu.RUnlock()

	return len(vc.cache)
}
