package view_storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trsv-dev/dpim-portal/internal/logger"
	"github.com/trsv-dev/dpim-portal/internal/models"
	storageMocks "github.com/trsv-dev/dpim-portal/internal/storage/mocks"
	viewStateMocks "github.com/trsv-dev/dpim-portal/internal/view_storage/mocks"
	"github.com/trsv-dev/dpim-portal/internal/viewmodel"
)

func init() {
	logger.InitLogger("error", "stdout")
}

// ============================================================================
// БАЗОВЫЕ ЮНИТ-ТЕСТЫ
// ============================================================================

// TestNewViewStateCache Проверяет создание нового экземпляра ViewStateCache.
func TestNewViewStateCache(t *testing.T) {
	cache := NewViewStateCache(nil)

	assert.NotNil(t, cache.cache, "кэш не должен быть nil")
	assert.Empty(t, cache.cache, "кэш должен быть пустым при создании")
	assert.Equal(t, viewmodel.NewViewState(viewmodel.DefaultItemsPerPage), cache.newState())
}

// TestViewStateCacheApplyCreates Apply создает начальное состояние для новой сессии.
func TestViewStateCacheApplyCreates(t *testing.T) {
	cache := NewViewStateCache(func() viewmodel.ViewState { return viewmodel.NewViewState(25) })

	state := cache.Apply("k1", nil)

	assert.Equal(t, viewmodel.ViewState{StatusFilter: models.FilterAll, CurrentPage: 1, ItemsPerPage: 25}, state)

	got, ok := cache.Get("k1")
	require.True(t, ok)
	assert.Equal(t, state, got)
}

// TestViewStateCacheApplyTransition Переход сохраняется и возвращается копия результата.
func TestViewStateCacheApplyTransition(t *testing.T) {
	cache := NewViewStateCache(nil)

	cache.Apply("k1", func(s *viewmodel.ViewState) { s.SetPage(4, 25) })
	state := cache.Apply("k1", func(s *viewmodel.ViewState) {
		s.SetFilter(models.StatusFilter(models.StatusWarning))
	})

	assert.Equal(t, 1, state.CurrentPage)
	assert.Equal(t, models.StatusFilter(models.StatusWarning), state.StatusFilter)

	// изменение копии не влияет на кэш
	state.CurrentPage = 99
	got, _ := cache.Get("k1")
	assert.Equal(t, 1, got.CurrentPage)
}

// TestViewStateCacheGetNotFound Проверяет поиск несуществующей сессии.
func TestViewStateCacheGetNotFound(t *testing.T) {
	cache := NewViewStateCache(nil)

	_, ok := cache.Get("missing")

	assert.False(t, ok)
}

// TestViewStateCacheDelete Проверяет удаление состояния сессии.
func TestViewStateCacheDelete(t *testing.T) {
	cache := NewViewStateCache(nil)
	cache.Apply("k1", nil)
	cache.Apply("k2", nil)

	cache.Delete("k1")
	cache.Delete("missing")

	_, ok := cache.Get("k1")
	assert.False(t, ok)
	assert.Equal(t, []string{"k2"}, cache.Keys())
	assert.Equal(t, 1, cache.Len())
}

// TestViewStateCacheKeys Ключи возвращаются отсортированными.
func TestViewStateCacheKeys(t *testing.T) {
	cache := NewViewStateCache(nil)
	for _, k := range []string{"c", "a", "b"} {
		cache.Apply(k, nil)
	}

	assert.Equal(t, []string{"a", "b", "c"}, cache.Keys())
}

// ============================================================================
// КОНКУРЕНТНЫЕ ТЕСТЫ
// ============================================================================

// TestViewStateCacheConcurrentApply Переходы одной сессии не теряются при конкурентном вызове.
func TestViewStateCacheConcurrentApply(t *testing.T) {
	cache := NewViewStateCache(nil)
	var wg sync.WaitGroup

	const goroutines = 100

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// каждая горутина увеличивает страницу на единицу; без блокировки часть инкрементов потерялась бы
			cache.Apply("k1", func(s *viewmodel.ViewState) {
				s.SetPage(s.CurrentPage+1, goroutines+1)
			})
		}()
	}

	wg.Wait()

	state, ok := cache.Get("k1")
	require.True(t, ok)
	assert.Equal(t, goroutines+1, state.CurrentPage)
}

// TestViewStateCacheConcurrentMixed Конкурентные Apply, Get, Delete и Keys разных сессий.
func TestViewStateCacheConcurrentMixed(t *testing.T) {
	cache := NewViewStateCache(nil)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(4)
		key := fmt.Sprintf("k%d", i)

		go func() { defer wg.Done(); cache.Apply(key, nil) }()
		go func() { defer wg.Done(); cache.Get(key) }()
		go func() { defer wg.Done(); cache.Keys() }()
		go func() { defer wg.Done(); cache.Delete(key) }()
	}

	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 50)
}

// ============================================================================
// ПРОГРЕВ
// ============================================================================

// TestWarmUpViewStateCache Для каждой сохраненной сессии создается состояние.
func TestWarmUpViewStateCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := storageMocks.NewMockStorage(ctrl)
	gomock.InOrder(
		mockStorage.EXPECT().DeleteExpiredSessions(gomock.Any(), gomock.Any()).Return([]string{"old"}, nil),
		mockStorage.EXPECT().ListSessionKeys(gomock.Any()).Return([]string{"k1", "k2"}, nil),
	)

	cache := NewViewStateCache(nil)
	cache.Apply("old", nil)

	require.NoError(t, WarmUpViewStateCache(context.Background(), mockStorage, cache))
	assert.Equal(t, []string{"k1", "k2"}, cache.Keys())
}

// TestWarmUpViewStateCacheError Ошибка хранилища возвращается вызывающему.
func TestWarmUpViewStateCacheError(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(m *storageMocks.MockStorage)
	}{
		{
			name: "ошибка удаления истекших сессий",
			mockSetup: func(m *storageMocks.MockStorage) {
				m.EXPECT().DeleteExpiredSessions(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
				m.EXPECT().ListSessionKeys(gomock.Any()).Times(0)
			},
		},
		{
			name: "ошибка получения списка сессий",
			mockSetup: func(m *storageMocks.MockStorage) {
				m.EXPECT().DeleteExpiredSessions(gomock.Any(), gomock.Any()).Return(nil, nil)
				m.EXPECT().ListSessionKeys(gomock.Any()).Return(nil, errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := storageMocks.NewMockStorage(ctrl)
			tt.mockSetup(mockStorage)

			mockCache := viewStateMocks.NewMockViewStateStorage(ctrl)
			mockCache.EXPECT().Apply(gomock.Any(), gomock.Any()).Times(0)

			err := WarmUpViewStateCache(context.Background(), mockStorage, mockCache)

			assert.EqualError(t, err, "db down")
		})
	}
}

// TestEvictExpiredSessions Состояния истекших сессий удаляются из кэша, остальные сохраняются.
func TestEvictExpiredSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	mockStorage := storageMocks.NewMockStorage(ctrl)
	mockStorage.EXPECT().DeleteExpiredSessions(gomock.Any(), now).Return([]string{"a", "c"}, nil)

	cache := NewViewStateCache(nil)
	for _, k := range []string{"a", "b", "c"} {
		cache.Apply(k, nil)
	}

	expired, err := EvictExpiredSessions(context.Background(), mockStorage, cache, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, expired)
	assert.Equal(t, []string{"b"}, cache.Keys())
}
