package view_storage

import "github.com/trsv-dev/dpim-portal/internal/viewmodel"

//go:generate mockgen -destination=mocks/view_state_storage_mock.go -package=mocks . ViewStateStorage

type ViewStateStorage interface {
	Get(key string) (viewmodel.ViewState, bool)
	Apply(key string, fn func(state *viewmodel.ViewState)) viewmodel.ViewState
	Delete(key string)
	Keys() []string
}
