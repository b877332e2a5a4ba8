package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trsv-dev/dpim-portal/internal/api/response"
	"github.com/trsv-dev/dpim-portal/internal/contextkeys"
	"github.com/trsv-dev/dpim-portal/internal/utils"
)

// ParseRecordIDMiddleware Достает идентификатор сервера из URL ({serverID}), проверяет формат и кладет в контекст.
func ParseRecordIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recordID := chi.URLParam(r, "serverID")
		if recordID == "" {
			response.ErrorJSON(w, http.StatusBadRequest, "Не указан id сервера")
			return
		}

		if !utils.IsRecordID(recordID) {
			response.ErrorJSON(w, http.StatusBadRequest, "Неверный формат id сервера")
			return
		}

		ctx := context.WithValue(r.Context(), contextkeys.RecordID, recordID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
