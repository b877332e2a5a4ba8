package models

import (
	"context"

	"github.com/trsv-dev/dpim-portal/internal/contextkeys"
)

// ContextCredentials Данные пользователя и запроса, извлеченные из r.Context().
type ContextCredentials struct {
	Login      string
	Role       string
	SessionKey string
	RecordID   string
}

// GetContextCreds Вытаскивает данные из контекста и возвращает структуру.
func GetContextCreds(ctx context.Context) *ContextCredentials {
	creds := &ContextCredentials{}

	if v, ok := ctx.Value(contextkeys.Login).(string); ok {
		creds.Login = v
	}

	if v, ok := ctx.Value(contextkeys.Role).(string); ok {
		creds.Role = v
	}

	if v, ok := ctx.Value(contextkeys.SessionKey).(string); ok {
		creds.SessionKey = v
	}

	if v, ok := ctx.Value(contextkeys.RecordID).(string); ok {
		creds.RecordID = v
	}

	return creds
}
