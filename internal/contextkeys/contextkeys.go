package contextkeys

// ContextKey Тип ключей контекста запроса.
type ContextKey string

const (
	Login      ContextKey = "login"
	Role       ContextKey = "role"
	SessionKey ContextKey = "sessionKey"
	RecordID   ContextKey = "recordID"
)
