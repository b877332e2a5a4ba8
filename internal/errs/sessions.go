package errs

import "fmt"

// ErrSessionNotFound Кастомная ошибка, сообщающая о том, что сессия не найдена (истекла или была закрыта).
type ErrSessionNotFound struct {
	Key string
	Err error
}

func (sn *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("Сессия %s не найдена. Ошибка: %v", sn.Key, sn.Err)
}

func (sn *ErrSessionNotFound) Unwrap() error {
	return sn.Err
}

func NewErrSessionNotFound(key string, err error) *ErrSessionNotFound {
	if err == nil {
		err = fmt.Errorf("сессия не найдена")
	}

	return &ErrSessionNotFound{
		Key: key,
		Err: err,
	}
}
