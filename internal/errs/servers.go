package errs

import "fmt"

// ErrServerNotFound Кастомная ошибка, сообщающая о том, что сервера с таким ID нет в наборе данных.
type ErrServerNotFound struct {
	ID  string
	Err error
}

func (no *ErrServerNotFound) Error() string {
	return fmt.Sprintf("Сервер %s не найден. Ошибка: %v", no.ID, no.Err)
}

func (no *ErrServerNotFound) Unwrap() error {
	return no.Err
}

func NewErrServerNotFound(id string, err error) *ErrServerNotFound {
	if err == nil {
		err = fmt.Errorf("сервер не найден")
	}

	return &ErrServerNotFound{
		ID:  id,
		Err: err,
	}
}

// ErrInvalidStatus Кастомная ошибка, сообщающая о неизвестном статусе в фильтре.
type ErrInvalidStatus struct {
	Value string
}

func (is *ErrInvalidStatus) Error() string {
	return fmt.Sprintf("Неизвестный статус: `%s`", is.Value)
}

func NewErrInvalidStatus(value string) *ErrInvalidStatus {
	return &ErrInvalidStatus{
		Value: value,
	}
}
