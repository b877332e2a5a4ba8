package errs

import "fmt"

// ErrWrongLoginOrPassword Кастомная ошибка, сообщающая о неверной паре логин/пароль.
type ErrWrongLoginOrPassword struct {
	Err error
}

func (wl *ErrWrongLoginOrPassword) Error() string {
	return fmt.Sprintf("Неверная пара логин/пароль. Ошибка: %v", wl.Err)
}

func (wl *ErrWrongLoginOrPassword) Unwrap() error {
	return wl.Err
}

func NewErrWrongLoginOrPassword(err error) *ErrWrongLoginOrPassword {
	return &ErrWrongLoginOrPassword{
		Err: err,
	}
}

// ErrLoginNotFound Кастомная ошибка, сообщающая о том, что логин не был найден.
type ErrLoginNotFound struct {
	Login string
	Err   error
}

func (nf *ErrLoginNotFound) Error() string {
	return fmt.Sprintf("Логин `%s` не найден. Ошибка: %v", nf.Login, nf.Err)
}

func (nf *ErrLoginNotFound) Unwrap() error {
	return nf.Err
}

func NewErrLoginNotFound(login string, err error) *ErrLoginNotFound {
	return &ErrLoginNotFound{
		Login: login,
		Err:   err,
	}
}
