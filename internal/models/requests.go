package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/trsv-dev/dpim-portal/internal/utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// логин и пароль: латиница, цифры и разрешенные спецсимволы
	_ = v.RegisterValidation("alnumspecial", func(fl validator.FieldLevel) bool {
		return utils.IsAlphaNumericOrSpecial(fl.Field().String())
	})

	return v
}

// LoginRequest Модель тела запроса авторизации.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64,alnumspecial"`
	Password string `json:"password" validate:"required,min=5,max=128,alnumspecial"`
	Remember bool   `json:"remember"`
}

// Validate Валидация данных авторизации.
func (r LoginRequest) Validate() error {
	return validationError(validate.Struct(r))
}

// FilterRequest Модель тела запроса смены фильтра дашборда.
type FilterRequest struct {
	Status string `json:"status" validate:"max=32"`
}

// Validate Валидация запроса смены фильтра.
func (r FilterRequest) Validate() error {
	return validationError(validate.Struct(r))
}

// PageRequest Модель тела запроса смены страницы дашборда.
// Page - указатель: отсутствующее поле отличается от страницы 0.
type PageRequest struct {
	Page *int `json:"page" validate:"required"`
}

// Validate Валидация запроса смены страницы.
// Проверяется только наличие номера. Номер вне диапазона страниц (в том числе 0 и отрицательный)
// ошибкой не считается: такой переход просто игнорируется.
func (r PageRequest) Validate() error {
	return validationError(validate.Struct(r))
}

// MaxPageSize Наибольший размер страницы списка серверов (совпадает с тегом max у PageSize).
const MaxPageSize = 100

// ServerListQuery Параметры запроса списка серверов.
type ServerListQuery struct {
	Status   string `validate:"max=32"`
	Page     int    `validate:"min=1"`
	PageSize int    `validate:"min=1,max=100"`
}

// Validate Валидация параметров списка серверов.
func (q ServerListQuery) Validate() error {
	return validationError(validate.Struct(q))
}

// Преобразование ошибок валидатора в понятное сообщение.
func validationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fieldMessage(fe))
	}

	return errors.New(strings.Join(messages, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("необходимо указать поле %s", field)
	case "min":
		return fmt.Sprintf("поле %s: значение меньше допустимого (%s)", field, fe.Param())
	case "max":
		return fmt.Sprintf("поле %s: значение больше допустимого (%s)", field, fe.Param())
	case "alnumspecial":
		return fmt.Sprintf("недопустимые символы в поле %s", field)
	default:
		return fmt.Sprintf("поле %s не прошло проверку %s", field, fe.Tag())
	}
}
