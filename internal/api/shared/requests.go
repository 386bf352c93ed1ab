package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/phrazzld/taskops-api/internal/domain"
)

// Validate is the shared validator instance. Field names in its errors are
// the JSON names of the fields, and the "task_status" tag accepts any
// known domain.TaskStatus name (case-insensitive).
var Validate, translator = newValidator()

func newValidator() (*validator.Validate, ut.Translator) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")

	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		// ALLOW-PANIC: static registration, fails only on programmer error
		panic(fmt.Sprintf("failed to register validation translations: %v", err))
	}
	if err := v.RegisterValidation("task_status", isTaskStatus); err != nil {
		// ALLOW-PANIC: static registration, fails only on programmer error
		panic(fmt.Sprintf("failed to register task_status validation: %v", err))
	}
	if err := v.RegisterTranslation("task_status", trans, registerTaskStatusMessage, translateTaskStatus); err != nil {
		// ALLOW-PANIC: static registration, fails only on programmer error
		panic(fmt.Sprintf("failed to register task_status translation: %v", err))
	}

	return v, trans
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
// A failed validation is returned as a *domain.ValidationError with one
// English message per invalid field.
func ValidateRequest(v interface{}) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fe.Translate(translator))
	}
	return domain.NewValidationError(messages...)
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func isTaskStatus(fl validator.FieldLevel) bool {
	_, err := domain.ParseTaskStatus(fl.Field().String())
	return err == nil
}

func registerTaskStatusMessage(trans ut.Translator) error {
	return trans.Add("task_status", "{0} must be one of {1}", true)
}

func translateTaskStatus(trans ut.Translator, fe validator.FieldError) string {
	names := make([]string, 0, len(domain.TaskStatuses()))
	for _, s := range domain.TaskStatuses() {
		names = append(names, s.String())
	}

	msg, err := trans.T("task_status", fe.Field(), strings.Join(names, ", "))
	if err != nil {
		return fe.Error()
	}
	return msg
}
