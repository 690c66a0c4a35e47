package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stemsi/qbank-backend/internal/model"
)

// tagRequiredForMCQ is reported by the question struct rule.
const tagRequiredForMCQ = "required_for_mcq"

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// Setup registers custom rules and English translations on Gin's binding engine.
// Call once during application startup.
func Setup() {
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		if err := Register(v); err != nil {
			panic(err)
		}
	}
}

// Register installs the JSON field names, the notblank tag, the MCQ struct rule and
// their English messages on v.
func Register(v *govalidator.Validate) error {
	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return err
	}
	v.RegisterStructValidation(questionRequestRule, model.QuestionRequest{})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return err
	}

	if err := registerMessage(v, "notblank", "{0} must not be blank"); err != nil {
		return err
	}
	return registerMessage(v, tagRequiredForMCQ, "{0} is required for MCQ questions")
}

// questionRequestRule requires the four options and the correct option on MCQ payloads.
func questionRequestRule(sl govalidator.StructLevel) {
	req := sl.Current().Interface().(model.QuestionRequest)
	if model.QuestionType(req.QuestionType) != model.QuestionTypeMCQ {
		return
	}

	options := []struct {
		value, json, field string
	}{
		{req.OptionA, "option_a", "OptionA"},
		{req.OptionB, "option_b", "OptionB"},
		{req.OptionC, "option_c", "OptionC"},
		{req.OptionD, "option_d", "OptionD"},
		{req.CorrectOption, "correct_option", "CorrectOption"},
	}
	for _, o := range options {
		if strings.TrimSpace(o.value) == "" {
			sl.ReportError(o.value, o.json, o.field, tagRequiredForMCQ, "")
		}
	}
}

func registerMessage(v *govalidator.Validate, tag, text string) error {
	return v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe govalidator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field())
			return msg
		},
	)
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
