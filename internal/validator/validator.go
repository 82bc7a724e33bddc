package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stemsi/marking-day/internal/model"
)

// trans is the singleton English translator for validation errors.
var (
	trans     ut.Translator
	setupOnce sync.Once
)

// customRule is a domain validation tag with its English message.
type customRule struct {
	tag     string
	message string
	fn      govalidator.Func
}

var customRules = []customRule{
	{
		tag:     "sortorder",
		message: "{0} must be ascending or descending",
		fn: func(fl govalidator.FieldLevel) bool {
			_, ok := model.ParseSortOrder(fl.Field().String())
			return ok
		},
	},
	{
		tag:     "decision",
		message: "{0} must be swap or dont_swap",
		fn: func(fl govalidator.FieldLevel) bool {
			d := model.Decision(fl.Field().String())
			return d == model.DecisionSwap || d == model.DecisionDontSwap
		},
	},
}

// Setup registers English translations and the domain tags on Gin's
// binding engine. Safe to call more than once.
func Setup() {
	setupOnce.Do(setup)
}

func setup() {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	for _, rule := range customRules {
		rule := rule
		_ = v.RegisterValidation(rule.tag, rule.fn)
		_ = v.RegisterTranslation(rule.tag, trans,
			func(t ut.Translator) error { return t.Add(rule.tag, rule.message, true) },
			func(t ut.Translator, fe govalidator.FieldError) string {
				msg, _ := t.T(rule.tag, fe.Field())
				return msg
			},
		)
	}
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans != nil {
				fields[fe.Field()] = fe.Translate(trans)
			} else {
				fields[fe.Field()] = fe.Error()
			}
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
