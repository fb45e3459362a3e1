package validation

import (
	stderrors "errors"
	"os"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/vidscribe/errors"
)

// FieldError is one failing field, named by its config or json key.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	engineOnce sync.Once
	engine     *validator.Validate
	// ruleMessages holds the message of every rule added by RegisterRule.
	ruleMessages = map[string]string{}
)

func get() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		engine.RegisterTagNameFunc(keyName)
		register(engine, "notdir", "must not be a directory", func(path string) bool {
			info, err := os.Stat(path)
			return path == "" || err != nil || !info.IsDir()
		})
	})
	return engine
}

// RegisterRule adds a string rule usable as a validate tag. ok receives the
// field value. Call it from an init function, before any Validate.
func RegisterRule(tag, message string, ok func(string) bool) {
	register(get(), tag, message, ok)
}

func register(v *validator.Validate, tag, message string, ok func(string) bool) {
	ruleMessages[tag] = message
	// RegisterValidation only fails for an empty tag or a nil func.
	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	})
}

// Validate checks s against its validate tags. Every failing field is
// listed in the message and under the "fields" detail of the returned
// INVALID_INPUT error.
func Validate(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var failed validator.ValidationErrors
	if !stderrors.As(err, &failed) {
		return errors.Validation("validation failed").WithCause(err)
	}

	fields := make([]FieldError, len(failed))
	lines := make([]string, len(failed))
	for i, fe := range failed {
		fields[i] = FieldError{Field: trimRoot(fe.Namespace()), Message: message(fe)}
		lines[i] = fields[i].Field + ": " + fields[i].Message
	}
	return errors.Validation(strings.Join(lines, "; ")).WithDetail("fields", fields)
}

// keyName reports a field by its mapstructure key, then its json key,
// then its snake-cased Go name.
func keyName(f reflect.StructField) string {
	for _, tag := range []string{"mapstructure", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return toSnakeCase(f.Name)
}

// trimRoot turns "Config.deepgram.base_url" into "deepgram.base_url".
func trimRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(fe validator.FieldError) string {
	if msg, ok := ruleMessages[fe.Tag()]; ok {
		return msg
	}
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + unit
	case "max":
		return "must be at most " + fe.Param() + unit
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be " + fe.Param() + " or greater"
	case "lte":
		return "must be " + fe.Param() + " or less"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "is invalid"
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
