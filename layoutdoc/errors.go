package layoutdoc

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gogpu/compose"
)

// FieldError reports an invalid document field. It wraps
// compose.ErrInvalidConfiguration.
type FieldError struct {
	Field string // e.g. "root.children[1].style.size"
	Msg   string
	Err   error
}

func (e *FieldError) Error() string {
	return "layoutdoc: " + e.Field + ": " + e.Msg
}

func (e *FieldError) Unwrap() []error {
	if e.Err == nil {
		return []error{compose.ErrInvalidConfiguration}
	}
	return []error{compose.ErrInvalidConfiguration, e.Err}
}

func fieldErrorf(field, format string, args ...any) error {
	return &FieldError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// convertValidationError turns the first validator failure into a
// FieldError named after the YAML path.
func convertValidationError(err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		fe := ves[0]
		msg := fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed validation for tag '%s=%s'", fe.Tag(), fe.Param())
		}
		return &FieldError{Field: yamlishFieldName(fe), Msg: msg, Err: err}
	}
	return &FieldError{Field: "document", Msg: err.Error(), Err: err}
}

// yamlishFieldName drops the root struct name from the namespace. The
// validator is configured to report YAML tag names.
func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
