package refstring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var paramsValidate = validator.New(validator.WithRequiredStructEnabled())

var paramNames = map[string]string{
	"PageCount":  "no. of page",
	"FrameCount": "no. of page frame",
	"WindowSize": "window size",
	"Length":     "length of string",
}

var paramLimits = map[string]int{
	"PageCount":  MaxPageCount,
	"FrameCount": MaxFrameCount,
	"WindowSize": MaxWindowSize,
	"Length":     MaxLength,
}

// Validate checks that every parameter lies within its allowed range.
func (p Params) Validate() error {
	err := paramsValidate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf(
			"the range of %s: 0~%d, got %v",
			paramNames[fe.Field()], paramLimits[fe.Field()], fe.Value()))
	}

	return malformedf("%s", strings.Join(msgs, "; "))
}
