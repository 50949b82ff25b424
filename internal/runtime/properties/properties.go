// Package properties applies late-bound, string-keyed options onto transport
// objects. Application is best-effort: keys that do not bind anywhere are
// ignored unless the caller marks the whole set as mandatory.
package properties

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// BindingError reports option keys that could not be applied in mandatory
// mode.
type BindingError struct {
	Unused []string
	cause  error
}

func (e *BindingError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("eventbind: mandatory transport options failed to bind: %v", e.cause)
	}
	return fmt.Sprintf("eventbind: mandatory transport options not bindable: %s", strings.Join(e.Unused, ", "))
}

func (e *BindingError) Unwrap() error { return e.cause }

// Apply decodes the option map onto the target, returning how many keys were
// bound. With mandatory=false, unknown or unbindable keys are skipped
// silently. With mandatory=true, any key that fails to bind aborts with a
// BindingError.
func Apply(target any, opts map[string]string, mandatory bool) (int, error) {
	if target == nil || len(opts) == 0 {
		return 0, nil
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		Metadata:         &md,
		WeaklyTypedInput: true,
	})
	if err != nil {
		if mandatory {
			return 0, &BindingError{cause: err}
		}
		return 0, nil
	}

	if err := dec.Decode(opts); err != nil {
		if mandatory {
			return 0, &BindingError{cause: err}
		}
		return 0, nil
	}

	if mandatory && len(md.Unused) > 0 {
		return len(md.Keys), &BindingError{Unused: md.Unused}
	}
	return len(md.Keys), nil
}
