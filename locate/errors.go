package locate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by every NotFoundError via errors.Is.
var ErrNotFound = errors.New("locate: artifact not found")

// NotFoundError reports a failed lookup together with what was tried.
type NotFoundError struct {
	Name    string
	Kind    Kind
	Tried   []string
	EnvVars []string
	URL     string
	Hint    string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "locate: could not find %s %q", e.Kind, e.Name)
	if e.Hint != "" {
		fmt.Fprintf(&b, " (%s)", e.Hint)
	}
	if len(e.Tried) > 0 {
		fmt.Fprintf(&b, "; tried %s", strings.Join(e.Tried, ", "))
	}
	if len(e.EnvVars) > 0 {
		vars := make([]string, len(e.EnvVars))
		for i, v := range e.EnvVars {
			vars[i] = "$" + v
		}
		fmt.Fprintf(&b, "; pass an explicit path or set %s", strings.Join(vars, " or "))
	}
	if e.URL != "" {
		fmt.Fprintf(&b, "; download from <%s>", e.URL)
	}
	return b.String()
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
