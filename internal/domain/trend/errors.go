package trend

import (
	"errors"
	"fmt"
)

// ErrFetchFailed means every configured category failed or the provider
// was unreachable. The cache treats it as a no-op: the prior snapshot
// stays in place.
var ErrFetchFailed = errors.New("fetch failed: no category returned posts")

// CategoryError reports a single category's upstream failure. It is
// recovered locally by the source adapter and only logged.
type CategoryError struct {
	Category string
	Err      error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("category %q fetch failed: %v", e.Category, e.Err)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}
