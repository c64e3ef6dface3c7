package spiderkit

import (
	"context"

	"github.com/SpiderKit/spiderkit-go/internal/rctx"
)

// Attempt returns the 1-based execution attempt for the task currently being
// run, so runners can behave differently on re-attempts (e.g. stop probing a
// flaky endpoint on the last try). It returns 1 when the context was not
// provided by a spider run.
func Attempt(ctx context.Context) int {
	st, ok := rctx.From(ctx)
	if !ok || st == nil || st.Attempt < 1 {
		return 1
	}
	return st.Attempt
}
