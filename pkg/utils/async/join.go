package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
)

// Join runs all tasks concurrently and waits for every one of them to
// finish before returning. Panics in a task are recovered and logged so a
// single bad task cannot take the serving process down with it. Results
// are reported through whatever the tasks capture; Join itself guarantees
// only that all of them completed.
func Join(ctx context.Context, tasks ...func(ctx context.Context)) {
	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					ctxlog.From(ctx).Error("Panic in async task",
						"recover", r,
						"stack", string(debug.Stack()),
					)
				}
			}()
			task(ctx)
		}()
	}
	wg.Wait()
}
