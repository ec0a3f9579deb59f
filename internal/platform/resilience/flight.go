package resilience

import (
	"fmt"

	"golang.org/x/sync/singleflight"
)

// Flight collapses concurrent calls for the same key into one execution.
// The zero value is ready to use.
type Flight[T any] struct {
	group singleflight.Group
}

// Do runs fn once per key at a time. shared reports whether the result was
// handed to more than one caller. A panic in fn comes back as an error.
func (g *Flight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	v, err, shared := g.group.Do(key, func() (result any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("flight %q panicked: %v", key, r)
			}
		}()
		return fn()
	})
	val, _ := v.(T)
	return val, err, shared
}

// Forget drops an in-flight key so the next Do starts a fresh call.
func (g *Flight[T]) Forget(key string) {
	g.group.Forget(key)
}
