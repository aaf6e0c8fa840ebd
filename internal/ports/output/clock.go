package output

import "time"

// Clock is the only temporal input of the lifecycle engine.
type Clock interface {
	Now() time.Time
}
