package services

import (
	"fmt"
	"time"

	"github.com/stwalsh4118/icyapa/internal/id"
	"github.com/stwalsh4118/icyapa/internal/logger"
	"github.com/stwalsh4118/icyapa/internal/repository"
	"github.com/stwalsh4118/icyapa/internal/seed"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// newSeededStore returns a store over the embedded dataset with a fixed
// clock and sequential ids.
func newSeededStore() *repository.DirectoryStore {
	clock := testNow
	return repository.NewDirectoryStore(seed.Default(),
		repository.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
		repository.WithIDGenerator(id.Sequence()),
	)
}

func testLogger() *logger.Logger {
	return logger.Nop()
}

// freshIDs yields prefix-new-1, prefix-new-2, ... which never collide with
// the seeded records.
func freshIDs() id.Generator {
	next := 0
	return func(prefix string) (string, error) {
		next++
		return fmt.Sprintf("%s-new-%d", prefix, next), nil
	}
}
