package walk_test

import (
	"fmt"
	"testing"
	"time"

	"pawroute/models"
	"pawroute/services/walk"

	"github.com/stretchr/testify/require"
)

func crumb(id string) models.Breadcrumb {
	return models.Breadcrumb{ID: id, SessionID: "s1", CreatedAt: time.Now()}
}

func TestTrailSeedTruncates(t *testing.T) {
	trail := walk.NewTrail(10)

	var seed []models.Breadcrumb
	for i := 0; i < 25; i++ {
		seed = append(seed, crumb(fmt.Sprintf("c%d", i)))
	}
	trail.Seed(seed)

	require.Equal(t, 10, trail.Len())
	snap := trail.Snapshot()
	require.Equal(t, "c0", snap[0].ID, "seed order is preserved, extras dropped from the tail")
	require.Equal(t, "c9", snap[9].ID)
}

func TestTrailPushEvictsOldest(t *testing.T) {
	trail := walk.NewTrail(10)

	for i := 1; i <= 11; i++ {
		trail.Push(crumb(fmt.Sprintf("c%d", i)))
	}

	require.Equal(t, 10, trail.Len(), "the window never grows past capacity")
	snap := trail.Snapshot()
	require.Equal(t, "c11", snap[0].ID, "newest first")
	require.Equal(t, "c2", snap[9].ID, "the oldest entry was evicted")

	for _, c := range snap {
		require.NotEqual(t, "c1", c.ID)
	}
}

func TestTrailSnapshotIsACopy(t *testing.T) {
	trail := walk.NewTrail(3)
	trail.Push(crumb("a"))

	snap := trail.Snapshot()
	snap[0].ID = "mutated"

	require.Equal(t, "a", trail.Snapshot()[0].ID)
}

func TestTrailEmpty(t *testing.T) {
	trail := walk.NewTrail(5)
	require.Zero(t, trail.Len())
	require.Empty(t, trail.Snapshot())
	trail.Seed(nil)
	require.Zero(t, trail.Len())
}
