package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-measure/measure"
	"plan-measure/project"
)

func openStores(t *testing.T) map[string]Store {
	stores := map[string]Store{}
	for _, kind := range []string{"yaml", "sqlite"} {
		s, err := Open(kind, t.TempDir())
		require.NoError(t, err, kind)
		t.Cleanup(func() { s.Close() })
		stores[kind] = s
	}
	return stores
}

func sample(id string) *project.Snapshot {
	s := project.New(id)
	s.Image = "ground.png"
	s.Scale = 40
	s.Measurements = []measure.Measurement{
		{ID: "b", Name: "Kitchen", X: 10, Y: 10, Width: 200, Height: 40, AreaM2: 5},
		{ID: "a", Name: "Hall", X: 300, Y: 10, Width: 80, Height: 40, AreaM2: 2},
	}
	s.Suggestions = []measure.Suggestion{{ID: "s1", Label: "Bath", X: 5, Y: 5, Width: 40, Height: 40, Confidence: 0.8}}
	return s
}

func TestSaveLoadKeepsOrder(t *testing.T) {
	ctx := context.Background()
	for kind, s := range openStores(t) {
		t.Run(kind, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, sample("p1")))

			got, err := s.Load(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, "ground.png", got.Image)
			assert.Equal(t, 40.0, got.Scale)
			assert.Equal(t, sample("p1").Measurements, got.Measurements)
			assert.Equal(t, sample("p1").Suggestions, got.Suggestions)
			assert.False(t, got.UpdatedAt.IsZero())
		})
	}
}

func TestSaveReplacesWholeList(t *testing.T) {
	ctx := context.Background()
	for kind, s := range openStores(t) {
		t.Run(kind, func(t *testing.T) {
			snap := sample("p1")
			require.NoError(t, s.Save(ctx, snap))

			snap.Measurements = snap.Measurements[1:]
			snap.Suggestions = nil
			require.NoError(t, s.Save(ctx, snap))

			got, err := s.Load(ctx, "p1")
			require.NoError(t, err)
			require.Len(t, got.Measurements, 1)
			assert.Equal(t, "a", got.Measurements[0].ID)
			assert.Empty(t, got.Suggestions)
		})
	}
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	for kind, s := range openStores(t) {
		t.Run(kind, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, sample("zeta")))
			require.NoError(t, s.Save(ctx, sample("alpha")))

			ids, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"alpha", "zeta"}, ids)

			require.NoError(t, s.Delete(ctx, "zeta"))
			_, err = s.Load(ctx, "zeta")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, s.Delete(ctx, "zeta"), ErrNotFound)
		})
	}
}

func TestInvalidIDs(t *testing.T) {
	ctx := context.Background()
	for kind, s := range openStores(t) {
		t.Run(kind, func(t *testing.T) {
			_, err := s.Load(ctx, "../secret")
			assert.ErrorIs(t, err, ErrInvalidID)
			assert.ErrorIs(t, s.Save(ctx, project.New("")), ErrInvalidID)
		})
	}
}

func TestOpenUnknownKind(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	assert.Error(t, err)
}
