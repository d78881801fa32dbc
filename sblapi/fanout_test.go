package sblapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOut(t *testing.T) {
	t.Parallel()

	errPrimary := errors.New("primary down")
	errOptional := errors.New("stats down")

	t.Run("required failure fails the aggregate", func(t *testing.T) {
		t.Parallel()
		err := FanOut(context.Background(),
			Required("division", func(ctx context.Context) error { return errPrimary }),
			Optional("games", func(ctx context.Context) error { return nil }),
			Optional("stats", func(ctx context.Context) error { return nil }),
		)
		assert.ErrorIs(t, err, errPrimary)
	})

	t.Run("required failure returns before slow optional legs", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		var optionalFinished atomic.Bool
		start := time.Now()
		err := FanOut(context.Background(),
			Required("division", func(ctx context.Context) error { return errPrimary }),
			Optional("games", func(ctx context.Context) error {
				<-release
				optionalFinished.Store(true)
				return nil
			}),
		)
		assert.ErrorIs(t, err, errPrimary)
		assert.Less(t, time.Since(start), time.Second)
		assert.False(t, optionalFinished.Load())
		close(release)
	})

	t.Run("optional failure is tolerated", func(t *testing.T) {
		t.Parallel()
		var division string
		var games, stats []int
		err := FanOut(context.Background(),
			Required("division", func(ctx context.Context) error { division = "Gold"; return nil }),
			Optional("games", func(ctx context.Context) error { games = []int{1, 2}; return nil }),
			Optional("stats", func(ctx context.Context) error { return errOptional }),
		)
		require.NoError(t, err)
		assert.Equal(t, "Gold", division)
		assert.Len(t, games, 2)
		assert.Empty(t, stats)
	})

	t.Run("legs run concurrently", func(t *testing.T) {
		t.Parallel()
		start := time.Now()
		sleep := func(ctx context.Context) error { time.Sleep(100 * time.Millisecond); return nil }
		require.NoError(t, FanOut(context.Background(),
			Required("a", sleep), Optional("b", sleep), Optional("c", sleep)))
		assert.Less(t, time.Since(start), 250*time.Millisecond)
	})
}

func TestFanOut_DivisionEndpoints(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/division":
			writeJSON(w, http.StatusOK, map[string]any{"id": 9, "name": "Gold", "teams": []any{}})
		case "/games":
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
		case "/teamStats":
			writeJSON(w, http.StatusOK, []map[string]any{{"team_id": 1, "team_name": "Lions", "points": 9}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	c := NewClient(ClientConfig{BaseURL: server.URL, HTTPClient: server.Client()})
	ctx := context.Background()

	var division Division
	var games []Game
	var stats []TeamStanding
	err := FanOut(ctx,
		Required("division", Into(&division, func(ctx context.Context) (*Response[Division], error) { return c.Division(ctx, 9) })),
		Optional("games", Into(&games, func(ctx context.Context) (*Response[[]Game], error) { return c.DivisionGames(ctx, 9) })),
		Optional("stats", Into(&stats, func(ctx context.Context) (*Response[[]TeamStanding], error) { return c.DivisionStandings(ctx, 9) })),
	)
	require.NoError(t, err)
	assert.Equal(t, "Gold", division.DisplayName())
	assert.Empty(t, games)
	require.Len(t, stats, 1)
	assert.Equal(t, "Lions", stats[0].DisplayName())
}

func TestFanOut_OptionalTimeoutDoesNotCancelSiblings(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/games" {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
		writeJSON(w, http.StatusOK, map[string]any{"id": 1})
	}))
	t.Cleanup(server.Close)
	c := NewClient(ClientConfig{BaseURL: server.URL, HTTPClient: server.Client(), Timeout: 100 * time.Millisecond})

	var division Division
	var games []Game
	err := FanOut(context.Background(),
		Required("division", Into(&division, func(ctx context.Context) (*Response[Division], error) { return c.Division(ctx, 1) })),
		Optional("games", Into(&games, func(ctx context.Context) (*Response[[]Game], error) { return c.DivisionGames(ctx, 1) })),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, division.ID)
	assert.Empty(t, games)
}
