package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/bingo/internal/game"
	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/shared"
	tu "github.com/desertthunder/bingo/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			spotify := &tu.MockService{}
			store := game.NewStore(&tu.MemoryStorage{}, logger)

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Spotify: spotify,
				Store:   store,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.spotify != spotify {
				t.Error("expected spotify to be set")
			}
			if runner.store != store {
				t.Error("expected store to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("writePlainln wraps text in newlines", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlainln("done")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "\ndone\n" {
				t.Errorf("expected wrapped text, got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 8 {
			t.Errorf("expected 8 commands, got %d", len(commands))
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("gameStore", func(t *testing.T) {
		t.Run("returns injected store", func(t *testing.T) {
			logger := shared.NewLogger(nil)
			store := game.NewStore(&tu.MemoryStorage{}, logger)
			runner := NewRunner(RunnerOpts{Store: store})

			got, err := runner.gameStore()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != store {
				t.Error("expected injected store to be returned")
			}
		})

		t.Run("opens database on first use", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Database.Path = ":memory:"
			runner := NewRunner(RunnerOpts{Config: config})

			store, err := runner.gameStore()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if store == nil {
				t.Fatal("expected a store")
			}
			if runner.db == nil {
				t.Error("expected database to be opened")
			}
			if runner.cache == nil {
				t.Error("expected playlist cache to be initialized")
			}
			defer runner.db.Close()

			store.GenerateBoard("p1", tu.SongList(16), models.DefaultBoardSize)
			if len(store.GetCurrentBoard("p1")) != 16 {
				t.Error("expected store to be usable")
			}
		})
	})

	t.Run("engine", func(t *testing.T) {
		t.Run("fails without a service", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if _, err := runner.engine(); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})

	t.Run("fetchExport", func(t *testing.T) {
		export := &models.PlaylistExport{
			Playlist: models.Playlist{ID: "p1", Name: "Road Trip", TrackCount: 2},
			Tracks: []models.Track{
				{ID: "t1", Name: "One", Type: "track", Artists: []string{"A"}, Album: "X"},
				{ID: "t2", Name: "Two", Type: "track", Artists: []string{"B"}, Album: "Y"},
			},
		}

		t.Run("fails without a service", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if _, err := runner.fetchExport(context.Background(), "p1"); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})

		t.Run("caches the export after the first fetch", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Database.Path = ":memory:"
			svc := &tu.MockService{Exports: map[string]*models.PlaylistExport{"p1": export}}
			runner := NewRunner(RunnerOpts{Config: config, Spotify: svc})

			if _, err := runner.openDB(); err != nil {
				t.Fatalf("failed to open database: %v", err)
			}
			defer runner.db.Close()

			first, err := runner.fetchExport(context.Background(), "p1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if first.Playlist.Name != "Road Trip" {
				t.Errorf("unexpected playlist name %q", first.Playlist.Name)
			}

			// the catalog is now unreachable, so a hit proves the cache served it
			svc.Err = errors.New("catalog down")

			second, err := runner.fetchExport(context.Background(), "p1")
			if err != nil {
				t.Fatalf("expected cached export, got %v", err)
			}
			if len(second.Tracks) != 2 {
				t.Errorf("expected 2 cached tracks, got %d", len(second.Tracks))
			}
		})
	})

	t.Run("markChecked", func(t *testing.T) {
		logger := shared.NewLogger(nil)
		store := game.NewStore(&tu.MemoryStorage{}, logger)
		runner := NewRunner(RunnerOpts{Store: store})

		songs := tu.SongList(4)
		store.GenerateBoard("p1", songs, models.MinBoardSize)
		store.ToggleSongCheck("p1", models.SongID(songs[0], 0))

		board := store.GetCurrentBoard("p1")
		marked := runner.markChecked(store, "p1", board, songs)

		checked := 0
		for _, cell := range marked {
			if strings.HasPrefix(cell.Name, "✓ ") {
				checked++
			}
		}
		if checked != 1 {
			t.Errorf("expected exactly one checked cell, got %d", checked)
		}
	})

	t.Run("markChecked with duplicate songs", func(t *testing.T) {
		logger := shared.NewLogger(nil)
		store := game.NewStore(&tu.MemoryStorage{}, logger)
		runner := NewRunner(RunnerOpts{Store: store})

		songs := tu.SongList(4)
		songs[3] = songs[1]
		store.GenerateBoard("p1", songs, models.MinBoardSize)
		store.ToggleSongCheck("p1", models.SongID(songs[3], 3))

		board := store.GetCurrentBoard("p1")
		marked := runner.markChecked(store, "p1", board, songs)

		checked := 0
		for _, cell := range marked {
			if strings.HasPrefix(cell.Name, "✓ ") {
				checked++
			}
		}
		if checked != 1 {
			t.Errorf("expected the checked duplicate to mark one cell, got %d", checked)
		}
	})
}
