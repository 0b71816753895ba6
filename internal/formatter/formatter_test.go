package formatter

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/shared"
)

func sampleSongs() []models.Song {
	return []models.Song{
		{Name: "Under Pressure", Artists: []string{"Queen", "David Bowie"}, Album: "Hot Space"},
		{Name: "Roam", Artists: []string{"The B-52s"}, Album: "Cosmic Thing"},
		{Name: "Africa", Artists: []string{"Toto"}, Album: "Toto IV"},
	}
}

func TestSongListCSV(t *testing.T) {
	data, err := SongListCSV(sampleSongs())
	if err != nil {
		t.Fatalf("SongListCSV failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	if records[0][1] != "Name" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][2] != "Queen, David Bowie" {
		t.Errorf("multi-artist line mangled: %q", records[1][2])
	}
}

func TestSongListMarkdown(t *testing.T) {
	md := SongListMarkdown("Road Trip", sampleSongs())

	if !strings.HasPrefix(md, "# Road Trip\n") {
		t.Error("missing title heading")
	}
	if !strings.Contains(md, "**Songs**: 3") {
		t.Error("missing song count")
	}
	if !strings.Contains(md, "1. Queen, David Bowie - Under Pressure (Hot Space)") {
		t.Errorf("unexpected list entry:\n%s", md)
	}
}

func TestSongListText(t *testing.T) {
	text := SongListText(sampleSongs())

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[2] != "3. Toto - Africa" {
		t.Errorf("unexpected last line: %q", lines[2])
	}
}

func TestBoardMarkdown(t *testing.T) {
	board := sampleSongs()
	md := BoardMarkdown(board, 2)

	lines := strings.Split(strings.TrimRight(md, "\n"), "\n")
	// header, separator, 2 rows
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), md)
	}
	if !strings.Contains(lines[2], "Under Pressure") {
		t.Errorf("first row missing first song:\n%s", md)
	}
	// 3 songs on a 2x2 board leaves one blank cell
	if !strings.Contains(lines[3], "   |") {
		t.Errorf("expected a blank cell in the last row:\n%s", md)
	}
}

func TestBoardMarkdownEscapesPipes(t *testing.T) {
	board := []models.Song{{Name: "A|B", Artists: []string{"X"}}}
	md := BoardMarkdown(board, 2)

	if !strings.Contains(md, `A\|B`) {
		t.Errorf("pipe not escaped:\n%s", md)
	}
}

func TestBoardText(t *testing.T) {
	text := BoardText(sampleSongs(), 2)

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Row 1: ") {
		t.Errorf("unexpected row prefix: %q", lines[0])
	}
	if !strings.Contains(lines[1], "(empty)") {
		t.Errorf("expected an empty marker in the short row: %q", lines[1])
	}
}

func TestWriteSongList(t *testing.T) {
	export := &models.PlaylistExport{
		Playlist: models.Playlist{ID: "p1", Name: "Mix"},
		Tracks: []models.Track{
			{Name: "One", Type: "track", Artists: []string{"A"}, Album: "Alpha"},
			{Name: "Skipped", Type: "episode"},
		},
	}

	t.Run("each format writes a file", func(t *testing.T) {
		dir := t.TempDir()
		for _, format := range []string{"csv", "markdown", "txt", "json"} {
			path := filepath.Join(dir, "songs."+format)
			written, err := WriteSongList(export, format, path)
			if err != nil {
				t.Fatalf("format %q failed: %v", format, err)
			}
			data, err := os.ReadFile(written)
			if err != nil {
				t.Fatalf("format %q: %v", format, err)
			}
			if !strings.Contains(string(data), "One") {
				t.Errorf("format %q missing song name", format)
			}
			if strings.Contains(string(data), "Skipped") {
				t.Errorf("format %q should not include non-track entries", format)
			}
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := WriteSongList(export, "xml", filepath.Join(t.TempDir(), "songs.xml"))
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := WriteManifest(map[string]int{"total": 3}, path); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
	if !strings.Contains(string(data), `"total": 3`) {
		t.Errorf("unexpected manifest content: %s", data)
	}
}
