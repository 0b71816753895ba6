// package formatter provides functions to export song lists and boards to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/shared"
)

// SongListCSV converts a song list to CSV format with columns: #, Name, Artists, Album
func SongListCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"#", "Name", "Artists", "Album"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, song := range songs {
		record := []string{
			fmt.Sprintf("%d", i+1),
			song.Name,
			song.ArtistLine(),
			song.Album,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// SongListMarkdown converts a song list to a Markdown document.
func SongListMarkdown(title string, songs []models.Song) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(songs)))

	for i, song := range songs {
		albumPart := ""
		if song.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", song.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", i+1, song.ArtistLine(), song.Name, albumPart))
	}

	return buf.String()
}

// SongListText converts a song list to plain text, one song per line.
func SongListText(songs []models.Song) string {
	var buf bytes.Buffer

	for i, song := range songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.ArtistLine(), song.Name))
	}

	return buf.String()
}

// BoardMarkdown renders a board as an N×N Markdown table. Cells beyond the
// sampled songs are left blank.
func BoardMarkdown(board []models.Song, size models.BoardSize) string {
	n := int(size)
	var buf bytes.Buffer

	buf.WriteString("|")
	for col := 0; col < n; col++ {
		buf.WriteString("   |")
	}
	buf.WriteString("\n|")
	for col := 0; col < n; col++ {
		buf.WriteString("---|")
	}
	buf.WriteString("\n")

	for row := 0; row < n; row++ {
		buf.WriteString("|")
		for col := 0; col < n; col++ {
			index := row*n + col
			if index < len(board) {
				song := board[index]
				cell := fmt.Sprintf(" %s<br>*%s* ", escapePipes(song.Name), escapePipes(song.ArtistLine()))
				buf.WriteString(cell + "|")
			} else {
				buf.WriteString("   |")
			}
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

// BoardText renders a board as numbered rows for terminal display.
func BoardText(board []models.Song, size models.BoardSize) string {
	n := int(size)
	var buf bytes.Buffer

	for row := 0; row < n; row++ {
		cells := make([]string, 0, n)
		for col := 0; col < n; col++ {
			index := row*n + col
			if index < len(board) {
				cells = append(cells, fmt.Sprintf("%s - %s", board[index].ArtistLine(), board[index].Name))
			} else {
				cells = append(cells, "(empty)")
			}
		}
		buf.WriteString(fmt.Sprintf("Row %d: %s\n", row+1, strings.Join(cells, " | ")))
	}

	return buf.String()
}

// WriteSongList writes a playlist's derived song list to path in the given
// format ("csv", "markdown", "txt", or "json"). Returns the written path.
func WriteSongList(export *models.PlaylistExport, format, path string) (string, error) {
	songs := models.SongsFromTracks(export.Tracks)

	var data []byte
	var err error
	switch format {
	case "csv":
		data, err = SongListCSV(songs)
	case "markdown", "md":
		data = []byte(SongListMarkdown(export.Playlist.Name, songs))
	case "txt", "text":
		data = []byte(SongListText(songs))
	case "json", "":
		data, err = shared.MarshalJSON(songs, true)
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write song list: %w", err)
	}
	return path, nil
}

// WriteManifest writes a run summary as pretty-printed JSON.
func WriteManifest(v any, path string) error {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
