// Package pdf renders printable bingo boards.
//
// Each call lays out one A4 portrait page per board: a title band, then the
// largest square grid that fits the remaining content area, with song names
// and artists word-wrapped and centered in each cell. Boards are sampled
// independently from the full song list, so a multi-board document gives every
// player a different card.
//
// The document is built fully in memory; nothing is written to disk unless
// rendering succeeds, so a failed generation never leaves a partial file.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/desertthunder/bingo/internal/game"
	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/shared"
)

// A4 portrait dimensions in points.
const (
	pageWidth  = 595.28
	pageHeight = 841.89

	margin      = 40.0
	titleHeight = 40.0
	titleGap    = 20.0

	// horizontal padding inside a cell when wrapping text
	cellPadding = 10.0
	// vertical gap between the song name block and the artist block
	nameArtistGap = 5.0
)

// Options describes one print job.
//
// NumberOfBoards is assumed to be validated by the caller (an integer in
// [1, 100]); the engine renders whatever count it is given.
type Options struct {
	Songs          []models.Song
	BoardSize      models.BoardSize
	NumberOfBoards int
	PlaylistName   string
}

// Filename derives a filesystem-safe output name from the playlist name.
func Filename(playlistName string) string {
	return shared.SanitizeFilename(playlistName) + "_bingo_boards.pdf"
}

// Render builds the document and returns the PDF bytes.
//
// Each page holds one independently sampled board. Any error from the
// underlying renderer aborts the whole document.
func Render(opts Options) ([]byte, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetTitle(opts.PlaylistName+" bingo boards", true)
	doc.SetAutoPageBreak(false, 0)

	for i := 0; i < opts.NumberOfBoards; i++ {
		doc.AddPage()
		board := game.SampleBoard(opts.Songs, opts.BoardSize)
		drawBoard(doc, opts, board, i+1)
	}

	if doc.Err() {
		return nil, fmt.Errorf("%w: %v", shared.ErrPDFGeneration, doc.Error())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrPDFGeneration, err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the document and saves it under dir, returning the path.
func WriteFile(opts Options, dir string) (string, error) {
	data, err := Render(opts)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, Filename(opts.PlaylistName))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}
	return path, nil
}

// drawBoard lays out a single board page: centered title, then the grid.
func drawBoard(doc *fpdf.Fpdf, opts Options, board []models.Song, boardNumber int) {
	size := int(opts.BoardSize)

	contentWidth := pageWidth - 2*margin
	contentHeight := pageHeight - 2*margin
	availableHeight := contentHeight - titleHeight - titleGap

	gridSize := contentWidth
	if availableHeight < gridSize {
		gridSize = availableHeight
	}
	cellSize := gridSize / float64(size)

	startX := margin + (contentWidth-gridSize)/2
	startY := margin + titleHeight + titleGap

	title := fmt.Sprintf("%s - Board %d", opts.PlaylistName, boardNumber)
	doc.SetFont("Helvetica", "B", 16)
	doc.Text(pageWidth/2-doc.GetStringWidth(title)/2, margin+20, title)

	doc.SetLineWidth(1)
	doc.SetDrawColor(0, 0, 0)

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			x := startX + float64(col)*cellSize
			y := startY + float64(row)*cellSize
			doc.Rect(x, y, cellSize, cellSize, "D")

			index := row*size + col
			if index < len(board) {
				drawCell(doc, board[index], opts.BoardSize, x, y, cellSize)
			}
		}
	}
}

// drawCell renders the song name over the artist line, word-wrapped and
// vertically centered as a block. Font sizes shrink with the board size but
// never below a readable floor.
func drawCell(doc *fpdf.Fpdf, song models.Song, size models.BoardSize, x, y, cellSize float64) {
	nameSize := fontFloor(12-float64(size), 8)
	artistSize := fontFloor(9-float64(size), 6)
	nameLine := 12 - float64(size)
	artistLine := 9 - float64(size)

	wrapWidth := cellSize - cellPadding
	centerX := x + cellSize/2
	centerY := y + cellSize/2

	doc.SetFont("Helvetica", "B", nameSize)
	nameLines := doc.SplitText(song.Name, wrapWidth)
	nameHeight := float64(len(nameLines)) * nameLine

	doc.SetFont("Helvetica", "", artistSize)
	artistLines := doc.SplitText(song.ArtistLine(), wrapWidth)
	artistHeight := float64(len(artistLines)) * artistLine

	totalHeight := nameHeight + artistHeight + nameArtistGap
	textY := centerY - totalHeight/2

	doc.SetFont("Helvetica", "B", nameSize)
	for i, line := range nameLines {
		baseline := textY + float64(i)*nameLine
		doc.Text(centerX-doc.GetStringWidth(line)/2, baseline, line)
	}

	doc.SetFont("Helvetica", "", artistSize)
	for i, line := range artistLines {
		baseline := textY + nameHeight + nameArtistGap + float64(i)*artistLine
		doc.Text(centerX-doc.GetStringWidth(line)/2, baseline, line)
	}
}

func fontFloor(size, floor float64) float64 {
	if size < floor {
		return floor
	}
	return size
}
