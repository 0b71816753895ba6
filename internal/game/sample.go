package game

import (
	"math/rand/v2"

	"github.com/desertthunder/bingo/internal/models"
)

// SampleIndices returns up to count positions in [0, n) drawn uniformly at
// random without replacement, in random order.
//
// If fewer than count positions exist they are all returned shuffled;
// count <= 0 yields an empty slice. Each call draws independently from the
// shared process RNG, so repeated calls produce unrelated selections.
func SampleIndices(n, count int) []int {
	if count <= 0 || n <= 0 {
		return []int{}
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rand.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	if count > len(indices) {
		count = len(indices)
	}
	return indices[:count]
}

// Sample returns up to count songs drawn uniformly at random from songs,
// without replacement and in random order. The input is never mutated.
func Sample(songs []models.Song, count int) []models.Song {
	indices := SampleIndices(len(songs), count)
	sampled := make([]models.Song, len(indices))
	for i, idx := range indices {
		sampled[i] = songs[idx]
	}
	return sampled
}

// SampleBoard samples the size² songs a full board requires.
func SampleBoard(songs []models.Song, size models.BoardSize) []models.Song {
	return Sample(songs, size.Cells())
}
