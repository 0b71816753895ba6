package game

import (
	"testing"

	"github.com/desertthunder/bingo/internal/models"
	th "github.com/desertthunder/bingo/internal/testing"
)

func TestSample(t *testing.T) {
	t.Run("draws exactly count distinct songs", func(t *testing.T) {
		songs := th.SongList(30)

		got := Sample(songs, 16)
		if len(got) != 16 {
			t.Fatalf("expected 16 songs, got %d", len(got))
		}

		seen := map[string]bool{}
		for _, s := range got {
			if seen[s.Name] {
				t.Errorf("duplicate song in sample: %s", s.Name)
			}
			seen[s.Name] = true
		}

		source := map[string]bool{}
		for _, s := range songs {
			source[s.Name] = true
		}
		for _, s := range got {
			if !source[s.Name] {
				t.Errorf("sampled song not in input: %s", s.Name)
			}
		}
	})

	t.Run("short input returns whole list shuffled", func(t *testing.T) {
		songs := th.SongList(5)

		got := Sample(songs, 16)
		if len(got) != 5 {
			t.Fatalf("expected all 5 songs, got %d", len(got))
		}

		seen := map[string]bool{}
		for _, s := range got {
			if seen[s.Name] {
				t.Errorf("duplicate song: %s", s.Name)
			}
			seen[s.Name] = true
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := Sample(nil, 9); len(got) != 0 {
			t.Errorf("expected empty result, got %d songs", len(got))
		}
	})

	t.Run("degenerate count", func(t *testing.T) {
		songs := th.SongList(10)
		if got := Sample(songs, 0); len(got) != 0 {
			t.Errorf("count 0 should yield empty result, got %d", len(got))
		}
		if got := Sample(songs, -3); len(got) != 0 {
			t.Errorf("negative count should yield empty result, got %d", len(got))
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		songs := th.SongList(20)
		first := songs[0].Name
		last := songs[19].Name

		for i := 0; i < 50; i++ {
			Sample(songs, 9)
		}

		if songs[0].Name != first || songs[19].Name != last {
			t.Error("Sample mutated its input")
		}
	})

	t.Run("shuffle reaches every position", func(t *testing.T) {
		// With 100 draws of 1 from 10 songs, every index should appear at
		// least once; a sort-biased shuffle would skew this heavily.
		songs := th.SongList(10)
		hits := map[string]int{}
		for i := 0; i < 1000; i++ {
			got := Sample(songs, 1)
			hits[got[0].Name]++
		}
		for _, s := range songs {
			if hits[s.Name] == 0 {
				t.Errorf("song %s never sampled across 1000 draws", s.Name)
			}
		}
	})
}

func TestSampleIndices(t *testing.T) {
	t.Run("draws distinct positions in range", func(t *testing.T) {
		got := SampleIndices(20, 9)
		if len(got) != 9 {
			t.Fatalf("expected 9 indices, got %d", len(got))
		}

		seen := map[int]bool{}
		for _, idx := range got {
			if idx < 0 || idx >= 20 {
				t.Errorf("index %d out of range", idx)
			}
			if seen[idx] {
				t.Errorf("index %d drawn twice", idx)
			}
			seen[idx] = true
		}
	})

	t.Run("short range returns every position", func(t *testing.T) {
		got := SampleIndices(3, 9)
		if len(got) != 3 {
			t.Fatalf("expected 3 indices, got %d", len(got))
		}
	})

	t.Run("degenerate arguments", func(t *testing.T) {
		if got := SampleIndices(0, 9); len(got) != 0 {
			t.Errorf("empty range should yield no indices, got %d", len(got))
		}
		if got := SampleIndices(10, 0); len(got) != 0 {
			t.Errorf("count 0 should yield no indices, got %d", len(got))
		}
	})
}

func TestSampleBoard(t *testing.T) {
	songs := th.SongList(30)

	for _, size := range []models.BoardSize{2, 3, 4, 5} {
		got := SampleBoard(songs, size)
		if len(got) != size.Cells() {
			t.Errorf("size %d: expected %d songs, got %d", size, size.Cells(), len(got))
		}
	}
}
