package domain

import "sort"

// TopSongsLimit is the maximum number of songs returned for an artist.
const TopSongsLimit = 10

// Song is a single track in an artist's catalog as reported by the partner.
// Rank is the partner's popularity metric; higher is more popular.
type Song struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Rank     int    `json:"rank"`
	Duration int    `json:"duration,omitempty"`
	Album    string `json:"album,omitempty"`
	Link     string `json:"link,omitempty"`
	Preview  string `json:"preview,omitempty"`
}

// TopSongs returns at most limit songs ordered by rank descending. Songs with
// equal rank keep their upstream order. The input slice is not modified and
// the result is never nil.
func TopSongs(songs []Song, limit int) []Song {
	ranked := make([]Song, len(songs))
	copy(ranked, songs)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rank > ranked[j].Rank
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
