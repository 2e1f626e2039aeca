package types

import "github.com/icco/sunburst/lib/hierarchy"

// StatsData represents statistics about the listening table.
type StatsData struct {
	TotalPlays   int64             `json:"total_plays"`
	TotalRecords int64             `json:"total_records"`
	Seasons      []hierarchy.Total `json:"seasons"`
	Genres       []hierarchy.Total `json:"genres"`
	TopGenre     *hierarchy.Total  `json:"top_genre,omitempty"`
}
