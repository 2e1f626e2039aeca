// Package dataset holds the seasonal listening table the chart is drawn from.
package dataset

// Season is one of the four listening seasons.
type Season string

const (
	Winter Season = "Winter"
	Spring Season = "Spring"
	Summer Season = "Summer"
	Fall   Season = "Fall"
)

const (
	// Name is the label of the hierarchy root.
	Name = "Music"
	// CenterLabel is drawn in the middle of the chart.
	CenterLabel = "2024"
)

// Seasons lists every known season in palette order.
var Seasons = []Season{Winter, Spring, Summer, Fall}

// ParseSeason matches a season name exactly.
func ParseSeason(name string) (Season, bool) {
	for _, s := range Seasons {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// Record is a single play count for a genre in a season.
type Record struct {
	Season Season `json:"season"`
	Genre  string `json:"genre"`
	Count  int64  `json:"count"`
}

// Records returns a copy of the listening table.
func Records() []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

var records = []Record{
	{Season: Fall, Genre: "Alternative", Count: 9718},
	{Season: Fall, Genre: "Classical", Count: 29795},
	{Season: Fall, Genre: "Electronic", Count: 44337},
	{Season: Fall, Genre: "Folk", Count: 25860},
	{Season: Fall, Genre: "Hip-Hop", Count: 70123},
	{Season: Fall, Genre: "Indie", Count: 69553},
	{Season: Fall, Genre: "Jazz", Count: 41067},
	{Season: Fall, Genre: "Metal", Count: 44243},
	{Season: Fall, Genre: "Pop", Count: 101944},
	{Season: Fall, Genre: "Rock", Count: 71564},
	{Season: Spring, Genre: "Alternative", Count: 10518},
	{Season: Spring, Genre: "Classical", Count: 25517},
	{Season: Spring, Genre: "Electronic", Count: 46490},
	{Season: Spring, Genre: "Folk", Count: 21383},
	{Season: Spring, Genre: "Hip-Hop", Count: 73076},
	{Season: Spring, Genre: "Indie", Count: 57478},
	{Season: Spring, Genre: "Jazz", Count: 38032},
	{Season: Spring, Genre: "Metal", Count: 45932},
	{Season: Spring, Genre: "Pop", Count: 105582},
	{Season: Spring, Genre: "Rock", Count: 77613},
	{Season: Summer, Genre: "Alternative", Count: 10951},
	{Season: Summer, Genre: "Classical", Count: 23132},
	{Season: Summer, Genre: "Electronic", Count: 68345},
	{Season: Summer, Genre: "Folk", Count: 21990},
	{Season: Summer, Genre: "Hip-Hop", Count: 91040},
	{Season: Summer, Genre: "Indie", Count: 60052},
	{Season: Summer, Genre: "Jazz", Count: 37460},
	{Season: Summer, Genre: "Metal", Count: 49640},
	{Season: Summer, Genre: "Pop", Count: 132843},
	{Season: Summer, Genre: "Rock", Count: 81025},
	{Season: Winter, Genre: "Alternative", Count: 9665},
	{Season: Winter, Genre: "Classical", Count: 32201},
	{Season: Winter, Genre: "Electronic", Count: 35035},
	{Season: Winter, Genre: "Folk", Count: 19722},
	{Season: Winter, Genre: "Hip-Hop", Count: 58307},
	{Season: Winter, Genre: "Indie", Count: 52473},
	{Season: Winter, Genre: "Jazz", Count: 44188},
	{Season: Winter, Genre: "Metal", Count: 44137},
	{Season: Winter, Genre: "Pop", Count: 85214},
	{Season: Winter, Genre: "Rock", Count: 71929},
}
