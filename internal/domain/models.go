package domain

// Movie is one entry of an OMDb search result
type Movie struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// HasPoster reports whether the record carries a poster URL
func (m Movie) HasPoster() bool {
	return m.Poster != "" && m.Poster != NotAvailable
}

// MovieDetail is the full OMDb record of a single title
type MovieDetail struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Awards     string `json:"Awards"`
	Poster     string `json:"Poster"`
	Metascore  string `json:"Metascore"`
	IMDbRating string `json:"imdbRating"`
	IMDbVotes  string `json:"imdbVotes"`
	IMDbID     string `json:"imdbID"`
	BoxOffice  string `json:"BoxOffice"`
}

// NotAvailable is OMDb's placeholder for missing values
const NotAvailable = "N/A"

// Side identifies one of the two comparison panels
type Side int

const (
	Left Side = iota
	Right
)

// Sides lists both panels in display order
var Sides = [...]Side{Left, Right}

// Other returns the opposite side
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}
