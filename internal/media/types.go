// Package media holds the canonical record types the rest of the service
// works with, independent of which upstream provider they came from, plus
// the catalog that assembles them.
package media

const (
	TypeMovie = "movie"
	TypeTV    = "tv"
	TypeBook  = "book"
)

// CastMember is one credited actor on a movie or show.
type CastMember struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
	// ProfileURL is fully qualified or empty; raw provider paths never
	// reach a canonical record.
	ProfileURL string `json:"profile_url,omitempty"`
}

// Author is one book author, enriched by a separate per-author fetch.
type Author struct {
	Name     string `json:"name"`
	Bio      string `json:"bio,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// TrendingMovie is the summary shape served on the trending movies list.
type TrendingMovie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterURL   string  `json:"poster_url,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	VoteAverage float64 `json:"vote_average,omitempty"`
	Overview    string  `json:"overview,omitempty"`
}

// TrendingShow is the summary shape served on the trending shows list.
type TrendingShow struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	PosterURL    string  `json:"poster_url,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	Overview     string  `json:"overview,omitempty"`
}

// TrendingBook is the summary shape served on the trending books list.
type TrendingBook struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Author           string `json:"author"`
	CoverURL         string `json:"cover_url,omitempty"`
	FirstPublishYear int    `json:"first_publish_year,omitempty"`
}

// MovieDetail is the canonical movie record.
type MovieDetail struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Overview    string       `json:"overview,omitempty"`
	PosterURL   string       `json:"poster_url,omitempty"`
	BackdropURL string       `json:"backdrop_url,omitempty"`
	ReleaseDate string       `json:"release_date,omitempty"`
	Runtime     int          `json:"runtime,omitempty"`
	VoteAverage float64      `json:"vote_average,omitempty"`
	VoteCount   int64        `json:"vote_count,omitempty"`
	Genres      []string     `json:"genres,omitempty"`
	Tagline     string       `json:"tagline,omitempty"`
	Status      string       `json:"status,omitempty"`
	Budget      int64        `json:"budget,omitempty"`
	Revenue     int64        `json:"revenue,omitempty"`
	Director    string       `json:"director,omitempty"`
	Cast        []CastMember `json:"cast,omitempty"`
	TrailerURL  string       `json:"trailer_url,omitempty"`
	MediaType   string       `json:"media_type"`
}

// TVDetail is the canonical TV show record.
type TVDetail struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Overview       string       `json:"overview,omitempty"`
	PosterURL      string       `json:"poster_url,omitempty"`
	BackdropURL    string       `json:"backdrop_url,omitempty"`
	FirstAirDate   string       `json:"first_air_date,omitempty"`
	LastAirDate    string       `json:"last_air_date,omitempty"`
	Seasons        int          `json:"number_of_seasons,omitempty"`
	Episodes       int          `json:"number_of_episodes,omitempty"`
	EpisodeRuntime int          `json:"episode_run_time,omitempty"`
	VoteAverage    float64      `json:"vote_average,omitempty"`
	VoteCount      int64        `json:"vote_count,omitempty"`
	Genres         []string     `json:"genres,omitempty"`
	Tagline        string       `json:"tagline,omitempty"`
	Status         string       `json:"status,omitempty"`
	Creators       []string     `json:"creators,omitempty"`
	Cast           []CastMember `json:"cast,omitempty"`
	TrailerURL     string       `json:"trailer_url,omitempty"`
	MediaType      string       `json:"media_type"`
}

// BookDetail is the canonical book record. Authors are best-effort: a
// failed author fetch drops that author, never the book.
type BookDetail struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	CoverURL         string   `json:"cover_url,omitempty"`
	Authors          []Author `json:"authors"`
	Subjects         []string `json:"subjects,omitempty"`
	FirstPublishYear string   `json:"first_publish_year,omitempty"`
	Revision         int      `json:"revision,omitempty"`
	MediaType        string   `json:"media_type"`
}
