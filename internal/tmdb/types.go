package tmdb

// Response shapes as TMDB returns them. Decoded once at the fetch boundary,
// then mapped field-by-field into canonical records; nothing downstream
// touches these.

type trendingMovieResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

type trendingMoviesResponse struct {
	Results []trendingMovieResult `json:"results"`
}

type trendingTVResult struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	PosterPath   string  `json:"poster_path"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	Overview     string  `json:"overview"`
}

type trendingTVResponse struct {
	Results []trendingTVResult `json:"results"`
}

type genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type castCredit struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type crewCredit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

type credits struct {
	Cast []castCredit `json:"cast"`
	Crew []crewCredit `json:"crew"`
}

type video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type videos struct {
	Results []video `json:"results"`
}

type creator struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type movieResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	Runtime      int     `json:"runtime"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
	Genres       []genre `json:"genres"`
	Tagline      string  `json:"tagline"`
	Status       string  `json:"status"`
	Budget       int64   `json:"budget"`
	Revenue      int64   `json:"revenue"`
	Credits      credits `json:"credits"`
	Videos       videos  `json:"videos"`
}

type tvResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Overview       string    `json:"overview"`
	PosterPath     string    `json:"poster_path"`
	BackdropPath   string    `json:"backdrop_path"`
	FirstAirDate   string    `json:"first_air_date"`
	LastAirDate    string    `json:"last_air_date"`
	Seasons        int       `json:"number_of_seasons"`
	Episodes       int       `json:"number_of_episodes"`
	EpisodeRunTime []int     `json:"episode_run_time"`
	VoteAverage    float64   `json:"vote_average"`
	VoteCount      int64     `json:"vote_count"`
	Genres         []genre   `json:"genres"`
	Tagline        string    `json:"tagline"`
	Status         string    `json:"status"`
	CreatedBy      []creator `json:"created_by"`
	Credits        credits   `json:"credits"`
	Videos         videos    `json:"videos"`
}
