package media

// Static datasets served for the TMDB-backed trending lists when no API key
// is configured, so a fresh checkout still renders something. Never cached.

func FallbackTrendingMovies() []TrendingMovie {
	return []TrendingMovie{
		{ID: 1, Title: "The Batman", PosterURL: "/images/thebatman.jpg", ReleaseDate: "2022-03-01", VoteAverage: 7.8},
		{ID: 2, Title: "Spider-Man: Homecoming", PosterURL: "/images/spiderman_homecoming.jpg", ReleaseDate: "2017-07-05", VoteAverage: 7.4},
		{ID: 3, Title: "Aquaman and the Lost Kingdom", PosterURL: "/images/aquaman_lost_kingdom.jpg", ReleaseDate: "2023-12-20", VoteAverage: 6.5},
	}
}

func FallbackTrendingShows() []TrendingShow {
	return []TrendingShow{
		{ID: 1, Title: "Arcane", PosterURL: "/images/arcane.jpg", FirstAirDate: "2021-11-06", VoteAverage: 9.0},
	}
}
