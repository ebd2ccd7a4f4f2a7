package tmdb

import (
	"fmt"

	"mediashelf-api/internal/media"
)

// Image CDN bases. TMDB returns relative paths like "/abc.jpg"; canonical
// records only ever carry fully qualified URLs, so the right size variant
// is prepended here and nowhere else.
const (
	posterImageBase   = "https://image.tmdb.org/t/p/w500"
	profileImageBase  = "https://image.tmdb.org/t/p/w185"
	backdropImageBase = "https://image.tmdb.org/t/p/original"

	trailerURLBase = "https://www.youtube.com/watch?v="
)

const (
	maxTrendingResults  = 12
	maxCastMembers      = 10
	trendingOverviewLen = 150
)

func imageURL(base, path string) string {
	if path == "" {
		return ""
	}
	return base + path
}

// truncateOverview shortens summary text for trending lists only; detail
// records keep the full text.
func truncateOverview(s string) string {
	runes := []rune(s)
	if len(runes) <= trendingOverviewLen {
		return s
	}
	return string(runes[:trendingOverviewLen])
}

func normalizeTrendingMovies(resp trendingMoviesResponse) []media.TrendingMovie {
	results := resp.Results
	if len(results) > maxTrendingResults {
		results = results[:maxTrendingResults]
	}

	out := make([]media.TrendingMovie, 0, len(results))
	for _, m := range results {
		out = append(out, media.TrendingMovie{
			ID:          m.ID,
			Title:       m.Title,
			PosterURL:   imageURL(posterImageBase, m.PosterPath),
			ReleaseDate: m.ReleaseDate,
			VoteAverage: m.VoteAverage,
			Overview:    truncateOverview(m.Overview),
		})
	}
	return out
}

func normalizeTrendingShows(resp trendingTVResponse) []media.TrendingShow {
	results := resp.Results
	if len(results) > maxTrendingResults {
		results = results[:maxTrendingResults]
	}

	out := make([]media.TrendingShow, 0, len(results))
	for _, s := range results {
		out = append(out, media.TrendingShow{
			ID:           s.ID,
			Title:        s.Name,
			PosterURL:    imageURL(posterImageBase, s.PosterPath),
			FirstAirDate: s.FirstAirDate,
			VoteAverage:  s.VoteAverage,
			Overview:     truncateOverview(s.Overview),
		})
	}
	return out
}

func normalizeCast(cast []castCredit) []media.CastMember {
	if len(cast) > maxCastMembers {
		cast = cast[:maxCastMembers]
	}

	out := make([]media.CastMember, 0, len(cast))
	for _, p := range cast {
		out = append(out, media.CastMember{
			ID:         p.ID,
			Name:       p.Name,
			Character:  p.Character,
			ProfileURL: imageURL(profileImageBase, p.ProfilePath),
		})
	}
	return out
}

// director is the first crew member whose job is exactly "Director";
// a plain first-match scan in upstream order, no "best" selection.
func director(crew []crewCredit) string {
	for _, p := range crew {
		if p.Job == "Director" {
			return p.Name
		}
	}
	return ""
}

// trailerURL is the first video that is a YouTube trailer, else empty.
func trailerURL(v videos) string {
	for _, vid := range v.Results {
		if vid.Type == "Trailer" && vid.Site == "YouTube" {
			return trailerURLBase + vid.Key
		}
	}
	return ""
}

func genreNames(genres []genre) []string {
	if len(genres) == 0 {
		return nil
	}
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		out = append(out, g.Name)
	}
	return out
}

func normalizeMovie(resp movieResponse) (*media.MovieDetail, error) {
	// id and title are the only mandatory fields; everything else degrades
	// to an absent value.
	if resp.ID == 0 || resp.Title == "" {
		return nil, fmt.Errorf("%w: payload missing id or title", media.ErrUpstreamUnavailable)
	}

	return &media.MovieDetail{
		ID:          resp.ID,
		Title:       resp.Title,
		Overview:    resp.Overview,
		PosterURL:   imageURL(posterImageBase, resp.PosterPath),
		BackdropURL: imageURL(backdropImageBase, resp.BackdropPath),
		ReleaseDate: resp.ReleaseDate,
		Runtime:     resp.Runtime,
		VoteAverage: resp.VoteAverage,
		VoteCount:   resp.VoteCount,
		Genres:      genreNames(resp.Genres),
		Tagline:     resp.Tagline,
		Status:      resp.Status,
		Budget:      resp.Budget,
		Revenue:     resp.Revenue,
		Director:    director(resp.Credits.Crew),
		Cast:        normalizeCast(resp.Credits.Cast),
		TrailerURL:  trailerURL(resp.Videos),
		MediaType:   media.TypeMovie,
	}, nil
}

func normalizeTV(resp tvResponse) (*media.TVDetail, error) {
	if resp.ID == 0 || resp.Name == "" {
		return nil, fmt.Errorf("%w: payload missing id or title", media.ErrUpstreamUnavailable)
	}

	creators := make([]string, 0, len(resp.CreatedBy))
	for _, c := range resp.CreatedBy {
		creators = append(creators, c.Name)
	}

	episodeRuntime := 0
	if len(resp.EpisodeRunTime) > 0 {
		episodeRuntime = resp.EpisodeRunTime[0]
	}

	return &media.TVDetail{
		ID:             resp.ID,
		Title:          resp.Name,
		Overview:       resp.Overview,
		PosterURL:      imageURL(posterImageBase, resp.PosterPath),
		BackdropURL:    imageURL(backdropImageBase, resp.BackdropPath),
		FirstAirDate:   resp.FirstAirDate,
		LastAirDate:    resp.LastAirDate,
		Seasons:        resp.Seasons,
		Episodes:       resp.Episodes,
		EpisodeRuntime: episodeRuntime,
		VoteAverage:    resp.VoteAverage,
		VoteCount:      resp.VoteCount,
		Genres:         genreNames(resp.Genres),
		Tagline:        resp.Tagline,
		Status:         resp.Status,
		Creators:       creators,
		Cast:           normalizeCast(resp.Credits.Cast),
		TrailerURL:     trailerURL(resp.Videos),
		MediaType:      media.TypeTV,
	}, nil
}
