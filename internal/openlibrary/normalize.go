package openlibrary

import (
	"fmt"
	"strconv"
	"strings"

	"mediashelf-api/internal/media"
)

// Cover images live on a separate CDN addressed by numeric cover id;
// author photos are addressed by the author's olid.
const (
	coverURLBase  = "https://covers.openlibrary.org/b/id/"
	authorURLBase = "https://covers.openlibrary.org/a/olid/"
)

const maxSubjects = 10

func coverURL(coverID int64, size string) string {
	if coverID == 0 {
		return ""
	}
	return coverURLBase + strconv.FormatInt(coverID, 10) + "-" + size + ".jpg"
}

func authorPhotoURL(key string) string {
	// key is "/authors/OL23919A"; the olid is the last path segment.
	olid := key[strings.LastIndex(key, "/")+1:]
	if olid == "" {
		return ""
	}
	return authorURLBase + olid + "-M.jpg"
}

func normalizeAuthor(key string, resp authorResponse) media.Author {
	return media.Author{
		Name:     resp.Name,
		Bio:      string(resp.Bio),
		PhotoURL: authorPhotoURL(key),
	}
}

// firstPublishYear extracts the year from a date like "May 1, 1999".
func firstPublishYear(date string) string {
	fields := strings.Fields(date)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func normalizeBook(id string, work workResponse, authors []media.Author) (*media.BookDetail, error) {
	if work.Title == "" {
		return nil, fmt.Errorf("%w: payload missing title", media.ErrUpstreamUnavailable)
	}

	var cover int64
	if len(work.Covers) > 0 {
		cover = work.Covers[0]
	}

	subjects := work.Subjects
	if len(subjects) > maxSubjects {
		subjects = subjects[:maxSubjects]
	}

	return &media.BookDetail{
		ID:               id,
		Title:            work.Title,
		Description:      string(work.Description),
		CoverURL:         coverURL(cover, "L"),
		Authors:          authors,
		Subjects:         subjects,
		FirstPublishYear: firstPublishYear(work.FirstPublishDate),
		Revision:         work.Revision,
		MediaType:        media.TypeBook,
	}, nil
}

func normalizeTrendingBooks(resp trendingResponse) []media.TrendingBook {
	works := resp.Works
	if len(works) > 12 {
		works = works[:12]
	}

	out := make([]media.TrendingBook, 0, len(works))
	for _, w := range works {
		author := "Unknown"
		if len(w.AuthorName) > 0 {
			author = w.AuthorName[0]
		}

		out = append(out, media.TrendingBook{
			ID:               strings.TrimPrefix(w.Key, "/works/"),
			Title:            w.Title,
			Author:           author,
			CoverURL:         coverURL(w.CoverID, "M"),
			FirstPublishYear: w.FirstPublishYear,
		})
	}
	return out
}
