package openlibrary

import "encoding/json"

// Open Library serves some text fields either as a plain string or as a
// {"type": ..., "value": ...} object. flexText absorbs both at the decode
// boundary so normalization only ever sees a string.
type flexText string

func (t *flexText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = flexText(s)
		return nil
	}

	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = flexText(obj.Value)
	return nil
}

type authorRef struct {
	Author struct {
		Key string `json:"key"` // "/authors/OL23919A"
	} `json:"author"`
}

type workResponse struct {
	Title            string      `json:"title"`
	Description      flexText    `json:"description"`
	Covers           []int64     `json:"covers"`
	Subjects         []string    `json:"subjects"`
	Authors          []authorRef `json:"authors"`
	FirstPublishDate string      `json:"first_publish_date"`
	Revision         int         `json:"revision"`
}

type authorResponse struct {
	Name string   `json:"name"`
	Bio  flexText `json:"bio"`
}

type trendingWork struct {
	Key              string   `json:"key"` // "/works/OL45804W"
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	CoverID          int64    `json:"cover_i"`
	FirstPublishYear int      `json:"first_publish_year"`
}

type trendingResponse struct {
	Works []trendingWork `json:"works"`
}
