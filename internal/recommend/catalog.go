// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package recommend

import (
	"math"
	"sort"
	"strings"
)

// LoadReport counts the rows that were dropped or defaulted while
// building a catalog. Load anomalies are never fatal.
type LoadReport struct {
	MoviesLoaded   int `json:"movies_loaded"`
	InvalidMovies  int `json:"invalid_movies"`
	DuplicateMovie int `json:"duplicate_movies"`

	// MissingSentiment counts movies without a sentiment score (treated as neutral).
	MissingSentiment int `json:"missing_sentiment"`

	// InvalidSentiment counts scores outside [0, 1] that were cleared.
	InvalidSentiment int `json:"invalid_sentiment"`

	RatingsLoaded       int `json:"ratings_loaded"`
	UnknownMovieRatings int `json:"unknown_movie_ratings"`
	InvalidRatings      int `json:"invalid_ratings"`
	DuplicateRatings    int `json:"duplicate_ratings"`
}

// DroppedRatings returns the total number of rating rows discarded.
func (r LoadReport) DroppedRatings() int {
	return r.UnknownMovieRatings + r.InvalidRatings + r.DuplicateRatings
}

// DroppedMovies returns the total number of movie rows discarded.
func (r LoadReport) DroppedMovies() int {
	return r.InvalidMovies + r.DuplicateMovie
}

// Catalog is the in-memory movie and ratings store. It is read-only after
// NewCatalog returns and safe for concurrent use.
type Catalog struct {
	movies   map[int]*Movie
	movieIDs []int

	ratings []Rating

	// byUser holds indexes into ratings, in input order.
	byUser  map[int][]int
	userIDs []int
}

type ratingKey struct {
	user  int
	movie int
}

// NewCatalog validates and indexes movies and ratings.
//
// Invalid movies (non-positive id, empty title) and duplicate movie ids are
// dropped. Out-of-range sentiment is cleared to absent. Ratings referencing
// unknown movies, with a non-positive user id, or outside the rating scale
// are dropped. When a user rated a movie more than once, the latest
// timestamp wins and equal timestamps keep the later row.
func NewCatalog(movies []Movie, ratings []Rating, scale RatingScale) (*Catalog, LoadReport) {
	var report LoadReport

	c := &Catalog{
		movies: make(map[int]*Movie, len(movies)),
		byUser: make(map[int][]int),
	}

	for i := range movies {
		m := movies[i]
		if m.ID <= 0 || strings.TrimSpace(m.Title) == "" {
			report.InvalidMovies++
			continue
		}
		if _, exists := c.movies[m.ID]; exists {
			report.DuplicateMovie++
			continue
		}

		m.Genres = normalizeGenres(m.Genres)
		if m.Sentiment != nil {
			s := *m.Sentiment
			if math.IsNaN(s) || s < 0 || s > 1 {
				report.InvalidSentiment++
				m.Sentiment = nil
			} else {
				m.Sentiment = &s
			}
		}
		if m.Sentiment == nil {
			report.MissingSentiment++
		}

		c.movies[m.ID] = &m
		c.movieIDs = append(c.movieIDs, m.ID)
	}
	sort.Ints(c.movieIDs)
	report.MoviesLoaded = len(c.movieIDs)

	// Resolve duplicates before indexing so each (user, movie) pair appears once.
	winner := make(map[ratingKey]int, len(ratings))
	accepted := make([]bool, len(ratings))
	for i, r := range ratings {
		if _, ok := c.movies[r.MovieID]; !ok {
			report.UnknownMovieRatings++
			continue
		}
		if r.UserID <= 0 || math.IsNaN(r.Value) || !scale.Contains(r.Value) {
			report.InvalidRatings++
			continue
		}

		key := ratingKey{user: r.UserID, movie: r.MovieID}
		if prev, ok := winner[key]; ok {
			report.DuplicateRatings++
			if r.Timestamp.Before(ratings[prev].Timestamp) {
				continue
			}
			accepted[prev] = false
		}
		winner[key] = i
		accepted[i] = true
	}

	c.ratings = make([]Rating, 0, len(winner))
	for i, ok := range accepted {
		if !ok {
			continue
		}
		r := ratings[i]
		if _, seen := c.byUser[r.UserID]; !seen {
			c.userIDs = append(c.userIDs, r.UserID)
		}
		c.byUser[r.UserID] = append(c.byUser[r.UserID], len(c.ratings))
		c.ratings = append(c.ratings, r)
	}
	sort.Ints(c.userIDs)
	report.RatingsLoaded = len(c.ratings)

	return c, report
}

// normalizeGenres trims labels and removes blanks and duplicates while
// keeping first-seen order.
func normalizeGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	seen := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// Movie returns the movie with the given id.
func (c *Catalog) Movie(id int) (*Movie, bool) {
	m, ok := c.movies[id]
	return m, ok
}

// MovieIDs returns all movie ids in ascending order. Callers must not modify it.
func (c *Catalog) MovieIDs() []int {
	return c.movieIDs
}

// UserIDs returns all users with at least one rating, ascending. Callers must not modify it.
func (c *Catalog) UserIDs() []int {
	return c.userIDs
}

// Ratings returns the accepted ratings table. Callers must not modify it.
func (c *Catalog) Ratings() []Rating {
	return c.ratings
}

// UserRatings returns a copy of the ratings for one user, in load order.
func (c *Catalog) UserRatings(userID int) []Rating {
	idx := c.byUser[userID]
	out := make([]Rating, len(idx))
	for i, j := range idx {
		out[i] = c.ratings[j]
	}
	return out
}

// HasUser reports whether the user has any accepted ratings.
func (c *Catalog) HasUser(userID int) bool {
	_, ok := c.byUser[userID]
	return ok
}

// NumMovies returns the number of catalog movies.
func (c *Catalog) NumMovies() int { return len(c.movieIDs) }

// NumUsers returns the number of users with ratings.
func (c *Catalog) NumUsers() int { return len(c.userIDs) }

// NumRatings returns the number of accepted ratings.
func (c *Catalog) NumRatings() int { return len(c.ratings) }

// AverageRating returns the global mean rating, or 0 for an empty table.
func (c *Catalog) AverageRating() float64 {
	if len(c.ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range c.ratings {
		sum += r.Value
	}
	return sum / float64(len(c.ratings))
}
