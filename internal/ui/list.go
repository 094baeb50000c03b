package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/olivier-stoked/cinebase/internal/models"
)

var (
	_ list.Item = movieItem{}
	_ list.Item = reviewItem{}
)

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string {
	return fmt.Sprintf("%s (%d)", i.movie.Title, i.movie.ReleaseYear)
}
func (i movieItem) Description() string {
	return fmt.Sprintf("%s • %s • jury %s • community %s",
		i.movie.Genre, i.movie.Director, Stars(i.movie.Rating), i.movie.FormatAverage())
}

// reviewItem wraps [models.Review] to implement [list.Item].
type reviewItem struct {
	review models.Review
}

func (i reviewItem) FilterValue() string { return i.review.Username }
func (i reviewItem) Title() string {
	return fmt.Sprintf("%s %s", Stars(float64(i.review.Rating)), i.review.Username)
}
func (i reviewItem) Description() string {
	if i.review.Comment == "" {
		return "(no comment)"
	}
	return i.review.Comment
}
