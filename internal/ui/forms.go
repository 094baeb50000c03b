package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-stoked/cinebase/internal/models"
)

// loginForm is the two-field credential form for [RouteLogin].
type loginForm struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newLoginForm() loginForm {
	identifier := textinput.New()
	identifier.Placeholder = "username or email"
	identifier.CharLimit = 100
	identifier.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword

	return loginForm{inputs: []textinput.Model{identifier, password}}
}

func (f loginForm) Values() (identifier, secret string) {
	return strings.TrimSpace(f.inputs[0].Value()), f.inputs[1].Value()
}

func (f loginForm) Update(msg tea.Msg) (loginForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.focus = (f.focus + 1) % len(f.inputs)
			return f.syncFocus(), nil
		case "shift+tab", "up":
			f.focus = (f.focus + len(f.inputs) - 1) % len(f.inputs)
			return f.syncFocus(), nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f loginForm) syncFocus() loginForm {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return f
}

func (f loginForm) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Sign in to CINEBASE"))
	b.WriteString("\n\n")
	b.WriteString("Identifier: " + f.inputs[0].View() + "\n")
	b.WriteString("Password:   " + f.inputs[1].View() + "\n")

	if f.submitting {
		b.WriteString("\n" + styles.warn.Render("Signing in..."))
	}
	if f.errMsg != "" {
		b.WriteString("\n" + styles.err.Render(f.errMsg))
	}

	b.WriteString("\n\n" + styles.help.Render("tab: next field • enter: submit • esc: back"))
	return b.String()
}

// reviewForm captures a 0-10 integer rating and an optional bounded comment.
type reviewForm struct {
	movieID    int64
	rating     int
	comment    textinput.Model
	submitting bool
	errMsg     string
}

func newReviewForm(movieID int64) reviewForm {
	comment := textinput.New()
	comment.Placeholder = "optional comment"
	comment.CharLimit = models.MaxCommentLength
	comment.Focus()

	return reviewForm{movieID: movieID, rating: 10, comment: comment}
}

func (f reviewForm) Review() *models.Review {
	return &models.Review{
		MovieID: f.movieID,
		Rating:  f.rating,
		Comment: strings.TrimSpace(f.comment.Value()),
	}
}

func (f reviewForm) Update(msg tea.Msg) (reviewForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "left":
			if f.rating > 0 {
				f.rating--
			}
			return f, nil
		case "right":
			if f.rating < 10 {
				f.rating++
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.comment, cmd = f.comment.Update(msg)
	return f, cmd
}

func (f reviewForm) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Rate this movie"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Rating:  %2d/10  %s\n", f.rating, Stars(float64(f.rating))))
	b.WriteString("Comment: " + f.comment.View() + "\n")

	if f.submitting {
		b.WriteString("\n" + styles.warn.Render("Submitting..."))
	}
	if f.errMsg != "" {
		b.WriteString("\n" + styles.err.Render(f.errMsg))
	}

	b.WriteString("\n\n" + styles.help.Render("←/→: adjust rating • enter: submit • esc: cancel"))
	return b.String()
}

// movieForm is the admin create/edit form. editing is nil in create mode.
type movieForm struct {
	inputs     []textinput.Model
	focus      int
	editing    *models.Movie
	submitting bool
	errMsg     string
}

const (
	fieldTitle = iota
	fieldDirector
	fieldGenre
	fieldYear
	fieldRating
	fieldDescription
	fieldCount
)

var movieFieldLabels = [fieldCount]string{
	"Title", "Director", "Genre", "Year", "Jury rating", "Description",
}

func newMovieForm(editing *models.Movie) movieForm {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.Placeholder = strings.ToLower(movieFieldLabels[i])
		inputs[i] = ti
	}
	inputs[fieldDescription].CharLimit = 2000
	inputs[fieldTitle].Focus()

	if editing != nil {
		inputs[fieldTitle].SetValue(editing.Title)
		inputs[fieldDirector].SetValue(editing.Director)
		inputs[fieldGenre].SetValue(editing.Genre)
		inputs[fieldYear].SetValue(strconv.Itoa(editing.ReleaseYear))
		inputs[fieldRating].SetValue(strconv.FormatFloat(editing.Rating, 'f', 1, 64))
		inputs[fieldDescription].SetValue(editing.Description)
	}

	return movieForm{inputs: inputs, editing: editing}
}

// Movie parses the form into a movie record, reporting the first field-scoped
// validation failure.
func (f movieForm) Movie() (*models.Movie, error) {
	movie := &models.Movie{
		Title:       strings.TrimSpace(f.inputs[fieldTitle].Value()),
		Director:    strings.TrimSpace(f.inputs[fieldDirector].Value()),
		Genre:       strings.TrimSpace(f.inputs[fieldGenre].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
	}

	if yearStr := strings.TrimSpace(f.inputs[fieldYear].Value()); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("year must be a number")
		}
		movie.ReleaseYear = year
	}

	if ratingStr := strings.TrimSpace(f.inputs[fieldRating].Value()); ratingStr != "" {
		rating, err := strconv.ParseFloat(ratingStr, 64)
		if err != nil {
			return nil, fmt.Errorf("jury rating must be a number")
		}
		movie.Rating = rating
	}

	if f.editing != nil {
		movie.ID = f.editing.ID
	}

	if err := movie.Validate(); err != nil {
		return nil, err
	}

	return movie, nil
}

func (f movieForm) Update(msg tea.Msg) (movieForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.focus = (f.focus + 1) % len(f.inputs)
			return f.syncFocus(), nil
		case "shift+tab", "up":
			f.focus = (f.focus + len(f.inputs) - 1) % len(f.inputs)
			return f.syncFocus(), nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f movieForm) syncFocus() movieForm {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return f
}

func (f movieForm) View() string {
	var b strings.Builder
	if f.editing != nil {
		b.WriteString(styles.title.Render(fmt.Sprintf("Edit '%s'", f.editing.Title)))
	} else {
		b.WriteString(styles.title.Render("New movie"))
	}
	b.WriteString("\n\n")

	for i, input := range f.inputs {
		b.WriteString(fmt.Sprintf("%-12s %s\n", movieFieldLabels[i]+":", input.View()))
	}

	if f.submitting {
		b.WriteString("\n" + styles.warn.Render("Saving..."))
	}
	if f.errMsg != "" {
		b.WriteString("\n" + styles.err.Render(f.errMsg))
	}

	b.WriteString("\n\n" + styles.help.Render("tab: next field • enter: save • esc: cancel"))
	return b.String()
}
