// package formatter provides functions to export the movie catalog to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/olivier-stoked/cinebase/internal/models"
)

// ExportToCSV converts a movie list to CSV with columns: ID, Title, Year, Genre, Director, Jury, Community
func ExportToCSV(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Genre", "Director", "Jury", "Community"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range movies {
		record := []string{
			strconv.FormatInt(m.ID, 10),
			m.Title,
			strconv.Itoa(m.ReleaseYear),
			m.Genre,
			m.Director,
			strconv.FormatFloat(m.Rating, 'f', 1, 64),
			m.FormatAverage(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a movie list to a Markdown table.
func ExportToMarkdown(movies []models.Movie) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Movie Catalog\n\n")
	buf.WriteString(fmt.Sprintf("%d movies\n\n", len(movies)))
	buf.WriteString("| Title | Year | Genre | Director | Jury | Community |\n")
	buf.WriteString("|-------|------|-------|----------|------|----------|\n")

	for _, m := range movies {
		buf.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %.1f | %s |\n",
			m.Title, m.ReleaseYear, m.Genre, m.Director, m.Rating, m.FormatAverage()))
	}

	return buf.Bytes()
}

// ExportToText converts a movie list to an aligned plain-text listing for
// terminal output.
func ExportToText(movies []models.Movie) []byte {
	var buf bytes.Buffer

	if len(movies) == 0 {
		buf.WriteString("No movies found.\n")
		return buf.Bytes()
	}

	widest := 0
	for _, m := range movies {
		if len(m.Title) > widest {
			widest = len(m.Title)
		}
	}

	for _, m := range movies {
		buf.WriteString(fmt.Sprintf("%-*s  %4d  %-12s  jury %4.1f  community %s\n",
			widest, m.Title, m.ReleaseYear, m.Genre, m.Rating, m.FormatAverage()))
	}

	return buf.Bytes()
}
