// package formatter exports lists to portable formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/listenr/internal/models"
	"github.com/desertthunder/listenr/internal/shared"
)

// Format is an export format.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "md"
	Text     Format = "txt"
)

// ParseFormat accepts a format name or common file extension spelling.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "csv":
		return CSV, nil
	case "md", "markdown":
		return Markdown, nil
	case "txt", "text", "":
		return Text, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, name)
}

// ListToCSV renders the albums of a list with columns: Rank, ID, Title, Artist
func ListToCSV(l *models.List) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Rank", "ID", "Title", "Artist"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, a := range l.Albums {
		if err := writer.Write([]string{strconv.Itoa(i + 1), a.ID, a.Title, a.Artist}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ListToMarkdown renders a list as a Markdown document. link, when set, is
// the shareable address of the list.
func ListToMarkdown(l *models.List, link string) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", l.Title)
	if l.OwnerUsername != "" {
		fmt.Fprintf(&buf, "By @%s", l.OwnerUsername)
		if len(l.Collaborators) > 0 {
			names := make([]string, 0, len(l.Collaborators))
			for _, c := range l.Collaborators {
				names = append(names, "@"+c.Username)
			}
			fmt.Fprintf(&buf, " with %s", strings.Join(names, ", "))
		}
		buf.WriteString("\n\n")
	}
	if l.Description != "" {
		fmt.Fprintf(&buf, "%s\n\n", l.Description)
	}

	fmt.Fprintf(&buf, "**Albums**: %d\n", len(l.Albums))
	fmt.Fprintf(&buf, "**Likes**: %d\n", l.Likes)
	if link != "" {
		fmt.Fprintf(&buf, "**Link**: <%s>\n", link)
	}

	buf.WriteString("\n## Albums\n\n")
	for i, a := range l.Albums {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, a.Artist, a.Title)
	}
	return buf.Bytes()
}

// ListToText renders a list as plain text.
func ListToText(l *models.List) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "List: %s\n", l.Title)
	if l.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", l.Description)
	}
	fmt.Fprintf(&buf, "Albums: %d\n\n", len(l.Albums))

	for i, a := range l.Albums {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, a.Artist, a.Title)
	}
	return buf.Bytes()
}

// Render produces l in format f.
func Render(l *models.List, f Format, link string) ([]byte, error) {
	switch f {
	case CSV:
		return ListToCSV(l)
	case Markdown:
		return ListToMarkdown(l, link), nil
	case Text:
		return ListToText(l), nil
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
}

// Write renders l to w.
func Write(w io.Writer, l *models.List, f Format, link string) error {
	data, err := Render(l, f, link)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteFile renders l to path, defaulting to {list.ID}.{format}.
func WriteFile(l *models.List, f Format, link, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s.%s", l.ID, f)
	}

	data, err := Render(l, f, link)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
