package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"igposts/pkg/models"
)

// WriteJSON writes posts as an indented JSON array. HTML characters are left
// unescaped and an empty set is written as [].
func WriteJSON(w io.Writer, posts []models.CanonicalPost) error {
	if posts == nil {
		posts = []models.CanonicalPost{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(posts); err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	return nil
}

// WriteCSV writes posts with a header row in models.CSVColumns order.
// An empty set writes nothing at all, not even the header.
func WriteCSV(w io.Writer, posts []models.CanonicalPost) error {
	if len(posts) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(models.CSVColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range posts {
		row, err := csvRow(p)
		if err != nil {
			return fmt.Errorf("post %s: %w", p.ID, err)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvRow(p models.CanonicalPost) ([]string, error) {
	tagged, err := marshalTagged(p.TaggedUsers)
	if err != nil {
		return nil, err
	}

	return []string{
		p.ID,
		p.Username,
		p.Shortcode,
		p.Caption,
		strconv.FormatInt(p.Timestamp, 10),
		strconv.FormatInt(p.Likes, 10),
		strconv.FormatInt(p.Comments, 10),
		p.MediaType,
		p.DisplayURL,
		p.ThumbnailURL,
		strconv.FormatInt(p.DimensionsWidth, 10),
		strconv.FormatInt(p.DimensionsHeight, 10),
		strconv.FormatBool(p.IsAffiliate),
		strconv.FormatBool(p.IsPaidPartnership),
		strconv.FormatBool(p.CommentsDisabled),
		strconv.FormatBool(p.Pinned),
		optString(p.LocationID),
		optString(p.LocationName),
		optString(p.LocationSlug),
		optBool(p.LocationHasPublicPage),
		tagged,
	}, nil
}

func marshalTagged(users []models.TaggedUser) (string, error) {
	if users == nil {
		users = []models.TaggedUser{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(users); err != nil {
		return "", fmt.Errorf("encode tagged users: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func optString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}
