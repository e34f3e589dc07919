package pfam

import (
	"context"
	"net/url"
	"strings"
)

// ListFamilies fetches the full list of families as lightweight entries.
func (c *Client) ListFamilies(ctx context.Context) ([]Entry, error) {
	return c.listEntries(ctx, "/families", EntryKindFamily)
}

// ListClans fetches the full list of clans as lightweight entries.
func (c *Client) ListClans(ctx context.Context) ([]Entry, error) {
	return c.listEntries(ctx, "/clans", EntryKindClan)
}

// listEntries fetches a tab-delimited listing endpoint. Each record is one
// line of exactly three fields: accession, id, description. Lines with any
// other field count are skipped.
func (c *Client) listEntries(ctx context.Context, path string, kind EntryKind) ([]Entry, error) {
	text, err := c.requestText(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Split(strings.TrimSuffix(line, "\r"), "\t")
		if len(fields) != 3 {
			continue
		}
		entries = append(entries, Entry{
			Kind:        kind,
			ID:          fields[1],
			Accession:   fields[0],
			Description: fields[2],
		})
	}

	logger().Debug("pfam listing fetched", "path", path, "entries", len(entries))
	return entries, nil
}

// GetAlignmentNames fetches the full alignment of a family in Pfam text
// format and returns the member sequence names, one per alignment row. The
// name is the part of each row before the first '/'.
func (c *Client) GetAlignmentNames(ctx context.Context, familyID string) ([]string, error) {
	params := url.Values{
		"format":   {"pfam"},
		"alnType":  {"full"},
		"order":    {"a"},
		"case":     {"l"},
		"gaps":     {"none"},
		"download": {"0"},
	}

	text, err := c.requestText(ctx, "/family/"+url.PathEscape(familyID)+"/alignment/full/format", params)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		name, _, _ := strings.Cut(line, "/")
		names = append(names, name)
	}

	return names, nil
}
