package pfam

import (
	"context"
	"time"

	"github.com/beevik/etree"

	"github.com/AlbertoBoldrini/pfam-go/internal/errors"
)

// EntryKind identifies which resource an Entry points at. The values mirror
// the entry_type tags the server emits.
type EntryKind string

const (
	EntryKindFamily  EntryKind = "Pfam-A"
	EntryKindClan    EntryKind = "Clan"
	EntryKindProtein EntryKind = "sequence"
)

// Known reports whether the kind belongs to the closed set of resolvable
// entry kinds.
func (k EntryKind) Known() bool {
	switch k {
	case EntryKindFamily, EntryKindClan, EntryKindProtein:
		return true
	}
	return false
}

// Entry is a lightweight reference to a family, clan, or protein. It carries
// lookup keys only; Resolve performs the follow-up fetch.
type Entry struct {
	Kind        EntryKind
	ID          string
	Accession   string
	Description string // optional, empty in list and match contexts
}

// Entity is implemented by the fetchable record types: Family, Clan, and
// Protein.
type Entity interface {
	// Ref returns the lightweight entry reference of the record.
	Ref() Entry
	// Snapshot returns the database release the record was fetched from.
	Snapshot() Release
}

// Resolve fetches the full record an entry points at, dispatching on its
// kind. Resolving an entry of an unrecognized kind fails with a validation
// error; it never falls through silently.
func (c *Client) Resolve(ctx context.Context, entry Entry) (Entity, error) {
	switch entry.Kind {
	case EntryKindFamily:
		return c.GetFamily(ctx, entry.Accession)
	case EntryKindClan:
		return c.GetClan(ctx, entry.Accession)
	case EntryKindProtein:
		return c.GetProtein(ctx, entry.Accession)
	default:
		return nil, errors.Newf("cannot resolve entry of unrecognized kind %q", string(entry.Kind)).
			Category(errors.CategoryValidation).
			Context("accession", entry.Accession).
			Component("pfam").
			Build()
	}
}

// Release identifies the database snapshot a response was generated from.
// Every root record carries it, since records chained through follow-up
// fetches may originate from different snapshots.
type Release struct {
	Version string
	Date    time.Time
}

// releaseDateLayout is the format of the release_date root attribute.
const releaseDateLayout = "2006-01-02"

// releaseFromRoot reads the snapshot identity off a response root element.
// An unparseable date leaves the zero time; the mapping layer does not
// validate defensively.
func releaseFromRoot(root *etree.Element) Release {
	release := Release{Version: root.SelectAttrValue("release", "")}
	if raw := root.SelectAttrValue("release_date", ""); raw != "" {
		if date, err := time.Parse(releaseDateLayout, raw); err == nil {
			release.Date = date
		}
	}
	return release
}

// entryFromNode builds the entry reference of an entity node from its
// attributes plus the description collected while mapping children.
func entryFromNode(node *etree.Element, description string) Entry {
	return Entry{
		Kind:        EntryKind(node.SelectAttrValue("entry_type", "")),
		ID:          node.SelectAttrValue("id", ""),
		Accession:   node.SelectAttrValue("accession", ""),
		Description: description,
	}
}
