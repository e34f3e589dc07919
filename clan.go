package pfam

import (
	"context"
	"net/url"

	"github.com/beevik/etree"
)

// ClanMember holds one family's membership statistics within a clan.
type ClanMember struct {
	Entry          Entry // kind Pfam-A
	NumOccurrences Value
	PercentageHits Value
}

// Clan is a grouping of related families.
type Clan struct {
	Release     Release
	Entry       Entry
	Description string
	Comment     string
	Members     []ClanMember

	// Extra collects child tags with no dedicated field.
	Extra map[string]Value
}

// Ref returns the lightweight entry reference of the clan.
func (cl *Clan) Ref() Entry {
	return cl.Entry
}

// Snapshot returns the database release the clan was fetched from.
func (cl *Clan) Snapshot() Release {
	return cl.Release
}

// GetClan fetches a clan record by id or accession.
func (c *Client) GetClan(ctx context.Context, id string) (*Clan, error) {
	root, err := c.requestXML(ctx, "/clan/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	node, err := entityNode(root, "clan")
	if err != nil {
		return nil, err
	}

	return clanFromXML(releaseFromRoot(root), node), nil
}

// clanFromXML maps a normalized clan entity node onto a Clan record.
func clanFromXML(release Release, node *etree.Element) *Clan {
	clan := &Clan{Release: release}

	for _, el := range node.ChildElements() {
		switch el.Tag {
		case "members":
			for _, member := range el.ChildElements() {
				clan.Members = append(clan.Members, ClanMember{
					Entry: Entry{
						Kind:      EntryKindFamily,
						ID:        member.SelectAttrValue("id", ""),
						Accession: member.SelectAttrValue("accession", ""),
					},
					NumOccurrences: attrValue(member, "num_occurrences"),
					PercentageHits: attrValue(member, "percentage_hits"),
				})
			}
		case "description":
			clan.Description = textValue(el).String()
		case "comment":
			clan.Comment = textValue(el).String()
		default:
			if clan.Extra == nil {
				clan.Extra = make(map[string]Value)
			}
			clan.Extra[el.Tag] = textValue(el)
		}
	}

	clan.Entry = entryFromNode(node, clan.Description)
	return clan
}
