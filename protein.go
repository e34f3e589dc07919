package pfam

import (
	"context"
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"github.com/AlbertoBoldrini/pfam-go/internal/errors"
)

// Location is one aligned region within a match.
type Location struct {
	Start       Value
	End         Value
	AliStart    Value
	AliEnd      Value
	HMMStart    Value
	HMMEnd      Value
	Bitscore    Value
	Evalue      Value
	Evidence    string
	Significant Value

	// Alignment strings, present when the server includes them
	HMM         string
	MatchString string
	PP          string
	Seq         string
	Raw         string

	// Extra collects attributes and child tags with no dedicated field.
	Extra map[string]Value
}

// Match is one family's hit against a protein sequence.
type Match struct {
	Entry     Entry // kind taken from the match's declared type
	Locations []Location
}

// FetchFamily fetches the family record the match points at.
func (m Match) FetchFamily(ctx context.Context, c *Client) (*Family, error) {
	entity, err := c.Resolve(ctx, m.Entry)
	if err != nil {
		return nil, err
	}
	family, ok := entity.(*Family)
	if !ok {
		return nil, errors.Newf("match entry %q resolved to a %T, not a family", m.Entry.Accession, entity).
			Category(errors.CategoryValidation).
			Context("accession", m.Entry.Accession).
			Component("pfam").
			Build()
	}
	return family, nil
}

// Protein is a sequence record with its family-domain matches.
type Protein struct {
	Release         Release
	Entry           Entry
	DBName          string
	DBRelease       Value
	Description     string
	Comment         string
	TaxonomyID      Value
	SpeciesName     string
	Taxonomy        []string // ordered lineage, kingdom first
	SequenceVersion Value
	Sequence        string
	Matches         []Match

	// Extra collects child tags with no dedicated field.
	Extra map[string]Value
}

// Ref returns the lightweight entry reference of the protein.
func (p *Protein) Ref() Entry {
	return p.Entry
}

// Snapshot returns the database release the protein was fetched from.
func (p *Protein) Snapshot() Release {
	return p.Release
}

// FetchFamily fetches the family of the protein's first match. A protein
// with no matches yields nil without attempting a network call.
func (p *Protein) FetchFamily(ctx context.Context, c *Client) (*Family, error) {
	if len(p.Matches) == 0 {
		return nil, nil
	}
	return p.Matches[0].FetchFamily(ctx, c)
}

// GetProtein fetches a protein record by id or accession.
func (c *Client) GetProtein(ctx context.Context, id string) (*Protein, error) {
	root, err := c.requestXML(ctx, "/protein/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	node, err := entityNode(root, "protein")
	if err != nil {
		return nil, err
	}

	return proteinFromXML(releaseFromRoot(root), node), nil
}

// proteinFromXML maps a normalized protein entity node onto a Protein record.
func proteinFromXML(release Release, node *etree.Element) *Protein {
	protein := &Protein{
		Release:   release,
		DBName:    node.SelectAttrValue("db", ""),
		DBRelease: attrValue(node, "db_release"),
	}

	for _, el := range node.ChildElements() {
		switch el.Tag {
		case "taxonomy":
			protein.TaxonomyID = attrValue(el, "tax_id")
			protein.SpeciesName = el.SelectAttrValue("species_name", "")
			if lineage := strings.TrimSpace(el.Text()); lineage != "" {
				protein.Taxonomy = strings.Split(strings.TrimSuffix(lineage, "."), "; ")
			}
		case "sequence":
			protein.SequenceVersion = attrValue(el, "version")
			protein.Sequence = strings.TrimSpace(el.Text())
		case "matches":
			for _, match := range el.ChildElements() {
				protein.Matches = append(protein.Matches, matchFromXML(match))
			}
		case "description":
			protein.Description = textValue(el).String()
		case "comment":
			protein.Comment = textValue(el).String()
		default:
			if protein.Extra == nil {
				protein.Extra = make(map[string]Value)
			}
			protein.Extra[el.Tag] = textValue(el)
		}
	}

	protein.Entry = entryFromNode(node, protein.Description)
	return protein
}

// matchFromXML maps a match node: the entry reference comes from the node's
// attributes, one Location per child element.
func matchFromXML(node *etree.Element) Match {
	match := Match{
		Entry: Entry{
			Kind:      EntryKind(node.SelectAttrValue("type", "")),
			ID:        node.SelectAttrValue("id", ""),
			Accession: node.SelectAttrValue("accession", ""),
		},
	}
	for _, location := range node.ChildElements() {
		match.Locations = append(match.Locations, locationFromXML(location))
	}
	return match
}

// locationFromXML maps every attribute of a location node onto a same-named
// field and every child element's text onto the alignment-string fields.
// Unanticipated names land in Extra.
func locationFromXML(node *etree.Element) Location {
	location := Location{}

	for _, attr := range node.Attr {
		value := Normalize(attr.Value)
		switch attr.Key {
		case "start":
			location.Start = value
		case "end":
			location.End = value
		case "ali_start":
			location.AliStart = value
		case "ali_end":
			location.AliEnd = value
		case "hmm_start":
			location.HMMStart = value
		case "hmm_end":
			location.HMMEnd = value
		case "bitscore":
			location.Bitscore = value
		case "evalue":
			location.Evalue = value
		case "evidence":
			location.Evidence = value.String()
		case "significant":
			location.Significant = value
		default:
			if location.Extra == nil {
				location.Extra = make(map[string]Value)
			}
			location.Extra[attr.Key] = value
		}
	}

	for _, el := range node.ChildElements() {
		switch el.Tag {
		case "hmm":
			location.HMM = textValue(el).String()
		case "match_string":
			location.MatchString = textValue(el).String()
		case "pp":
			location.PP = textValue(el).String()
		case "seq":
			location.Seq = textValue(el).String()
		case "raw":
			location.Raw = textValue(el).String()
		default:
			if location.Extra == nil {
				location.Extra = make(map[string]Value)
			}
			location.Extra[el.Tag] = textValue(el)
		}
	}

	return location
}
