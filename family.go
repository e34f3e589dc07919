package pfam

import (
	"context"
	"net/url"
	"strings"

	"github.com/beevik/etree"
)

// GoTerm is a gene-ontology annotation of a family.
type GoTerm struct {
	ID       string
	Category string
	Text     string
}

// CurationDetails holds the curation metadata of a family.
type CurationDetails struct {
	Status             string
	SeedSource         string
	Type               string
	NumArchs           Value
	NumSpecies         Value
	NumStructures      Value
	PercentageIdentity Value
	AvLength           Value
	AvCoverage         Value
	NumSeqsSeed        Value
	NumSeqsFull        Value

	// Extra collects child tags with no dedicated field.
	Extra map[string]Value
}

// CutOff is a score threshold pair of an HMM.
type CutOff struct {
	Sequence Value
	Domain   Value
}

// HMMDetails holds the HMM build metadata of a family.
type HMMDetails struct {
	HMMERVersion   string
	ModelVersion   string
	ModelLength    Value
	BuildCommands  string
	SearchCommands string
	Cutoffs        map[string]CutOff

	// Extra collects child tags with no dedicated field.
	Extra map[string]Value
}

// Family is a curated protein-family record (Pfam-A entry).
type Family struct {
	Release     Release
	Entry       Entry
	Description string
	Comment     string
	Curation    *CurationDetails
	HMM         *HMMDetails
	Clan        *Entry // set when the family is a member of a clan
	GoTerms     []GoTerm

	// Extra collects child tags with no dedicated field, preserving
	// forward compatibility with attributes the server may add.
	Extra map[string]Value
}

// Ref returns the lightweight entry reference of the family.
func (f *Family) Ref() Entry {
	return f.Entry
}

// Snapshot returns the database release the family was fetched from.
func (f *Family) Snapshot() Release {
	return f.Release
}

// FetchClan fetches the clan the family belongs to, or nil without a network
// call when the family is not a clan member.
func (f *Family) FetchClan(ctx context.Context, c *Client) (*Clan, error) {
	if f.Clan == nil {
		return nil, nil
	}
	return c.GetClan(ctx, f.Clan.Accession)
}

// GetFamily fetches a family record by id or accession.
func (c *Client) GetFamily(ctx context.Context, id string) (*Family, error) {
	root, err := c.requestXML(ctx, "/family/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	node, err := entityNode(root, "family")
	if err != nil {
		return nil, err
	}

	return familyFromXML(releaseFromRoot(root), node), nil
}

// familyFromXML maps a normalized family entity node onto a Family record.
// The entry reference is built last because it carries the description
// collected from the children.
func familyFromXML(release Release, node *etree.Element) *Family {
	family := &Family{Release: release}

	for _, el := range node.ChildElements() {
		switch el.Tag {
		case "curation_details":
			family.Curation = curationDetailsFromXML(el)
		case "hmm_details":
			family.HMM = hmmDetailsFromXML(el)
		case "clan_membership":
			clan := Entry{
				Kind:      EntryKindClan,
				ID:        el.SelectAttrValue("clan_id", ""),
				Accession: el.SelectAttrValue("clan_acc", ""),
			}
			family.Clan = &clan
		case "go_terms":
			for _, category := range el.ChildElements() {
				name := category.SelectAttrValue("name", "")
				for _, term := range category.ChildElements() {
					family.GoTerms = append(family.GoTerms, GoTerm{
						ID:       term.SelectAttrValue("go_id", ""),
						Category: name,
						Text:     strings.TrimSpace(term.Text()),
					})
				}
			}
		case "description":
			family.Description = textValue(el).String()
		case "comment":
			family.Comment = textValue(el).String()
		default:
			if family.Extra == nil {
				family.Extra = make(map[string]Value)
			}
			family.Extra[el.Tag] = textValue(el)
		}
	}

	family.Entry = entryFromNode(node, family.Description)
	return family
}

func curationDetailsFromXML(node *etree.Element) *CurationDetails {
	details := &CurationDetails{}

	for _, el := range node.ChildElements() {
		switch el.Tag {
		case "status":
			details.Status = textValue(el).String()
		case "seed_source":
			details.SeedSource = textValue(el).String()
		case "type":
			details.Type = textValue(el).String()
		case "num_archs":
			details.NumArchs = textValue(el)
		case "num_species":
			details.NumSpecies = textValue(el)
		case "num_structures":
			details.NumStructures = textValue(el)
		case "percentage_identity":
			details.PercentageIdentity = textValue(el)
		case "av_length":
			details.AvLength = textValue(el)
		case "av_coverage":
			details.AvCoverage = textValue(el)
		case "num_seqs":
			// Seed and full sequence counts live in two named children
			if seed := el.SelectElement("seed"); seed != nil {
				details.NumSeqsSeed = textValue(seed)
			}
			if full := el.SelectElement("full"); full != nil {
				details.NumSeqsFull = textValue(full)
			}
		default:
			if details.Extra == nil {
				details.Extra = make(map[string]Value)
			}
			details.Extra[el.Tag] = textValue(el)
		}
	}

	return details
}

func hmmDetailsFromXML(node *etree.Element) *HMMDetails {
	details := &HMMDetails{
		HMMERVersion: node.SelectAttrValue("hmmer_version", ""),
		ModelVersion: node.SelectAttrValue("model_version", ""),
		ModelLength:  attrValue(node, "model_length"),
		Cutoffs:      make(map[string]CutOff),
	}

	for _, el := range node.ChildElements() {
		switch el.Tag {
		case "cutoffs":
			// One cutoff child per kind, thresholds in two named children
			for _, cutoff := range el.ChildElements() {
				pair := CutOff{}
				if seq := cutoff.SelectElement("sequence"); seq != nil {
					pair.Sequence = textValue(seq)
				}
				if dom := cutoff.SelectElement("domain"); dom != nil {
					pair.Domain = textValue(dom)
				}
				details.Cutoffs[cutoff.Tag] = pair
			}
		case "build_commands":
			details.BuildCommands = textValue(el).String()
		case "search_commands":
			details.SearchCommands = textValue(el).String()
		default:
			if details.Extra == nil {
				details.Extra = make(map[string]Value)
			}
			details.Extra[el.Tag] = textValue(el)
		}
	}

	return details
}
