package pfam

import (
	"strings"

	"github.com/beevik/etree"
)

// NormalizeTree trims the text content and every attribute value of el and
// all its descendants, in document order. The walk is tag-agnostic and
// idempotent; it runs once per response, before any typed mapping. Typed
// float/absent interpretation happens on read through Normalize, so the DOM
// itself stays textual.
func NormalizeTree(el *etree.Element) *etree.Element {
	if text := el.Text(); text != "" {
		el.SetText(strings.TrimSpace(text))
	}
	for i := range el.Attr {
		el.Attr[i].Value = strings.TrimSpace(el.Attr[i].Value)
	}
	for _, child := range el.ChildElements() {
		NormalizeTree(child)
	}
	return el
}

// textValue returns the normalized text content of an element.
func textValue(el *etree.Element) Value {
	return Normalize(el.Text())
}

// attrValue returns the normalized value of an attribute, absent when the
// attribute is missing.
func attrValue(el *etree.Element, name string) Value {
	return Normalize(el.SelectAttrValue(name, ""))
}
