package valueobjects

import (
	"strings"
)

// RoutingLists holds the ordered Via, References, Enclosures and Copy-To
// entries. Each list keeps at least one slot, possibly empty, so an editor
// always has an anchor row to type into.
type RoutingLists struct {
	Via        []string `json:"via"`
	References []string `json:"references"`
	Enclosures []string `json:"enclosures"`
	CopyTo     []string `json:"copy_to"`
}

// NewRoutingLists returns lists with one empty anchor slot each
func NewRoutingLists() RoutingLists {
	return RoutingLists{
		Via:        []string{""},
		References: []string{""},
		Enclosures: []string{""},
		CopyTo:     []string{""},
	}
}

// WithAnchors returns a copy in which every empty list holds one empty slot
func (r RoutingLists) WithAnchors() RoutingLists {
	return RoutingLists{
		Via:        anchored(r.Via),
		References: anchored(r.References),
		Enclosures: anchored(r.Enclosures),
		CopyTo:     anchored(r.CopyTo),
	}
}

// Compact returns a copy with blank entries removed, ready for serialization
func (r RoutingLists) Compact() RoutingLists {
	return RoutingLists{
		Via:        nonEmpty(r.Via),
		References: nonEmpty(r.References),
		Enclosures: nonEmpty(r.Enclosures),
		CopyTo:     nonEmpty(r.CopyTo),
	}
}

func anchored(entries []string) []string {
	if len(entries) == 0 {
		return []string{""}
	}
	out := make([]string, len(entries))
	copy(out, entries)
	return out
}

func nonEmpty(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry) != "" {
			out = append(out, entry)
		}
	}
	return out
}
