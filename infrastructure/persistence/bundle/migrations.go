package bundle

import (
	"context"
	"fmt"

	"github.com/SemperAdmin/naval-letter-formatter-sub000/infrastructure/persistence/schema"
)

// routingKeys are the list fields that version 1 kept at the payload root
var routingKeys = []string{"via", "references", "enclosures", "copy_to"}

// NewEvolution returns the migrations between all known bundle versions.
//
// Version 1 kept the routing lists at the payload root and stored paragraph
// text under "content". Version 2 groups the lists under "routing" and
// renames the paragraph field to "text".
func NewEvolution() *schema.Evolution {
	evolution := schema.NewEvolution()
	if err := evolution.RegisterMigration(schema.Migration{
		FromVersion: 1,
		ToVersion:   2,
		Description: "group routing lists, rename paragraph content to text",
		Up:          upgradeV1,
		Down:        downgradeV2,
	}); err != nil {
		panic(fmt.Sprintf("bundle: %v", err))
	}
	return evolution
}

func upgradeV1(_ context.Context, doc schema.Document) error {
	routing := map[string]interface{}{}
	for _, key := range routingKeys {
		if v, ok := doc[key]; ok {
			routing[key] = v
			delete(doc, key)
		}
	}
	doc["routing"] = routing
	return renameParagraphField(doc, "content", "text")
}

func downgradeV2(_ context.Context, doc schema.Document) error {
	if routing, ok := doc["routing"].(map[string]interface{}); ok {
		for _, key := range routingKeys {
			if v, ok := routing[key]; ok {
				doc[key] = v
			}
		}
	}
	delete(doc, "routing")
	return renameParagraphField(doc, "text", "content")
}

func renameParagraphField(doc schema.Document, from, to string) error {
	raw, ok := doc["paragraphs"]
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return fmt.Errorf("paragraphs must be a list, got %T", raw)
	}
	for i, item := range list {
		p, ok := item.(map[string]interface{})
		if !ok {
			return fmt.Errorf("paragraph %d must be an object, got %T", i, item)
		}
		if v, ok := p[from]; ok {
			p[to] = v
			delete(p, from)
		}
	}
	return nil
}
