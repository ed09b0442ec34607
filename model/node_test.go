package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeDisplayLabel(t *testing.T) {
	t.Run("Company label comes from company_name", func(t *testing.T) {
		node := &Node{Kind: NodeKindCompany, Props: Metadata{"company_name": "Acme Robotics"}}
		assert.Equal(t, "Acme Robotics", node.DisplayLabel(), "Expected company label to come from company_name")
	})

	t.Run("News label comes from headline_name", func(t *testing.T) {
		node := &Node{Kind: NodeKindNews, Props: Metadata{"headline_name": "Acme posts record earnings"}}
		assert.Equal(t, "Acme posts record earnings", node.DisplayLabel(), "Expected news label to come from headline_name")
	})

	t.Run("All recognized kinds resolve their label property", func(t *testing.T) {
		cases := map[NodeKind]string{
			NodeKindCompany:      "company_name",
			NodeKindNews:         "headline_name",
			NodeKindNewsCategory: "category",
			NodeKindDate:         "date",
			NodeKindIndustry:     "industry",
			NodeKindSector:       "sector",
			NodeKindSubSector:    "subsector",
			NodeKindSuperSector:  "supersector",
			NodeKindTag:          "tag_name",
			NodeKindPerson:       "person_name",
			NodeKindOrganisation: "organisation_name",
			NodeKindPosition:     "position_name",
		}

		for kind, prop := range cases {
			node := &Node{Kind: kind, Props: Metadata{prop: "label-value"}}
			assert.Equal(t, "label-value", node.DisplayLabel(), "Expected kind %s to resolve label from %s", kind, prop)
		}
	})

	t.Run("Unrecognized kind yields empty label", func(t *testing.T) {
		node := &Node{Kind: NodeKind("martian"), Props: Metadata{"name": "something"}}
		assert.Empty(t, node.DisplayLabel(), "Expected unrecognized kind to yield an empty label")
	})

	t.Run("Helper kinds yield empty label", func(t *testing.T) {
		for _, kind := range HelperNodeKinds {
			node := &Node{Kind: kind, Props: Metadata{"name": "something"}}
			assert.Empty(t, node.DisplayLabel(), "Expected helper kind %s to yield an empty label", kind)
		}
	})

	t.Run("Missing label property yields empty label", func(t *testing.T) {
		node := &Node{Kind: NodeKindPerson, Props: Metadata{}}
		assert.Empty(t, node.DisplayLabel(), "Expected missing property to yield an empty label")
	})

	t.Run("Non-string label property yields empty label", func(t *testing.T) {
		node := &Node{Kind: NodeKindPerson, Props: Metadata{"person_name": 42}}
		assert.Empty(t, node.DisplayLabel(), "Expected non-string property to yield an empty label")
	})
}
