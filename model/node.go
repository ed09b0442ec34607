package model

import (
	"time"
)

// NodeKind classifies a node in the news graph
type NodeKind string

const (
	NodeKindCompany      NodeKind = "company"
	NodeKindNews         NodeKind = "news"
	NodeKindNewsCategory NodeKind = "news_category"
	NodeKindDate         NodeKind = "date"
	NodeKindIndustry     NodeKind = "industry"
	NodeKindSector       NodeKind = "sector"
	NodeKindSubSector    NodeKind = "sub_sector"
	NodeKindSuperSector  NodeKind = "super_sector"
	NodeKindTag          NodeKind = "tag"
	NodeKindPerson       NodeKind = "person"
	NodeKindOrganisation NodeKind = "organisation"
	NodeKindPosition     NodeKind = "position"
	// Helper kinds that carry no context of their own and are skipped
	// during graph expansion
	NodeKindResource  NodeKind = "resource"
	NodeKindSplitText NodeKind = "split_text"
	NodeKindRns       NodeKind = "rns"
)

// HelperNodeKinds are the node kinds excluded from graph expansion
var HelperNodeKinds = []NodeKind{
	NodeKindResource,
	NodeKindSplitText,
	NodeKindRns,
}

// labelProps maps each node kind to the property holding its display label
var labelProps = map[NodeKind]string{
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

// Node represents an entity in the news graph
type Node struct {
	ID        int64     `json:"id"`
	Kind      NodeKind  `json:"kind"`
	ArticleID *int64    `json:"article_id,omitempty"` // Set for news nodes only
	Props     Metadata  `json:"props,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayLabel returns the human-readable label of the node, chosen by its
// kind-specific property. Unknown kinds yield an empty label.
func (n *Node) DisplayLabel() string {
	prop, ok := labelProps[n.Kind]
	if !ok {
		return ""
	}
	value, ok := n.Props[prop]
	if !ok {
		return ""
	}
	label, ok := value.(string)
	if !ok {
		return ""
	}
	return label
}
