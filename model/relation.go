package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RelationType names the type of a relationship in the news graph
type RelationType string

const (
	RelationTypeChildOf        RelationType = "CHILD_OF"
	RelationTypePublishedBy    RelationType = "PUBLISHED_BY"
	RelationTypeCategorisedAs  RelationType = "CATEGORISED_AS"
	RelationTypePublishedOn    RelationType = "PUBLISHED_ON"
	RelationTypeInIndustry     RelationType = "IN_INDUSTRY"
	RelationTypeInSector       RelationType = "IN_SECTOR"
	RelationTypeTaggedWith     RelationType = "TAGGED_WITH"
	RelationTypeMentions       RelationType = "MENTIONS"
	RelationTypeHoldsPosition  RelationType = "HOLDS_POSITION"
	RelationTypeAffiliatedWith RelationType = "AFFILIATED_WITH"
)

// Edge represents a stored relationship between two nodes in the news graph
type Edge struct {
	ID           uuid.UUID    `json:"id"`
	SourceNodeID int64        `json:"source_node_id"`
	TargetNodeID int64        `json:"target_node_id"`
	EdgeType     RelationType `json:"edge_type"`
	Metadata     Metadata     `json:"metadata,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Relation is the expanded view of an edge as collected during graph
// expansion: endpoint identifiers, endpoint display labels and the
// relationship type.
type Relation struct {
	StartID    int64        `json:"start_id"`
	StartKind  NodeKind     `json:"start_kind"`
	StartLabel string       `json:"start_label"`
	EdgeID     uuid.UUID    `json:"edge_id"`
	Type       RelationType `json:"type"`
	EndID      int64        `json:"end_id"`
	EndKind    NodeKind     `json:"end_kind"`
	EndLabel   string       `json:"end_label"`
}

// Key returns a stable identity for set-semantics deduplication of relations
func (r Relation) Key() string {
	return fmt.Sprintf("%d|%s|%s|%s|%d|%s", r.StartID, r.StartLabel, r.EdgeID, r.Type, r.EndID, r.EndLabel)
}

// DedupRelations removes duplicate relations, keeping first occurrence order
func DedupRelations(relations []Relation) []Relation {
	seen := make(map[string]bool, len(relations))
	result := make([]Relation, 0, len(relations))
	for _, relation := range relations {
		key := relation.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, relation)
	}
	return result
}
