package entity

import (
	"strings"

	apperrors "github.com/textlens/text-analysis-platform/pkg/errors"
)

// MinRelationshipTextLength is the minimum trimmed input length for
// relationship analysis.
const MinRelationshipTextLength = 20

// Relationship links two entities by their category pair. The link is purely
// type-based; textual proximity is not checked.
type Relationship struct {
	Type     string `json:"type"`
	Entity1  string `json:"entity1"`
	Entity2  string `json:"entity2"`
	Relation string `json:"relationship"`
}

// RelationshipResult aggregates inferred relationships.
type RelationshipResult struct {
	Relationships []Relationship `json:"relationships"`
	Count         int            `json:"relationship_count"`
	Types         []string       `json:"relationship_types"`
}

var relationshipPairs = []struct {
	first, second Category
	relation      string
}{
	{Person, Organization, "associated_with"},
	{Person, Location, "located_in"},
	{Organization, Location, "based_in"},
}

// InferRelationships emits one relationship per ordered pair across the
// PERSON/ORGANIZATION, PERSON/LOCATION and ORGANIZATION/LOCATION category
// pairs: a full cartesian product with no symmetry collapsing and no
// relevance filtering.
func InferRelationships(entities Collection) *RelationshipResult {
	var relationships []Relationship
	for _, pair := range relationshipPairs {
		relType := string(pair.first) + "-" + string(pair.second)
		for _, a := range entities[pair.first] {
			for _, b := range entities[pair.second] {
				relationships = append(relationships, Relationship{
					Type:     relType,
					Entity1:  a.Text,
					Entity2:  b.Text,
					Relation: pair.relation,
				})
			}
		}
	}

	seen := make(map[string]bool)
	var types []string
	for _, r := range relationships {
		if !seen[r.Type] {
			seen[r.Type] = true
			types = append(types, r.Type)
		}
	}
	return &RelationshipResult{
		Relationships: relationships,
		Count:         len(relationships),
		Types:         types,
	}
}

// AnalyzeRelationships extracts entities from text and infers their
// relationships in one pass.
func (e *Extractor) AnalyzeRelationships(text string) (*Result, *RelationshipResult, error) {
	if len(strings.TrimSpace(text)) < MinRelationshipTextLength {
		return nil, nil, apperrors.Newf(apperrors.ErrInputTooShort,
			"relationship analysis requires at least %d characters", MinRelationshipTextLength)
	}
	result, err := e.Extract(text)
	if err != nil {
		return nil, nil, err
	}
	return result, InferRelationships(result.Entities), nil
}
