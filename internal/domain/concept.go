package domain

// Concept lives in the graph store as a node. IDs are strings in the graph;
// anything joining against a relational key is normalized at the query
// boundary, never here.
type Concept struct {
	ID                string `json:"concept_id"`
	Name              string `json:"name"`
	DifficultyLevel   string `json:"difficulty_level"`
	EstimatedDuration int    `json:"estimated_duration"`
}

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Relationship types between Concept nodes.
const (
	RelPrerequisiteOf = "PREREQUISITE_OF"
	RelRecommends     = "RECOMMENDS"
	RelRelatedTo      = "RELATED_TO"
)

type ConceptRelationship struct {
	FromID   string  `json:"from_id"`
	ToID     string  `json:"to_id"`
	Type     string  `json:"type"`
	Strength float64 `json:"strength"`
}

func ValidRelationshipType(t string) bool {
	switch t {
	case RelPrerequisiteOf, RelRecommends, RelRelatedTo:
		return true
	default:
		return false
	}
}
