package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/pkg/storeerr"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
	"github.com/oumacavin/smartlearn-backend/internal/platform/neo4jdb"
)

// ConceptStore is the graph adapter surface consumed by the admin stores.
// Identifiers cross this boundary as `any` and are normalized to strings
// before binding; see NormalizeID.
type ConceptStore interface {
	Enabled() bool
	EnsureSchema(ctx context.Context)

	UpsertConcept(ctx context.Context, c *domain.Concept) error
	UpsertConcepts(ctx context.Context, concepts []*domain.Concept) error
	GetConcept(ctx context.Context, id any) (*domain.Concept, error)
	ConceptExists(ctx context.Context, id any) (bool, error)
	DeleteConcept(ctx context.Context, id any) error
	LinkConcepts(ctx context.Context, rel *domain.ConceptRelationship) error
	RelationshipsFor(ctx context.Context, id any) ([]*domain.ConceptRelationship, error)

	LinkQuizConcept(ctx context.Context, quizID, conceptID any) error
	SetCoursePublished(ctx context.Context, courseID any, published bool) error

	RecordConceptCompletion(ctx context.Context, userID, conceptID any) error
	RecordRecommendation(ctx context.Context, userID, conceptID any) error
	RecommendationsForUser(ctx context.Context, userID any, limit int) ([]*domain.Concept, error)
	RecommendationsServed(ctx context.Context) (int64, error)
}

type neoConceptStore struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

// NewConceptStore accepts a nil client: graph writes then degrade to no-ops
// and reads report the store as unavailable, matching the optional-graph
// deployment mode.
func NewConceptStore(client *neo4jdb.Client, baseLog *logger.Logger) ConceptStore {
	return &neoConceptStore{client: client, log: baseLog.With("store", "Neo4jConceptStore")}
}

func (s *neoConceptStore) Enabled() bool {
	return s.client != nil && s.client.Driver != nil
}

func (s *neoConceptStore) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: s.client.Database,
	})
}

func (s *neoConceptStore) EnsureSchema(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	// Best-effort; may fail for restricted users.
	stmts := []string{
		`CREATE CONSTRAINT concept_id_unique IF NOT EXISTS FOR (c:Concept) REQUIRE c.id IS UNIQUE`,
		`CREATE CONSTRAINT learner_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
		`CREATE INDEX concept_difficulty_idx IF NOT EXISTS FOR (c:Concept) ON (c.difficulty_level)`,
	}
	for _, stmt := range stmts {
		if res, err := session.Run(ctx, stmt, nil); err != nil {
			s.log.Warn("neo4j schema init failed (continuing)", "error", err)
		} else {
			_, _ = res.Consume(ctx)
		}
	}
}

func conceptProps(c *domain.Concept, now string) map[string]any {
	return map[string]any{
		"id":                 NormalizeID(c.ID),
		"name":               c.Name,
		"difficulty_level":   c.DifficultyLevel,
		"estimated_duration": int64(c.EstimatedDuration),
		"synced_at":          now,
	}
}

func (s *neoConceptStore) UpsertConcept(ctx context.Context, c *domain.Concept) error {
	return s.UpsertConcepts(ctx, []*domain.Concept{c})
}

func (s *neoConceptStore) UpsertConcepts(ctx context.Context, concepts []*domain.Concept) error {
	if !s.Enabled() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	nodes := make([]map[string]any, 0, len(concepts))
	for _, c := range concepts {
		if c == nil || NormalizeID(c.ID) == "" {
			continue
		}
		nodes = append(nodes, conceptProps(c, now))
	}
	if len(nodes) == 0 {
		return nil
	}

	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
UNWIND $nodes AS n
MERGE (c:Concept {id: n.id})
SET c += n
`, map[string]any{"nodes": nodes})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return mapError("concept.upsert", err)
}

func (s *neoConceptStore) GetConcept(ctx context.Context, id any) (*domain.Concept, error) {
	if !s.Enabled() {
		return nil, storeerr.New(storeerr.KindUnavailable, "concept.get", errNoClient)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (c:Concept {id: $id})
RETURN c.id AS id, c.name AS name, c.difficulty_level AS difficulty_level,
       c.estimated_duration AS estimated_duration
`, map[string]any{"id": NormalizeID(id)})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		return conceptFromRecord(rec), nil
	})
	if err != nil {
		if neo4j.IsNeo4jError(err) {
			return nil, mapError("concept.get", err)
		}
		// Single() fails when the node is absent.
		return nil, storeerr.New(storeerr.KindNotFound, "concept.get", err)
	}
	return out.(*domain.Concept), nil
}

func (s *neoConceptStore) ConceptExists(ctx context.Context, id any) (bool, error) {
	if !s.Enabled() {
		return false, storeerr.New(storeerr.KindUnavailable, "concept.exists", errNoClient)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (c:Concept {id: $id})
RETURN count(c) AS n
`, map[string]any{"id": NormalizeID(id)})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _ := rec.Get("n")
		count, _ := n.(int64)
		return count > 0, nil
	})
	if err != nil {
		return false, mapError("concept.exists", err)
	}
	return out.(bool), nil
}

func (s *neoConceptStore) DeleteConcept(ctx context.Context, id any) error {
	if !s.Enabled() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (c:Concept {id: $id})
DETACH DELETE c
`, map[string]any{"id": NormalizeID(id)})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return mapError("concept.delete", err)
}

func (s *neoConceptStore) LinkConcepts(ctx context.Context, rel *domain.ConceptRelationship) error {
	if !s.Enabled() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	// Relationship type is validated upstream against the known set, so
	// string interpolation here only ever sees one of those constants.
	query := `
MATCH (a:Concept {id: $from_id})
MATCH (b:Concept {id: $to_id})
MERGE (a)-[r:` + rel.Type + `]->(b)
SET r.strength = $strength, r.synced_at = $synced_at
`
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{
			"from_id":   NormalizeID(rel.FromID),
			"to_id":     NormalizeID(rel.ToID),
			"strength":  rel.Strength,
			"synced_at": now,
		})
		if err != nil {
			return nil, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return nil, err
		}
		if summary.Counters().RelationshipsCreated() == 0 && summary.Counters().PropertiesSet() == 0 {
			return nil, storeerr.New(storeerr.KindNotFound, "concept.link", errEndpointMissing)
		}
		return nil, nil
	})
	return mapError("concept.link", err)
}

func (s *neoConceptStore) RelationshipsFor(ctx context.Context, id any) ([]*domain.ConceptRelationship, error) {
	if !s.Enabled() {
		return nil, storeerr.New(storeerr.KindUnavailable, "concept.relationships", errNoClient)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (a:Concept {id: $id})-[r]->(b:Concept)
RETURN a.id AS from_id, b.id AS to_id, type(r) AS rel_type, coalesce(r.strength, 0.0) AS strength
`, map[string]any{"id": NormalizeID(id)})
		if err != nil {
			return nil, err
		}
		var rels []*domain.ConceptRelationship
		for res.Next(ctx) {
			rec := res.Record()
			fromID, _ := rec.Get("from_id")
			toID, _ := rec.Get("to_id")
			relType, _ := rec.Get("rel_type")
			strength, _ := rec.Get("strength")
			rels = append(rels, &domain.ConceptRelationship{
				FromID:   asString(fromID),
				ToID:     asString(toID),
				Type:     asString(relType),
				Strength: asFloat(strength),
			})
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return rels, nil
	})
	if err != nil {
		return nil, mapError("concept.relationships", err)
	}
	return out.([]*domain.ConceptRelationship), nil
}

func (s *neoConceptStore) LinkQuizConcept(ctx context.Context, quizID, conceptID any) error {
	if !s.Enabled() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MERGE (q:Quiz {id: $quiz_id})
SET q.synced_at = $synced_at
WITH q
MATCH (c:Concept {id: $concept_id})
MERGE (q)-[r:ASSESSES]->(c)
SET r.synced_at = $synced_at
`, map[string]any{
			"quiz_id":    NormalizeID(quizID),
			"concept_id": NormalizeID(conceptID),
			"synced_at":  now,
		})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return mapError("quiz.link_concept", err)
}

func (s *neoConceptStore) SetCoursePublished(ctx context.Context, courseID any, published bool) error {
	if !s.Enabled() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MERGE (co:Course {id: $course_id})
SET co.published = $published, co.synced_at = $synced_at
`, map[string]any{
			"course_id": NormalizeID(courseID),
			"published": published,
			"synced_at": now,
		})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return mapError("course.set_published", err)
}

func conceptFromRecord(rec *neo4j.Record) *domain.Concept {
	id, _ := rec.Get("id")
	name, _ := rec.Get("name")
	level, _ := rec.Get("difficulty_level")
	duration, _ := rec.Get("estimated_duration")
	return &domain.Concept{
		ID:                asString(id),
		Name:              asString(name),
		DifficultyLevel:   asString(level),
		EstimatedDuration: int(asInt(duration)),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case float64:
		return int64(t)
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	default:
		return 0
	}
}
