package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/pkg/storeerr"
)

func (s *neoConceptStore) RecordConceptCompletion(ctx context.Context, userID, conceptID any) error {
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
MERGE (u:User {id: $user_id})
WITH u
MATCH (c:Concept {id: $concept_id})
MERGE (u)-[r:COMPLETED]->(c)
SET r.completed_at = $completed_at
`, map[string]any{
			"user_id":      NormalizeID(userID),
			"concept_id":   NormalizeID(conceptID),
			"completed_at": now,
		})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return mapError("user.record_completion", err)
}

func (s *neoConceptStore) RecordRecommendation(ctx context.Context, userID, conceptID any) error {
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
		// The user MERGE sets properties even when the concept MATCH finds
		// nothing, so summary counters cannot signal a missing concept; count
		// the relationship rows instead.
		res, err := tx.Run(ctx, `
MERGE (u:User {id: $user_id})
WITH u
MATCH (c:Concept {id: $concept_id})
MERGE (u)-[r:RECEIVED_RECOMMENDATION]->(c)
SET r.served_at = $served_at
RETURN count(r) AS n
`, map[string]any{
			"user_id":    NormalizeID(userID),
			"concept_id": NormalizeID(conceptID),
			"served_at":  now,
		})
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _ := rec.Get("n")
		if count, _ := n.(int64); count == 0 {
			return nil, storeerr.New(storeerr.KindNotFound, "user.record_recommendation", errEndpointMissing)
		}
		return nil, nil
	})
	return mapError("user.record_recommendation", err)
}

// RecommendationsForUser walks RECOMMENDS edges out of the concepts the user
// has completed, skipping anything already completed.
func (s *neoConceptStore) RecommendationsForUser(ctx context.Context, userID any, limit int) ([]*domain.Concept, error) {
	if !s.Enabled() {
		return nil, storeerr.New(storeerr.KindUnavailable, "user.recommendations", errNoClient)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if limit <= 0 {
		limit = 10
	}

	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (u:User {id: $user_id})-[:COMPLETED]->(:Concept)-[:RECOMMENDS]->(rec:Concept)
WHERE NOT (u)-[:COMPLETED]->(rec)
RETURN DISTINCT rec.id AS id, rec.name AS name,
       rec.difficulty_level AS difficulty_level,
       rec.estimated_duration AS estimated_duration
LIMIT $limit
`, map[string]any{
			"user_id": NormalizeID(userID),
			"limit":   int64(limit),
		})
		if err != nil {
			return nil, err
		}
		var concepts []*domain.Concept
		for res.Next(ctx) {
			concepts = append(concepts, conceptFromRecord(res.Record()))
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return concepts, nil
	})
	if err != nil {
		return nil, mapError("user.recommendations", err)
	}
	return out.([]*domain.Concept), nil
}

func (s *neoConceptStore) RecommendationsServed(ctx context.Context) (int64, error) {
	if !s.Enabled() {
		return 0, storeerr.New(storeerr.KindUnavailable, "user.recommendations_served", errNoClient)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (:User)-[r:RECEIVED_RECOMMENDATION]->(:Concept)
RETURN count(r) AS n
`, nil)
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _ := rec.Get("n")
		count, _ := n.(int64)
		return count, nil
	})
	if err != nil {
		return 0, mapError("user.recommendations_served", err)
	}
	return out.(int64), nil
}
