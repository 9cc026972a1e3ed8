package graph

import (
	"context"
	"errors"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/oumacavin/smartlearn-backend/internal/pkg/storeerr"
)

var (
	errNoClient        = errors.New("graph client not configured")
	errEndpointMissing = errors.New("relationship endpoint not found")
)

// mapError translates a neo4j driver failure into the adapter's StoreError.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *storeerr.StoreError
	if errors.As(err, &se) {
		return err
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return storeerr.New(storeerr.KindUnavailable, op, err)
	}

	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		code := neoErr.Code
		switch {
		case strings.Contains(code, "SyntaxError"), strings.Contains(code, "ParameterMissing"):
			return storeerr.New(storeerr.KindSyntax, op, err)
		case strings.Contains(code, "ConstraintValidationFailed"), strings.Contains(code, "Schema"):
			return storeerr.New(storeerr.KindConstraint, op, err)
		case strings.Contains(code, "TransientError"), strings.Contains(code, "ServiceUnavailable"):
			return storeerr.New(storeerr.KindUnavailable, op, err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "unable to retrieve routing table"),
		strings.Contains(msg, "timeout"):
		return storeerr.New(storeerr.KindUnavailable, op, err)
	default:
		return storeerr.New(storeerr.KindInternal, op, err)
	}
}
