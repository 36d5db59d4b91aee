package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/carebase/terminology/models/fhir"
	"github.com/carebase/terminology/query"
	"github.com/carebase/terminology/terminology"
)

type server struct {
	db       *sqlx.DB
	resolver *terminology.Resolver
	log      zerolog.Logger
}

func newServer(db *sqlx.DB, resolver *terminology.Resolver, log zerolog.Logger) *server {
	return &server{
		db:       db,
		resolver: resolver,
		log:      log,
	}
}

var resourceTypes = map[string]fhir.ResourceType{
	"CodeSystem": fhir.ResourceTypeCodeSystem,
	"ValueSet":   fhir.ResourceTypeValueSet,
	"ConceptMap": fhir.ResourceTypeConceptMap,
}

// handleResolve returns the single current resource for a canonical URL.
func (s *server) handleResolve(w http.ResponseWriter, r *http.Request) {
	kind, ok := resourceTypes[mux.Vars(r)["resourceType"]]
	if !ok {
		s.writeOutcome(w, http.StatusNotFound, "not-supported", "Unknown resource type")
		return
	}

	url := r.URL.Query().Get("url")
	if url == "" {
		s.writeOutcome(w, http.StatusBadRequest, "required", "Parameter 'url' is required")
		return
	}

	resource, err := s.resolver.Resolve(r.Context(), kind, url)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resource)
}

// handleSubsumes reports the hierarchical relationship between two codes of
// a code system.
func (s *server) handleSubsumes(w http.ResponseWriter, r *http.Request) {
	system := r.URL.Query().Get("system")
	codeA := r.URL.Query().Get("codeA")
	codeB := r.URL.Query().Get("codeB")
	if system == "" || codeA == "" || codeB == "" {
		s.writeOutcome(w, http.StatusBadRequest, "required", "Parameters 'system', 'codeA' and 'codeB' are required")
		return
	}

	resource, err := s.resolver.Resolve(r.Context(), fhir.ResourceTypeCodeSystem, system)
	if err != nil {
		s.writeError(w, err)
		return
	}
	cs, ok := resource.(*fhir.CodeSystem)
	if !ok {
		s.writeOutcome(w, http.StatusInternalServerError, "exception", "Resolved resource is not a CodeSystem")
		return
	}

	outcome, err := s.subsumes(r.Context(), cs, codeA, codeB)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"resourceType": "Parameters",
		"parameter": []map[string]interface{}{
			{"name": "outcome", "valueCode": outcome},
		},
	})
}

func (s *server) subsumes(ctx context.Context, cs *fhir.CodeSystem, codeA, codeB string) (string, error) {
	if codeA == codeB {
		return "equivalent", nil
	}

	reachable, err := s.isAncestor(ctx, cs, codeB, codeA)
	if err != nil {
		return "", err
	}
	if reachable {
		return "subsumes", nil
	}

	reachable, err = s.isAncestor(ctx, cs, codeA, codeB)
	if err != nil {
		return "", err
	}
	if reachable {
		return "subsumed-by", nil
	}

	return "not-subsumed", nil
}

// isAncestor executes the recursive traversal query seeded at startCode.
func (s *server) isAncestor(ctx context.Context, cs *fhir.CodeSystem, startCode, ancestorCode string) (bool, error) {
	csID := ""
	if cs.Id != nil {
		csID = *cs.Id
	}

	seed := query.NewSelect(terminology.CodingTable,
		terminology.CodingTable+".id",
		terminology.CodingTable+".code",
		terminology.CodingTable+".display")
	seed.Where(terminology.CodingTable+".code_system_id = ?", csID)
	seed.Where(terminology.CodingTable+".code = ?", startCode)

	q, err := terminology.FindAncestor(seed, cs, ancestorCode)
	if err != nil {
		return false, err
	}

	sqlStr, args, err := q.SQL()
	if err != nil {
		return false, err
	}

	var code, display sql.NullString
	err = s.db.QueryRowxContext(ctx, sqlStr, args...).Scan(&code, &display)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, terminology.ErrNotFound):
		s.writeOutcome(w, http.StatusNotFound, "not-found", err.Error())
	case errors.Is(err, terminology.ErrInvalidFilter):
		s.writeOutcome(w, http.StatusBadRequest, "invalid", err.Error())
	default:
		s.log.Error().Err(err).Msg("Request failed")
		s.writeOutcome(w, http.StatusInternalServerError, "exception", "Internal error")
	}
}

func (s *server) writeOutcome(w http.ResponseWriter, status int, code, diagnostics string) {
	s.writeJSON(w, status, map[string]interface{}{
		"resourceType": "OperationOutcome",
		"issue": []map[string]interface{}{
			{"severity": "error", "code": code, "diagnostics": diagnostics},
		},
	})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/fhir+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("Failed to write response")
	}
}
