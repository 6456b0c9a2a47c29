// internal/server/respond.go
package server

import (
	"encoding/json"
	"net/http"

	apierrors "loanpath-api/internal/common/errors"
	"loanpath-api/internal/common/validation"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeBody reads the request body into a generic map, enforcing the
// endpoint's registered schema when one exists.
func (s *Server) decodeBody(r *http.Request, endpointID string) (map[string]interface{}, *apierrors.APIError) {
	var doc map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		return nil, apierrors.NewValidationFailedError("Request body must be valid JSON")
	}

	schema := s.registry.SchemaFor(endpointID)
	result, err := validation.Validate(doc, schema)
	if err != nil {
		return nil, apierrors.NewInternalError(err)
	}
	if !result.Valid {
		return nil, apierrors.NewValidationFailedError(result.Summary())
	}
	return doc, nil
}

// numberField reads an optional numeric field from a decoded body.
func numberField(doc map[string]interface{}, key string) float64 {
	v, ok := doc[key].(float64)
	if !ok {
		return 0
	}
	return v
}

func stringField(doc map[string]interface{}, key string) string {
	v, _ := doc[key].(string)
	return v
}
