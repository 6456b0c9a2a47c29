// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads an endpoint registry from a JSON file.
func Load(path string) (*EndpointRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg EndpointRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing endpoint registry: %w", err)
	}
	return &reg, nil
}

// SchemaFor returns the request schema for an endpoint id, nil when the
// endpoint has no body schema or is unknown.
func (r *EndpointRegistry) SchemaFor(id string) map[string]interface{} {
	for _, e := range r.Endpoints {
		if e.ID == id {
			return e.RequestSchema
		}
	}
	return nil
}

// Default is the built-in registry used when no registry file is configured.
func Default() *EndpointRegistry {
	number := func(min *float64) map[string]interface{} {
		p := map[string]interface{}{"type": "number"}
		if min != nil {
			p["minimum"] = *min
		}
		return p
	}
	zero := 0.0

	return &EndpointRegistry{
		Version: "1",
		Endpoints: []Endpoint{
			{
				ID: "auth.register", Method: "POST", Path: "/api/auth/register",
				RequestSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"name", "email", "password"},
					"properties": map[string]interface{}{
						"name":     map[string]interface{}{"type": "string", "minLength": 1},
						"email":    map[string]interface{}{"type": "string", "minLength": 3},
						"password": map[string]interface{}{"type": "string", "minLength": 6},
						"financialProfile": map[string]interface{}{
							"type": "object",
						},
					},
				},
			},
			{
				ID: "auth.login", Method: "POST", Path: "/api/auth/login",
				RequestSchema: map[string]interface{}{
					"type":     "object",
					"required": []interface{}{"email", "password"},
					"properties": map[string]interface{}{
						"email":    map[string]interface{}{"type": "string", "minLength": 3},
						"password": map[string]interface{}{"type": "string", "minLength": 1},
					},
				},
			},
			{
				ID: "profile.upsert", Method: "PUT", Path: "/api/profile", Protected: true,
				RequestSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"monthlyIncome":      number(&zero),
						"creditScore":        number(nil),
						"existingDebt":       number(&zero),
						"savings":            number(&zero),
						"monthlyDebtPayment": number(&zero),
						"creditUtilization":  number(&zero),
						"employmentYears":    number(&zero),
						"existingLoans":      number(&zero),
						"creditHistoryYears": number(&zero),
						"desiredLoanAmount":  number(&zero),
					},
				},
			},
			{
				ID: "simulator.run", Method: "POST", Path: "/api/simulator/run", Protected: true,
				RequestSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"incomeChange":      number(nil),
						"debtChange":        number(nil),
						"savingsChange":     number(nil),
						"creditScoreChange": number(nil),
					},
				},
			},
			{
				ID: "marketplace.rank", Method: "POST", Path: "/api/marketplace/rank", Protected: true,
				RequestSchema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"goal":            map[string]interface{}{"type": "string"},
						"requestedAmount": number(nil),
					},
				},
			},
		},
	}
}
