// pkg/registry/schema.go
package registry

// EndpointRegistry describes the API surface: one entry per route carrying
// its JSON Schema for request bodies. Shipped as a JSON file so tooling and
// the server share a single source of truth.
type EndpointRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Endpoints   []Endpoint `json:"endpoints"`
}

type Endpoint struct {
	ID            string                 `json:"id"`
	Method        string                 `json:"method"`
	Path          string                 `json:"path"`
	Description   string                 `json:"description"`
	Protected     bool                   `json:"protected"`
	RequestSchema map[string]interface{} `json:"requestSchema"`
	Tags          []string               `json:"tags,omitempty"`
}
