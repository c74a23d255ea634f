package domain

import "time"

// EndpointType selects the probe method for a monitored endpoint.
type EndpointType string

// Supported endpoint probe types. Unknown types fail closed when probed.
const (
	EndpointNetwork EndpointType = "network" // ICMP ping
	EndpointTCP     EndpointType = "tcp"     // raw TCP connect
	EndpointHTTP    EndpointType = "http"    // HTTP GET
	EndpointHTTPS   EndpointType = "https"   // HTTPS GET
)

// Valid reports whether the endpoint type has a probe implementation.
func (t EndpointType) Valid() bool {
	switch t {
	case EndpointNetwork, EndpointTCP, EndpointHTTP, EndpointHTTPS:
		return true
	default:
		return false
	}
}

// EndpointStatus is the last observed availability of an endpoint.
type EndpointStatus string

// Endpoint availability states.
const (
	EndpointStatusUnknown EndpointStatus = "unknown"
	EndpointStatusUp      EndpointStatus = "up"
	EndpointStatusDown    EndpointStatus = "down"
)

// Endpoint describes a monitored target (host, port, or URL) and its
// observed availability history.
type Endpoint struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// Name is the unique human-readable endpoint name.
	Name string `json:"name"`

	// Type selects the probe method.
	Type EndpointType `json:"type"`

	// Target is the IP address or hostname probed.
	Target string `json:"target"`

	// Port is required for TCP probes and optional for HTTP(S).
	Port *int `json:"port,omitempty"`

	// CheckIntervalSeconds is the desired interval between checks.
	CheckIntervalSeconds int `json:"check_interval_seconds"`

	// Status is the last observed availability.
	Status EndpointStatus `json:"status"`

	// LastCheck is when the endpoint was last probed.
	LastCheck *time.Time `json:"last_check,omitempty"`

	// LastUp is when the endpoint was last observed up.
	LastUp *time.Time `json:"last_up,omitempty"`

	// LastDown is when the endpoint was last observed down.
	LastDown *time.Time `json:"last_down,omitempty"`

	// ConsecutiveFailures counts probe failures since the last success.
	ConsecutiveFailures int `json:"consecutive_failures"`

	// LastError is the most recent probe error text, if any.
	LastError string `json:"last_error,omitempty"`

	// Description is optional free-form detail.
	Description string `json:"description,omitempty"`

	// DocPath is the generated documentation file, relative to the repo root.
	DocPath string `json:"doc_path,omitempty"`

	// WorkItemID links back to the work item that created the endpoint.
	WorkItemID *int64 `json:"work_item_id,omitempty"`

	// ServiceID optionally links the endpoint to a service catalog entry.
	ServiceID *int64 `json:"service_id,omitempty"`

	// CreatedAt is when the endpoint row was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the endpoint row was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsUp reports whether the endpoint was up at the last check.
func (e *Endpoint) IsUp() bool {
	return e.Status == EndpointStatusUp
}
