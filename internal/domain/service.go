package domain

import "time"

// ServiceType classifies how a service is deployed.
type ServiceType string

// Supported service deployment types.
const (
	ServiceContainer ServiceType = "container"
	ServiceVM        ServiceType = "vm"
	ServiceBareMetal ServiceType = "bare_metal"
)

// ServiceStatus is the operational state of a catalog entry.
type ServiceStatus string

// Service catalog states.
const (
	ServiceStatusActive      ServiceStatus = "active"
	ServiceStatusInactive    ServiceStatus = "inactive"
	ServiceStatusMaintenance ServiceStatus = "maintenance"
)

// Service is a deployed service, container, or VM in the service catalog.
// Work items and endpoints may reference a service as their owner.
type Service struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// Name is the unique service name.
	Name string `json:"name"`

	// Type classifies the deployment.
	Type ServiceType `json:"type"`

	// Host is the VM or machine the service runs on.
	Host string `json:"host"`

	// URL is an optional access URL.
	URL string `json:"url,omitempty"`

	// Description is optional free-form detail.
	Description string `json:"description,omitempty"`

	// Status is the operational state.
	Status ServiceStatus `json:"status"`

	// Ports lists exposed ports as free text (e.g. "8080, 8443").
	Ports string `json:"ports,omitempty"`

	// ConfigPath is the service configuration path in the git repository.
	ConfigPath string `json:"config_path,omitempty"`

	// CreatedAt is when the catalog entry was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the catalog entry was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}
