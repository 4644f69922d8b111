package models

import "time"

// Installer directory statuses. Only Active installers are eligible for
// matching; Pending and Inactive records are filtered out at the source.
const (
	InstallerStatusActive   = "Active"
	InstallerStatusInactive = "Inactive"
	InstallerStatusPending  = "Pending"
)

// Installation job lifecycle. Jobs are created Pending at checkout and moved
// forward by the order-created webhook or by manual updates.
const (
	JobStatusPending   = "Pending"
	JobStatusConfirmed = "Confirmed"
	JobStatusCompleted = "Completed"
	JobStatusCancelled = "Cancelled"
)

// PendingJobRef is the reference an installation job is created under at
// checkout and resolved by the order-created webhook. Both sides must go
// through this helper; the convention lives nowhere else.
func PendingJobRef(orderID string) string {
	return "PENDING-" + orderID
}

// CatalogItem is a purchasable tire listing from the commerce platform.
// Brand is the first whitespace-delimited token of the title, Model the rest.
type CatalogItem struct {
	ID               string   `json:"id"`
	VariantID        string   `json:"variant_id"`
	Title            string   `json:"title"`
	Brand            string   `json:"brand"`
	Model            string   `json:"model"`
	Price            float64  `json:"price"`
	Currency         string   `json:"currency"`
	ImageURL         string   `json:"image_url,omitempty"`
	Tags             []string `json:"tags"`
	AvailableForSale bool     `json:"available_for_sale"`
	Stock            int      `json:"stock"`
}

// Candidate is a model-suggested tire description before it is matched
// against real inventory.
type Candidate struct {
	Brand      string   `json:"brand"`
	Model      string   `json:"model"`
	Size       string   `json:"size,omitempty"`
	Season     string   `json:"season"`
	PriceRange string   `json:"price_range"`
	MatchScore int      `json:"match_score"`
	Reason     string   `json:"reason,omitempty"`
	Features   []string `json:"features"`
}

// TireProduct is a catalog item joined with the candidate annotations that
// matched it. MatchScore is a percentage (0-100).
type TireProduct struct {
	CatalogItem
	MatchScore int      `json:"match_score"`
	Season     string   `json:"season"`
	PriceRange string   `json:"price_range"`
	Features   []string `json:"features"`
	Reason     string   `json:"reason,omitempty"`
	InstallFee float64  `json:"install_fee"`
}

// InstallerRecord is a service provider from the installer directory.
// Lat/Lng are nil when the record has no coordinates; such records are
// excluded from distance search but still appear in the active listing.
type InstallerRecord struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Lat               *float64 `json:"lat,omitempty"`
	Lng               *float64 `json:"lng,omitempty"`
	PricePerTire      float64  `json:"price_per_tire"`
	ServiceRadiusKm   float64  `json:"service_radius_km"`
	Status            string   `json:"status"`
	Rating            float64  `json:"rating"`
	CompletedInstalls int      `json:"completed_installs"`
	DistanceKm        *float64 `json:"distance_km,omitempty"`
}

// InstallationJob links a customer, an installer and a tire selection.
type InstallationJob struct {
	ID            string    `json:"id"`
	JobRef        string    `json:"job_ref"`
	InstallerID   string    `json:"installer_id"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name,omitempty"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	TireBrand     string    `json:"tire_brand,omitempty"`
	TireModel     string    `json:"tire_model,omitempty"`
	Quantity      int       `json:"quantity"`
	OrderID       string    `json:"order_id,omitempty"`
	OrderNumber   string    `json:"order_number,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
