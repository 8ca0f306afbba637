package types

import "time"

// Brand identifies one of the two property lines.
type Brand string

const (
	// BrandGlamp covers the GlampLodge nature accommodations.
	BrandGlamp Brand = "glamp"
	// BrandLodge covers the LodgeCity urban rentals.
	BrandLodge Brand = "lodge"
)

// Market identifies a geographic market.
type Market string

const (
	MarketCanada   Market = "canada"
	MarketPakistan Market = "pakistan"
)

// Segment selects one listing dataset: a brand within a market.
type Segment struct {
	Brand  Brand  `json:"brand" yaml:"brand" example:"glamp"`
	Market Market `json:"market" yaml:"market" example:"canada"`
}

// String renders the canonical "brand/market" form used in URLs and logs.
func (s Segment) String() string { return string(s.Brand) + "/" + string(s.Market) }

// ListingRecord is a single accommodation as shown on the site. Records are
// immutable once loaded from a dataset.
type ListingRecord struct {
	// Identifier unique within its dataset.
	// example: 1
	ID int `json:"id" yaml:"id" example:"1"`
	// Display title.
	// example: Luxury Geodesic Dome
	Title string `json:"title" yaml:"title" example:"Luxury Geodesic Dome"`
	// Human-readable location.
	// example: Banff, AB
	Location string `json:"location" yaml:"location" example:"Banff, AB"`
	// Short category label shown as a badge.
	// example: Mountain View
	Type string `json:"type" yaml:"type" example:"Mountain View"`
	// Display price including currency.
	// example: CAD $250
	Price string `json:"price" yaml:"price" example:"CAD $250"`
	// Billing period for the price.
	// example: per night
	Period string `json:"period" yaml:"period" example:"per night"`
	// Average guest rating.
	// example: 4.9
	Rating float64 `json:"rating" yaml:"rating" example:"4.9"`
	// Number of reviews behind the rating.
	// example: 89
	Reviews int `json:"reviews" yaml:"reviews" example:"89"`
	// Marketing description.
	Description string `json:"description" yaml:"description"`
	// Primary media URL.
	Image string `json:"image" yaml:"image"`
	// Ordered gallery URLs. May be omitted in source data; consumers must
	// go through Gallery(), never read Images directly.
	Images []string `json:"images,omitempty" yaml:"images,omitempty"`
	// Short feature strings, in display order.
	Features []string `json:"features" yaml:"features"`
	// Short badge strings, in display order.
	Badges []string `json:"badges" yaml:"badges"`
	// Optional outbound booking URL, opened in a new browsing context.
	ExternalBookingLink string `json:"externalBookingLink,omitempty" yaml:"externalBookingLink,omitempty"`
}

// Gallery returns the authoritative image sequence: Images when present,
// otherwise the single primary image.
func (r ListingRecord) Gallery() []string {
	if len(r.Images) > 0 {
		return r.Images
	}
	return []string{r.Image}
}

// Role classifies an account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// UserProfile is the profile document paired with an identity. Exactly one
// exists per identity; it is provisioned lazily on first sign-in.
type UserProfile struct {
	// Identity provider user id.
	// example: 5f3c9c1e-8a4e-4e0f-9d7a-2b1a6c0d4e21
	UID string `json:"uid" example:"5f3c9c1e-8a4e-4e0f-9d7a-2b1a6c0d4e21"`
	// Account email.
	// example: guest@example.com
	Email string `json:"email" example:"guest@example.com"`
	// Display name shown in the header avatar.
	// example: Avery Guest
	DisplayName string `json:"displayName" example:"Avery Guest"`
	// Account role.
	// example: customer
	Role Role `json:"role" example:"customer"`
	// Server-assigned creation time.
	CreatedAt time.Time `json:"createdAt"`
	// Server-assigned last sign-in time.
	LastLogin time.Time `json:"lastLogin"`
}
