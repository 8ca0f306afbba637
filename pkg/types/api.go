package types

// SignInRequest is the email/password sign-in payload.
type SignInRequest struct {
	// Account email.
	// example: guest@example.com
	Email string `json:"email" example:"guest@example.com"`
	// Account password.
	// example: hunter22
	Password string `json:"password" example:"hunter22"`
}

// SignUpRequest creates a new account plus its profile document.
type SignUpRequest struct {
	// Account email.
	// example: guest@example.com
	Email string `json:"email" example:"guest@example.com"`
	// Account password, at least 6 characters.
	// example: hunter22
	Password string `json:"password" example:"hunter22"`
	// Display name stored on the identity and the profile.
	// example: Avery Guest
	DisplayName string `json:"displayName" example:"Avery Guest"`
}

// OAuthSignInRequest is the popup-style OAuth sign-in payload.
type OAuthSignInRequest struct {
	// Email asserted by the OAuth provider.
	// example: guest@example.com
	Email string `json:"email" example:"guest@example.com"`
	// Display name asserted by the OAuth provider.
	// example: Avery Guest
	DisplayName string `json:"displayName,omitempty" example:"Avery Guest"`
}

// UpdateProfileRequest carries partial profile updates. Nil fields are left
// untouched.
type UpdateProfileRequest struct {
	// New display name. Also pushed to the identity provider when set.
	DisplayName *string `json:"displayName,omitempty"`
}

// SessionResponse is the authenticated-state view returned by auth endpoints.
type SessionResponse struct {
	// True when a user is signed in.
	// example: true
	Authenticated bool `json:"authenticated" example:"true"`
	// Bearer token for subsequent requests. Empty when not authenticated.
	Token string `json:"token,omitempty"`
	// Profile document, present once provisioning completed.
	Profile *UserProfile `json:"profile,omitempty"`
}

// SegmentsResponse lists the datasets the catalog can serve.
type SegmentsResponse struct {
	Segments []Segment `json:"segments"`
}

// ListingsResponse wraps one segment's records.
type ListingsResponse struct {
	Segment  Segment         `json:"segment"`
	Listings []ListingRecord `json:"listings"`
}

// GridSlotKind distinguishes rendered slots in a grid snapshot.
type GridSlotKind string

const (
	// GridSlotCard is a fully materialized listing card.
	GridSlotCard GridSlotKind = "card"
	// GridSlotSkeleton is a placeholder for a not-yet-revealed record.
	GridSlotSkeleton GridSlotKind = "skeleton"
	// GridSlotEmpty is the single "coming soon" slot of an empty dataset.
	GridSlotEmpty GridSlotKind = "empty"
)

// GridSlot is one position in a grid snapshot.
type GridSlot struct {
	Kind GridSlotKind `json:"kind" example:"card"`
	// Record backing the slot; only set for card slots.
	Record *ListingRecord `json:"record,omitempty"`
}

// GridStateResponse is a snapshot of one segment's progressive grid.
type GridStateResponse struct {
	Segment Segment `json:"segment"`
	// Records currently revealed.
	// example: 3
	VisibleCount int `json:"visibleCount" example:"3"`
	// Total records in the dataset.
	// example: 7
	TotalRecords int `json:"totalRecords" example:"7"`
	// True once every record is revealed; further sentinel hits are no-ops.
	// example: false
	Exhausted bool `json:"exhausted" example:"false"`
	// Exactly TotalRecords slots (or one empty slot for an empty dataset).
	Slots []GridSlot `json:"slots"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
