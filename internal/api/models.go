package api

import "time"

// All entities here are owned by the backend; the client holds transient
// read-mostly copies.

type Service struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
}

type AuthResult struct {
	Token     string `json:"token"`
	Phone     string `json:"phoneNumber"`
	Role      string `json:"role"`
	IsNewUser bool   `json:"isNewUser"`
	Message   string `json:"message,omitempty"`
}

type SortKey string

const (
	SortByDistance SortKey = "distance"
	SortByRating   SortKey = "rating"
	SortByPrice    SortKey = "price"
)

type SearchRequest struct {
	ServiceID int64    `json:"serviceId"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	RadiusKm  int      `json:"radiusKm"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	MinRating *float64 `json:"minRating,omitempty"`
	SortBy    SortKey  `json:"sortBy,omitempty"`
}

type ProviderResult struct {
	ID                 int64   `json:"id"`
	BusinessName       string  `json:"businessName"`
	City               string  `json:"city"`
	PhotoURL           string  `json:"photoUrl,omitempty"`
	Rating             float64 `json:"rating"`
	TotalReviews       int     `json:"totalReviews"`
	DistanceKm         float64 `json:"distanceKm"`
	StartingPrice      float64 `json:"startingPrice"`
	AvailabilityStatus string  `json:"availabilityStatus"`
}

type ProviderDetail struct {
	ProviderResult
	Address         string            `json:"address"`
	Pincode         string            `json:"pincode"`
	Bio             string            `json:"bio,omitempty"`
	ExperienceYears int               `json:"experienceYears"`
	Services        []ProviderService `json:"services"`
}

// Profile is the provider's own view of their profile, including
// onboarding progress.
type Profile struct {
	BusinessName                string  `json:"businessName"`
	Address                     string  `json:"address"`
	City                        string  `json:"city"`
	Pincode                     string  `json:"pincode"`
	Latitude                    float64 `json:"latitude"`
	Longitude                   float64 `json:"longitude"`
	Bio                         string  `json:"bio,omitempty"`
	ExperienceYears             int     `json:"experienceYears"`
	PhotoURL                    string  `json:"photoUrl,omitempty"`
	AadharURL                   string  `json:"aadharUrl,omitempty"`
	ProfileCompletionPercentage int     `json:"profileCompletionPercentage"`
	AvailabilityStatus          string  `json:"availabilityStatus"`
	Verified                    bool    `json:"verified"`
	Rating                      float64 `json:"rating"`
	TotalReviews                int     `json:"totalReviews"`
}

type ProfileUpdate struct {
	BusinessName    string  `json:"businessName"`
	Address         string  `json:"address"`
	City            string  `json:"city"`
	Pincode         string  `json:"pincode"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Bio             string  `json:"bio,omitempty"`
	ExperienceYears int     `json:"experienceYears"`
}

const (
	AvailabilityAvailable = "AVAILABLE"
	AvailabilityOffline   = "OFFLINE"
)

type ProviderService struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	BasePrice       float64 `json:"basePrice"`
	ExperienceYears int     `json:"experienceYears"`
	Description     string  `json:"description,omitempty"`
	Available       bool    `json:"available"`
}

type ProviderServiceRequest struct {
	ServiceID       int64   `json:"serviceId"`
	BasePrice       float64 `json:"basePrice"`
	ExperienceYears int     `json:"experienceYears"`
	Description     string  `json:"description,omitempty"`
	Available       bool    `json:"available"`
}

type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingAccepted   BookingStatus = "ACCEPTED"
	BookingRejected   BookingStatus = "REJECTED"
	BookingInProgress BookingStatus = "IN_PROGRESS"
	BookingCompleted  BookingStatus = "COMPLETED"
	BookingCancelled  BookingStatus = "CANCELLED"
)

type Booking struct {
	ID                 int64         `json:"id"`
	Status             BookingStatus `json:"status"`
	ScheduledDateTime  time.Time     `json:"scheduledDateTime"`
	QuotedPrice        float64       `json:"quotedPrice"`
	FinalPrice         *float64      `json:"finalPrice,omitempty"`
	ServiceName        string        `json:"serviceName"`
	CustomerName       string        `json:"customerName,omitempty"`
	CustomerPhone      string        `json:"customerPhone,omitempty"`
	ProviderName       string        `json:"providerName,omitempty"`
	ProviderPhone      string        `json:"providerPhone,omitempty"`
	Address            string        `json:"address"`
	Description        string        `json:"description,omitempty"`
	CancellationReason string        `json:"cancellationReason,omitempty"`
	CanBeAccepted      bool          `json:"canBeAccepted"`
	CanBeCompleted     bool          `json:"canBeCompleted"`
	CanBeCancelled     bool          `json:"canBeCancelled"`
	CreatedAt          time.Time     `json:"createdAt"`
}

type BookingRequest struct {
	ProviderID        int64     `json:"providerId"`
	ServiceID         int64     `json:"serviceId"`
	ScheduledDateTime time.Time `json:"scheduledDateTime"`
	Address           string    `json:"address"`
	Latitude          *float64  `json:"latitude,omitempty"`
	Longitude         *float64  `json:"longitude,omitempty"`
	Description       string    `json:"description"`
}

// PaymentOrder is ephemeral: created per payment attempt, verified once.
type PaymentOrder struct {
	OrderID  string  `json:"orderId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"keyId"`
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "PAID"
	PaymentNotPaid PaymentStatus = "NOT_PAID"
	PaymentPending PaymentStatus = "PENDING"
)

type Review struct {
	ID           int64     `json:"id"`
	BookingID    int64     `json:"bookingId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CustomerName string    `json:"customerName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ReviewStats struct {
	AverageRating float64     `json:"averageRating"`
	TotalReviews  int         `json:"totalReviews"`
	Distribution  map[int]int `json:"distribution,omitempty"`
}

type AdminStats struct {
	TotalUsers       int            `json:"totalUsers"`
	TotalProviders   int            `json:"totalProviders"`
	TotalBookings    int            `json:"totalBookings"`
	TotalRevenue     float64        `json:"totalRevenue"`
	PendingProviders int            `json:"pendingProviders"`
	UserGrowthPct    float64        `json:"userGrowthPct"`
	BookingGrowthPct float64        `json:"bookingGrowthPct"`
	RevenueGrowthPct float64        `json:"revenueGrowthPct"`
	RecentActivity   []ActivityItem `json:"recentActivity"`
}

type ActivityItem struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type PendingProvider struct {
	ID           int64     `json:"id"`
	BusinessName string    `json:"businessName"`
	Phone        string    `json:"phoneNumber"`
	City         string    `json:"city"`
	PhotoURL     string    `json:"photoUrl,omitempty"`
	AadharURL    string    `json:"aadharUrl,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

type User struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phoneNumber"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Page wraps the backend's offset-paginated list envelopes.
type ProviderPage struct {
	Items      []PendingProvider `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	TotalItems int               `json:"totalItems"`
}

type UserPage struct {
	Items      []User `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	TotalItems int    `json:"totalItems"`
}
