package model

// Traveler is the normalized traveler section.
type Traveler struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Travelers int    `json:"numberOfTravelers"`
}

// Trip is the normalized trip section with derived counts.
type Trip struct {
	Destination   string   `json:"destination"`
	DepartureFrom string   `json:"departureFrom"`
	DepartureDate string   `json:"departureDate"`
	ArrivalDate   string   `json:"arrivalDate"`
	Days          int      `json:"numberOfDays"`
	Nights        int      `json:"numberOfNights"`
	TripType      TripType `json:"tripType"`
}

// Activity is a normalized activity row.
type Activity struct {
	ID          string   `json:"activityId"`
	Name        string   `json:"activityName"`
	Description string   `json:"description"`
	Day         int      `json:"day"`
	TimeSlot    TimeSlot `json:"timeSlot"`
	Price       float64  `json:"price"`
	Duration    string   `json:"duration"`
	Notes       string   `json:"notes"`
}

// Flight is a normalized flight row.
type Flight struct {
	Date          string `json:"date"`
	Airline       string `json:"airline"`
	Route         string `json:"route"`
	FlightNumber  string `json:"flightNumber"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Class         string `json:"class"`
}

// Hotel is a normalized hotel row.
type Hotel struct {
	City      string `json:"city"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Nights    int    `json:"nights"`
	HotelName string `json:"hotelName"`
	RoomType  string `json:"roomType"`
	Address   string `json:"address"`
}

// PaymentPlan is the normalized payment plan.
type PaymentPlan struct {
	TotalAmount  float64  `json:"totalAmount"`
	Currency     string   `json:"currency"`
	Installments []string `json:"installments"`
}

// Visa carries visa details unchanged from the form.
type Visa struct {
	Required       bool    `json:"required"`
	Type           string  `json:"type"`
	Validity       string  `json:"validity"`
	ProcessingDate *string `json:"processingDate"`
}

// Services is the normalized additional services section.
type Services struct {
	ScopeOfServices []string    `json:"scopeOfServices"`
	SpecialNotes    string      `json:"specialNotes"`
	PaymentPlan     PaymentPlan `json:"paymentPlan"`
	Visa            Visa        `json:"visa"`
}

// Payload is the request body sent to the itinerary rendering service.
type Payload struct {
	Traveler   Traveler   `json:"userDetails"`
	Trip       Trip       `json:"tripDetails"`
	Activities []Activity `json:"activities"`
	Flights    []Flight   `json:"flights"`
	Hotels     []Hotel    `json:"hotels"`
	Services   Services   `json:"additionalServices"`
}

// TripSummary is the summary block the service echoes back.
type TripSummary struct {
	Destination     string `json:"destination"`
	Duration        string `json:"duration"`
	Travelers       int    `json:"travelers"`
	ActivitiesCount int    `json:"activitiesCount"`
}

// Confirmation is what a successful submission surfaces to the user.
type Confirmation struct {
	TripSummary
	// DownloadPath is the relative path returned by the service.
	DownloadPath string `json:"downloadUrl"`
	// DownloadURL is DownloadPath joined to the configured base URL.
	DownloadURL string `json:"downloadLink"`
}
