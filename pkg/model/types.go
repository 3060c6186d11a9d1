package model

// TripType enumerates the kinds of trip the rendering service understands.
type TripType string

const (
	TripTypeLeisure     TripType = "leisure"
	TripTypeBusiness    TripType = "business"
	TripTypeAdventure   TripType = "adventure"
	TripTypeCultural    TripType = "cultural"
	TripTypeRomantic    TripType = "romantic"
	TripTypeFamily      TripType = "family"
	TripTypeExploration TripType = "exploration"
)

// TripTypes lists the accepted trip types in display order.
func TripTypes() []TripType {
	return []TripType{
		TripTypeLeisure,
		TripTypeBusiness,
		TripTypeAdventure,
		TripTypeCultural,
		TripTypeRomantic,
		TripTypeFamily,
		TripTypeExploration,
	}
}

// TimeSlot is the part of the day an activity is scheduled for.
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "Morning"
	TimeSlotAfternoon TimeSlot = "Afternoon"
	TimeSlotEvening   TimeSlot = "Evening"
)

// TimeSlots lists the accepted time slots in display order.
func TimeSlots() []TimeSlot {
	return []TimeSlot{TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening}
}

const (
	DefaultCurrency    = "INR"
	DefaultFlightClass = "Economy"
	DefaultRoomType    = "Standard"
	DefaultTravelers   = "1"
	DefaultDay         = "1"
	DefaultPrice       = "0"
	DefaultNights      = "1"
)

// TravelerInput captures the traveler section of the form.
type TravelerInput struct {
	Name      string `json:"name" yaml:"name" validate:"required"`
	Email     string `json:"email" yaml:"email" validate:"required,simpleemail"`
	Phone     string `json:"phone" yaml:"phone" validate:"required"`
	Travelers string `json:"numberOfTravelers" yaml:"numberOfTravelers" validate:"required,travelers"`
}

// TripInput captures the trip section. Day and night counts are not part of
// the input; they are derived when the payload is built.
type TripInput struct {
	Destination   string `json:"destination" yaml:"destination" validate:"required"`
	DepartureFrom string `json:"departureFrom" yaml:"departureFrom" validate:"required"`
	DepartureDate string `json:"departureDate" yaml:"departureDate" validate:"required"`
	ArrivalDate   string `json:"arrivalDate" yaml:"arrivalDate" validate:"required"`
	TripType      string `json:"tripType" yaml:"tripType" validate:"omitempty,triptype"`
}

// ActivityInput is one row of the activities field group. ID is generated
// when the row is appended and never edited.
type ActivityInput struct {
	ID          string `json:"activityId" yaml:"activityId"`
	Name        string `json:"activityName" yaml:"activityName" validate:"required"`
	Description string `json:"description" yaml:"description"`
	Day         string `json:"day" yaml:"day" validate:"required"`
	TimeSlot    string `json:"timeSlot" yaml:"timeSlot" validate:"omitempty,timeslot"`
	Price       string `json:"price" yaml:"price"`
	Duration    string `json:"duration" yaml:"duration"`
	Notes       string `json:"notes" yaml:"notes"`
}

// FlightInput is one row of the flights field group. Every field is optional.
type FlightInput struct {
	Date          string `json:"date" yaml:"date"`
	Airline       string `json:"airline" yaml:"airline"`
	Route         string `json:"route" yaml:"route"`
	FlightNumber  string `json:"flightNumber" yaml:"flightNumber"`
	DepartureTime string `json:"departureTime" yaml:"departureTime"`
	ArrivalTime   string `json:"arrivalTime" yaml:"arrivalTime"`
	Class         string `json:"class" yaml:"class"`
}

// HotelInput is one row of the hotels field group. Every field is optional.
type HotelInput struct {
	City      string `json:"city" yaml:"city"`
	CheckIn   string `json:"checkIn" yaml:"checkIn"`
	CheckOut  string `json:"checkOut" yaml:"checkOut"`
	Nights    string `json:"nights" yaml:"nights"`
	HotelName string `json:"hotelName" yaml:"hotelName"`
	RoomType  string `json:"roomType" yaml:"roomType"`
	Address   string `json:"address" yaml:"address"`
}

// PaymentPlanInput holds the payment section of additional services.
type PaymentPlanInput struct {
	TotalAmount  string   `json:"totalAmount" yaml:"totalAmount"`
	Currency     string   `json:"currency" yaml:"currency"`
	Installments []string `json:"installments" yaml:"installments"`
}

// VisaInput holds visa details of additional services.
type VisaInput struct {
	Required       bool   `json:"required" yaml:"required"`
	Type           string `json:"type" yaml:"type"`
	Validity       string `json:"validity" yaml:"validity"`
	ProcessingDate string `json:"processingDate" yaml:"processingDate"`
}

// ServicesInput captures the additional services section.
type ServicesInput struct {
	ScopeOfServices []string         `json:"scopeOfServices" yaml:"scopeOfServices"`
	SpecialNotes    string           `json:"specialNotes" yaml:"specialNotes"`
	PaymentPlan     PaymentPlanInput `json:"paymentPlan" yaml:"paymentPlan"`
	Visa            VisaInput        `json:"visa" yaml:"visa"`
}

// FormState is the full set of user-entered values at a point in time.
type FormState struct {
	Traveler   TravelerInput   `json:"userDetails" yaml:"userDetails"`
	Trip       TripInput       `json:"tripDetails" yaml:"tripDetails"`
	Activities []ActivityInput `json:"activities" yaml:"activities" validate:"min=1,dive"`
	Flights    []FlightInput   `json:"flights" yaml:"flights"`
	Hotels     []HotelInput    `json:"hotels" yaml:"hotels"`
	Services   ServicesInput   `json:"additionalServices" yaml:"additionalServices"`
}

// Clone returns a deep copy so callers can hand state to other components
// without sharing slices.
func (s FormState) Clone() FormState {
	out := s
	out.Activities = append([]ActivityInput(nil), s.Activities...)
	out.Flights = append([]FlightInput(nil), s.Flights...)
	out.Hotels = append([]HotelInput(nil), s.Hotels...)
	out.Services.ScopeOfServices = append([]string(nil), s.Services.ScopeOfServices...)
	out.Services.PaymentPlan.Installments = append([]string(nil), s.Services.PaymentPlan.Installments...)
	return out
}
