package model

// NewTraveler returns the traveler section as it appears on an empty form.
func NewTraveler() TravelerInput {
	return TravelerInput{Travelers: DefaultTravelers}
}

// NewTrip returns the trip section as it appears on an empty form.
func NewTrip() TripInput {
	return TripInput{TripType: string(TripTypeLeisure)}
}

// NewActivity returns an empty activity row carrying the given identity.
func NewActivity(id string) ActivityInput {
	return ActivityInput{
		ID:       id,
		Day:      DefaultDay,
		TimeSlot: string(TimeSlotMorning),
		Price:    DefaultPrice,
	}
}

// NewFlight returns an empty flight row.
func NewFlight() FlightInput {
	return FlightInput{Class: DefaultFlightClass}
}

// NewHotel returns an empty hotel row.
func NewHotel() HotelInput {
	return HotelInput{
		Nights:   DefaultNights,
		RoomType: DefaultRoomType,
	}
}

// NewServices returns the additional services section of an empty form.
func NewServices() ServicesInput {
	return ServicesInput{
		PaymentPlan: PaymentPlanInput{
			TotalAmount: DefaultPrice,
			Currency:    DefaultCurrency,
		},
	}
}
