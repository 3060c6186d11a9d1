package fieldgroup

import (
	"fmt"

	"github.com/goliatone/go-itinerary/pkg/model"
)

func setActivityField(row *model.ActivityInput, field, value string) error {
	switch field {
	case "activityId":
		return fmt.Errorf("%w: activities.%s", ErrReadOnlyField, field)
	case "activityName":
		row.Name = value
	case "description":
		row.Description = value
	case "day":
		row.Day = value
	case "timeSlot":
		row.TimeSlot = value
	case "price":
		row.Price = value
	case "duration":
		row.Duration = value
	case "notes":
		row.Notes = value
	default:
		return fmt.Errorf("%w: activities.%s", ErrUnknownField, field)
	}
	return nil
}

func setFlightField(row *model.FlightInput, field, value string) error {
	switch field {
	case "date":
		row.Date = value
	case "airline":
		row.Airline = value
	case "route":
		row.Route = value
	case "flightNumber":
		row.FlightNumber = value
	case "departureTime":
		row.DepartureTime = value
	case "arrivalTime":
		row.ArrivalTime = value
	case "class":
		row.Class = value
	default:
		return fmt.Errorf("%w: flights.%s", ErrUnknownField, field)
	}
	return nil
}

func setHotelField(row *model.HotelInput, field, value string) error {
	switch field {
	case "city":
		row.City = value
	case "checkIn":
		row.CheckIn = value
	case "checkOut":
		row.CheckOut = value
	case "nights":
		row.Nights = value
	case "hotelName":
		row.HotelName = value
	case "roomType":
		row.RoomType = value
	case "address":
		row.Address = value
	default:
		return fmt.Errorf("%w: hotels.%s", ErrUnknownField, field)
	}
	return nil
}
