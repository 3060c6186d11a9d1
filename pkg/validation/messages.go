package validation

import (
	"strings"
	"unicode"
)

// messages is keyed by the index-free field path, then by rule tag.
var messages = map[string]map[string]string{
	"userDetails.name": {
		"required": "Name is required",
	},
	"userDetails.email": {
		"required":    "Email is required",
		"simpleemail": "Invalid email address",
	},
	"userDetails.phone": {
		"required": "Phone number is required",
	},
	"userDetails.numberOfTravelers": {
		"required":  "Number of travelers is required",
		"travelers": "At least 1 traveler required",
	},
	"tripDetails.destination": {
		"required": "Destination is required",
	},
	"tripDetails.departureFrom": {
		"required": "Departure location is required",
	},
	"tripDetails.departureDate": {
		"required": "Departure date is required",
	},
	"tripDetails.arrivalDate": {
		"required": "Return date is required",
	},
	"tripDetails.tripType": {
		"triptype": "Invalid trip type",
	},
	"activities": {
		"min": "At least one activity is required",
	},
	"activities.activityName": {
		"required": "Activity name is required",
	},
	"activities.day": {
		"required": "Day is required",
	},
	"activities.timeSlot": {
		"timeslot": "Invalid time slot",
	},
}

func message(path, tag string) string {
	key := strings.Join(stripNumericSegments(parsePathSegments(path)), ".")
	if byTag, ok := messages[key]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	label := humanize(lastSegment(key))
	if tag == "required" {
		return label + " is required"
	}
	return label + " is invalid"
}

func lastSegment(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// humanize turns "departureFrom" into "Departure from".
func humanize(name string) string {
	if name == "" {
		return "Field"
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
