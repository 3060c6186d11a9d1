// Package fieldgroup holds the repeatable sections of the itinerary form:
// activities, flights, and hotels. Each group is an ordered collection keyed
// by position. Activities additionally carry a generated identity that stays
// with the row when earlier rows are removed, and the activities group can
// never become empty.
package fieldgroup
