// Package model defines the itinerary form types. Input types hold values as
// they are typed (numbers arrive as text) and are what the form, the field
// group store, and the validation layer operate on. Payload types are the
// normalized shape posted to the itinerary rendering service; their JSON
// names match the service contract described in pkg/contract.
package model
