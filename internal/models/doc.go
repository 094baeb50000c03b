// Package models defines the data model for the CINEBASE terminal client.
//
// All record types mirror the backend DTOs field-for-field. Movie and review
// records are server-owned; the client never derives values from them beyond
// display formatting. [Movie.AverageRating] in particular is always
// backend-computed, either inlined in the movie payload or fetched from the
// dedicated average endpoint.
package models
