// package services maps CINEBASE domain operations to REST calls.
//
// Each resource client is a thin mapper over the api gateway [api.Client]:
// given valid input it returns the parsed response body, and on any transport
// or status error it returns the gateway's tagged error for the caller to
// display. No business logic lives here. The one documented exception is
// [ReviewService.AverageRating], which falls back to a neutral zero value on
// failure because the rating display must never break over a missing
// statistic.
package services
