// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the
// repositories defined in internal/store to fulfill application features.
//
// Services receive their dependencies through constructor injection and
// translate storage outcomes (such as an absent task) into sentinel errors
// the API layer maps to HTTP status codes.
package service
