// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the booking system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - EligibilityMatcher: A domain service computing which translators may
//     see and accept a booking
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
