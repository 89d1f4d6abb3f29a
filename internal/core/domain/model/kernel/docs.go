// Package kernel contains the shared value objects of the booking domain:
// identifiers, the business-hours policy that decides when push notifications
// may be delivered, and the expiry policy that bounds how long a pending
// booking stays open for acceptance.
//
// Everything in this package is immutable and safe for concurrent use.
// Value objects validate themselves on construction so the aggregates that
// embed them never carry invalid state.
package kernel
