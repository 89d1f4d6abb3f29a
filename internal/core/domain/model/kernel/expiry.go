package kernel

import "time"

// acceptWindowCutoff separates short-notice bookings, which stay open for
// acceptance until their due time, from long-horizon bookings, which close
// 48 hours ahead of the due time.
const acceptWindowCutoff = 90 * time.Hour

// longHorizonMargin is how far before the due time a long-horizon booking
// stops accepting translators.
const longHorizonMargin = 48 * time.Hour

// WillExpireAt computes the instant at which a pending booking times out if
// no translator has accepted it. The window depends on how far ahead the
// booking was placed: up to 90 hours of notice keeps it open until the due
// time itself, anything further out closes 48 hours before due.
func WillExpireAt(due, createdAt time.Time) time.Time {
	notice := due.Sub(createdAt)
	if notice < 0 {
		notice = -notice
	}
	if notice <= acceptWindowCutoff {
		return due
	}
	return due.Add(-longHorizonMargin)
}
