// Package job contains the Job aggregate: a single interpretation booking,
// its lifecycle state machine, and its translator assignment history.
//
// A Job moves through a closed set of statuses (pending, assigned, started,
// completed, timedout, withdrawbefore24, withdrawafter24,
// not_carried_out_customer). Status changes requested by administrators go
// through an explicit transition table; each entry validates the change
// against the current state and either applies it, returning audit entries
// and notification effects for the caller to execute after persisting, or
// rejects it, leaving the job untouched.
//
// The assignment history is an ordered sequence owned by the aggregate.
// The structural invariant is that at most one entry is open (neither
// cancelled nor completed) at any time; every mutating method maintains it
// at write time rather than relying on query-time filtering.
package job
