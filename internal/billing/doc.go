// Package billing turns raw backend bill records into the amounts and statuses a user sees,
// and folds payment results back into that view.
//
// Everything here is pure except Feedback, which owns a timer. Network calls and session
// handling live in the dashboard package; billing only receives their results.
package billing
