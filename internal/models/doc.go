// Package models defines the core domain models for billpay.
//
// # Models
//
//   - UtilityCategory: one of the three fixed utilities a bill can belong to
//   - Bill: a billable obligation fetched from the backend, normalized for arithmetic
//   - Receipt: the backend's confirmation of one paid bill
//   - Reminder: an informational note with a target date
//   - User: the display identity of the logged-in account
//
// # Design Principles
//
// 1. **Server owns the records**: the client only ever flips a Bill from Pending to Paid,
// and only after the backend confirmed the payment.
// 2. **No raw values in arithmetic**: amounts are decimal.Decimal and are always populated,
// even when the wire value was missing or textual.
// 3. **IDs are strings**: the backend emits integer IDs, but nothing on the client does math
// on them, so they are canonicalised to strings on the way in.
// 4. **Avoid circular references**: Receipts reference Bills by ID, Bills reference categories
// by value.
package models
