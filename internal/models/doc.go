// Package models defines the records kept by the apartment manager.
//
// # Collections
//
// Every collection is stored as one ordered list under its own key:
//   - FeeItem: a monthly invoice for one apartment
//   - Resident: a person living in (or registered to) an apartment
//   - UserAccount: the account held in the current-session slot
//   - AppNotification, Activity, PoolTicket: read-mostly board content
//   - Feedback: resident feedback and repair requests
//
// # Identity
//
// Records are identified by their ID field. Order inside a collection is
// display order only. Apartment IDs ("A-101") correlate fees and residents
// at display time; no referential integrity is enforced between them.
//
// # Encoding
//
// JSON field names follow the camelCase keys used by the browser storage the
// data originally lived in, so exported snapshots stay interchangeable.
package models
