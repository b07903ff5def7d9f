// Package models defines the core domain records for SplitEase.
//
// # Records
//
// The record store persists three record kinds, all scoped to the user that owns them:
//   - Expense: a shared cost or a payment between two people
//   - Group: a named set of members, used to filter balances
//   - Friend: a person the owner splits expenses with
//
// User is the authenticated account. The owner's user ID and the IDs of their friends
// form the set of identifiers that may appear as payers or participants.
//
// # Design Principles
//
//  1. Identifiers are opaque strings compared by equality and lexicographic order.
//  2. Monetary values are decimals; a zero amount means "absent".
//  3. Balances are never stored. They are derived from the expenses on every query.
package models
