// Package models defines the core domain entities for the J-Bank camp
// finance tracker.
//
// # Entities
//
//   - Session: an enrollment period participants belong to
//   - Participant: an enrolled camper with a set of per-currency balances
//   - Balance: a single currency-denominated account held by a participant
//   - Transaction: an immutable record of one monetary event (deposit,
//     expense, refund)
//   - GroupExpense: a shared cost split evenly across participants
//   - User: a camp staff account used for API authentication
//
// # Design Principles
//
//  1. **Plain data records**: entities are value-style structs with explicit
//     structural equality (Equal methods) over all fields; no hidden derived
//     state.
//  2. **Avoid circular references**: entities reference each other by ID
//     strings, never by pointer. A Participant references its Session by ID;
//     Transactions and GroupExpenses reference Participants by ID so ledger
//     history survives profile edits.
//  3. **Append-only ledger**: Transactions are never edited or deleted;
//     corrections are modeled as new offsetting transactions.
//  4. **One balance per currency**: a participant holds at most one Balance
//     per currency code. UpsertBalance replaces wholesale, preserving the
//     original insertion position.
//
// Timestamps are Unix seconds (int64). IDs are UUID strings.
package models
