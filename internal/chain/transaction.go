package chain

import "blocknode/go-node/internal/canon"

/*
TRANSACTION – AUTHOR + CONTENT + TIMESTAMP

A transaction in this system carries no value, no signature, no inputs or
outputs. It is the unit of application data the chain commits to: an author,
a content string, and the time it arrived. Canonical form is sorted-key JSON
of all three fields.
*/

// Transaction is the author/content/timestamp triple committed into blocks.
type Transaction struct {
	Author    string  `json:"author"`
	Content   string  `json:"content"`
	Timestamp float64 `json:"timestamp"`
}

// NewTransaction builds a transaction with the given fields.
func NewTransaction(author, content string, timestamp float64) Transaction {
	return Transaction{Author: author, Content: content, Timestamp: timestamp}
}

// Canonical returns the sorted-key JSON form used for hashing and transfer.
func (t Transaction) Canonical() (string, error) {
	return canon.Canonical(t)
}

// Hash returns SHA-256 over the canonical form.
func (t Transaction) Hash() (string, error) {
	return canon.HashCanonical(t)
}
