// Package repokit holds the types and helpers SQL repositories are built on
package repokit

import "residences/internal/platform/store"

type (
	// Queryer is the read and write surface repos bind to
	Queryer = store.RowQuerier

	// TxRunner runs a function inside a transaction
	TxRunner = store.TxRunner

	// Rows is a result set
	Rows = store.Rows

	// Row is a single row
	Row = store.Row

	// CommandTag is the result of a write
	CommandTag = store.CommandTag
)
