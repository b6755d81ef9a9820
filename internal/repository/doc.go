// Package repository declares the storage contracts consumed by the use cases.
//
// Lookups return (nil, nil) when the requested row does not exist; turning that
// into a typed not-found failure is the caller's job. Every method honours a
// transaction opened by Transactor.WithinTx when the context carries one.
package repository
