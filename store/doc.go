// Package store provides the durable slots the holdings are persisted into.
//
// Each store keeps one JSON snapshot per named slot and replaces it entirely
// on every Save. A slot that was never written loads as an empty portfolio.
package store
