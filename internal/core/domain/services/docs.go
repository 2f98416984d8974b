// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the settlement engine. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - SettlementCalculator: A pure domain service computing the customer and
//     driver amounts of one settlement from delivered weight, tariff snapshot,
//     outstanding shortfalls, and visit count.
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
