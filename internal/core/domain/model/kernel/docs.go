// Package kernel provides core domain primitives for the settlement engine.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Weight: A fixed-point decimal value object for delivered weights in kilograms
//   - Money: A fixed-point decimal value object for settlement amounts with a currency
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
//
// All weight and money arithmetic is decimal-based; floating point never enters
// the settlement math.
package kernel
