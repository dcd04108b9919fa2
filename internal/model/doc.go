// Package model defines shared data types used across DivScout.
//
// Conventions:
//   - Amounts: float64 dollars per share, rounded to 4 decimal places
//   - Dates: time.Time holding a UTC calendar date; zero value = unknown
//   - CIKs: 10-digit zero-padded strings (SEC convention)
//   - Confidence: float64 in [0, 1], rounded to 3 decimal places
package model
