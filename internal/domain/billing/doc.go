// Package billing holds the invoice and payment model.
//
// An invoice's status is a pure function of its total and the sum of its payments
// (see StatusFor). Payments are append-only and carry the school and student of
// their invoice so account aggregates can be computed with a single SUM per scope.
package billing
