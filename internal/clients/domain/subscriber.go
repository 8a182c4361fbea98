package domain

import "time"

// DeriveContractEnd computes a subscriber's contract end date from its
// remaining payments at creation time: one calendar month per remaining
// payment, or today when nothing is left to pay.
func DeriveContractEnd(now time.Time, remainingPayments int) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if remainingPayments <= 0 {
		return day
	}
	return day.AddDate(0, remainingPayments, 0)
}
