// Package domain provides core business rules for the clients bounded context.
package domain

import (
	"math"
	"time"
)

// ContractStatus is the urgency bucket derived from a contract end date.
type ContractStatus string

const (
	// ContractOverdue means the contract carries no end date at all.
	ContractOverdue ContractStatus = "overdue"
	// ContractExpired means the end date is in the past.
	ContractExpired ContractStatus = "expired"
	// ContractCritical means the contract expires within 15 days.
	ContractCritical ContractStatus = "critical"
	// ContractWarning means the contract expires within 16 to 30 days.
	ContractWarning ContractStatus = "warning"
	// ContractGood means the contract expires in more than 30 days.
	ContractGood ContractStatus = "good"
	// ContractNoDate means the client has no subscriber lines to classify.
	ContractNoDate ContractStatus = "no-date"
)

const (
	// MissingDateDays is the sentinel for a subscriber without an end date.
	MissingDateDays = -999
	// NoDateDays is the sentinel for a client with no dated subscribers.
	NoDateDays = 999999
)

// ContractTiming is the classification result for one contract end date.
type ContractTiming struct {
	Status          ContractStatus `json:"status"`
	DaysUntilExpiry int            `json:"daysUntilExpiry"`
}

// Classify buckets a contract end date by urgency relative to now.
// It is total: a nil end date yields the overdue sentinel, never an error.
// The clock is injected so the function stays pure and testable.
func Classify(contractEnd *time.Time, now time.Time) ContractTiming {
	if contractEnd == nil {
		return ContractTiming{Status: ContractOverdue, DaysUntilExpiry: MissingDateDays}
	}

	days := int(math.Ceil(contractEnd.Sub(now).Hours() / 24))

	var status ContractStatus
	switch {
	case days < 0:
		status = ContractExpired
	case days <= 15:
		status = ContractCritical
	case days <= 30:
		status = ContractWarning
	default:
		status = ContractGood
	}

	return ContractTiming{Status: status, DaysUntilExpiry: days}
}

// SubscriberTerm is the slice of a subscriber relevant to classification.
type SubscriberTerm struct {
	ContractEndDate *time.Time
}

// ClassifyClientContracts picks the most urgent subscriber contract for a
// client. Subscribers without an end date classify as overdue and therefore
// dominate; a client with no subscribers at all is tagged no-date.
func ClassifyClientContracts(terms []SubscriberTerm, now time.Time) ContractTiming {
	if len(terms) == 0 {
		return ContractTiming{Status: ContractNoDate, DaysUntilExpiry: NoDateDays}
	}

	primary := Classify(terms[0].ContractEndDate, now)
	for _, term := range terms[1:] {
		candidate := Classify(term.ContractEndDate, now)
		if candidate.DaysUntilExpiry < primary.DaysUntilExpiry {
			primary = candidate
		}
	}
	return primary
}
