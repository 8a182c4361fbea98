package domain

import "testing"

func TestEvaluateBanGate_NotRequired(t *testing.T) {
	got := EvaluateBanGate(false, nil)
	if !got.Satisfied {
		t.Fatal("gate should be satisfied when the client does not include a BAN")
	}
}

func TestEvaluateBanGate_RequiredWithNoBans(t *testing.T) {
	got := EvaluateBanGate(true, nil)
	if got.Satisfied {
		t.Fatal("gate should block a BAN client with zero billing accounts")
	}
}

func TestEvaluateBanGate_RequiredWithEmptyBans(t *testing.T) {
	got := EvaluateBanGate(true, []BanStructure{{SubscriberCount: 0}, {SubscriberCount: 0}})
	if got.Satisfied {
		t.Fatal("gate should block when no BAN holds a subscriber")
	}
}

func TestEvaluateBanGate_SatisfiedByOneSubscriber(t *testing.T) {
	got := EvaluateBanGate(true, []BanStructure{{SubscriberCount: 0}, {SubscriberCount: 1}})
	if !got.Satisfied {
		t.Fatal("gate should pass once any BAN holds a subscriber")
	}
}
