package domain

// BanStructure is the slice of a billing account relevant to the gate.
type BanStructure struct {
	SubscriberCount int
}

// GateResult reports whether a client record meets the minimum
// billing-account requirement.
type GateResult struct {
	Satisfied bool `json:"satisfied"`
}

// EvaluateBanGate checks the BAN/subscriber requirement for a client.
// The gate only applies when the client is flagged as including a BAN; it is
// satisfied as soon as any BAN holds at least one subscriber line.
func EvaluateBanGate(includesBAN bool, bans []BanStructure) GateResult {
	if !includesBAN {
		return GateResult{Satisfied: true}
	}

	for _, ban := range bans {
		if ban.SubscriberCount > 0 {
			return GateResult{Satisfied: true}
		}
	}

	return GateResult{Satisfied: false}
}
