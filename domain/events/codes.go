package events

// CAMEO root event codes as used by the GDELT event feed. Events whose
// label is a bare two-digit code are relabeled for display.
var eventCodeLabels = map[string]string{
	"01": "MAKE PUBLIC STATEMENT",
	"02": "APPEAL",
	"03": "EXPRESS INTENT TO COOPERATE",
	"04": "CONSULT",
	"05": "ENGAGE IN DIPLOMATIC COOPERATION",
	"06": "ENGAGE IN MATERIAL COOPERATION",
	"07": "PROVIDE AID",
	"08": "YIELD",
	"09": "INVESTIGATE",
	"10": "DEMAND",
	"11": "DISAPPROVE",
	"12": "REJECT",
	"13": "THREATEN",
	"14": "PROTEST",
	"15": "EXHIBIT MILITARY POSTURE",
	"16": "REDUCE RELATIONS",
	"17": "COERCE",
	"18": "ASSAULT",
	"19": "FIGHT",
	"20": "ENGAGE IN UNCONVENTIONAL MASS VIOLENCE",
}

// EventCodeLabel returns the human-readable label for a CAMEO root code,
// or the code itself when it is not a known root code.
func EventCodeLabel(code string) string {
	if label, ok := eventCodeLabels[code]; ok {
		return label
	}
	return code
}
