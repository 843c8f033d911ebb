package textproc

// synonyms maps advising-domain tokens to equivalent phrasings. Values are
// kept sorted so augmentation output is deterministic.
var synonyms = map[string][]string{
	"appointment":  {"advising", "meeting", "schedule"},
	"appointments": {"meeting", "schedule"},
	"book":         {"appointment", "schedule"},
	"cancel":       {"drop", "withdraw"},
	"course":       {"class"},
	"courses":      {"classes"},
	"close":        {"closes", "deadline", "end"},
	"closes":       {"close", "deadline", "ends"},
	"closing":      {"close", "deadline", "end"},
	"drop":         {"remove", "withdraw", "withdrawal"},
	"dropping":     {"withdraw", "withdrawal"},
	"enroll":       {"register", "registration"},
	"enrolling":    {"register", "registration"},
	"enrollment":   {"register", "registration"},
	"deadline":     {"close", "closing"},
	"financial":    {"aid"},
	"meeting":      {"appointment"},
	"register":     {"enroll", "registration"},
	"registration": {"enroll", "register"},
	"remove":       {"drop", "withdraw"},
	"schedule":     {"appointment", "meeting"},
	"transcript":   {"record", "records"},
	"withdraw":     {"drop", "withdrawal"},
	"withdrawal":   {"drop", "withdraw"},
}

// Augment expands a token sequence with domain synonyms and adjacent-pair
// tokens. The result starts with the deduplicated input tokens in
// first-occurrence order, followed by any synonyms not already present,
// followed by bigrams joined with an underscore. Lexically different but
// semantically equivalent phrasings overlap after augmentation.
func Augment(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens)*2)
	out := make([]string, 0, len(tokens)*2)
	add := func(tok string) {
		if _, ok := seen[tok]; !ok {
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	for _, tok := range tokens {
		add(tok)
	}
	for _, tok := range tokens {
		for _, syn := range synonyms[tok] {
			add(syn)
		}
	}
	for i := 0; i+1 < len(tokens); i++ {
		add(tokens[i] + "_" + tokens[i+1])
	}
	return out
}
