package translator

// Sample is a ready-made note for demos.
type Sample struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

var samples = []Sample{
	{
		Label: "Hypertension follow-up",
		Text:  "Pt w/ HTN and DM2 reports dyspnea on exertion. Recommend echo; start ACEi; f/u in 2 weeks. R/O CHF. Labs neg.",
	},
	{
		Label: "Post-op visit",
		Text:  "Pt s/p cholecystectomy. Incisions c/d/i, pain controlled w/ ibuprofen PRN. Return to clinic in 10 days.",
	},
	{
		Label: "ED discharge",
		Text:  "Dx: viral URI. Encourage fluids, rest, and OTC meds. Return to ED if SOB or chest pain.",
	},
}

// Samples returns the built-in demo notes.
func Samples() []Sample {
	out := make([]Sample, len(samples))
	copy(out, samples)
	return out
}
