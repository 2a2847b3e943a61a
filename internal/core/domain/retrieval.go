package domain

// RetrievalProfile configures how chunks are selected for a query.
// Two profiles ship with the tool; neither is authoritative, they are
// alternative tunings of the same retriever.
type RetrievalProfile struct {
	// Name identifies the profile ("simple" or "diverse").
	Name string

	// TopK is the number of chunks handed to the answering model.
	TopK int

	// FetchK is the candidate pool size fetched before selection.
	// Equal to TopK for plain similarity retrieval.
	FetchK int

	// Diverse enables diversity-aware (maximal marginal relevance)
	// selection over the candidate pool.
	Diverse bool
}

// SimpleProfile retrieves the top 3 chunks by plain similarity.
func SimpleProfile() RetrievalProfile {
	return RetrievalProfile{Name: "simple", TopK: 3, FetchK: 3}
}

// DiverseProfile fetches 8 candidates and selects 5 balancing
// relevance against inter-result diversity.
func DiverseProfile() RetrievalProfile {
	return RetrievalProfile{Name: "diverse", TopK: 5, FetchK: 8, Diverse: true}
}

// ProfileByName returns the named profile, defaulting to simple for
// unknown names.
func ProfileByName(name string) RetrievalProfile {
	if name == "diverse" {
		return DiverseProfile()
	}
	return SimpleProfile()
}
