package synthesis

const consensusCutoff = 0.6

// FindConsensus clusters points by similarity and returns the highest
// confidence statement of each cluster backed by more than one source and by
// at least half of responseCount sources.
//
// A point joins the first cluster containing any member more than 0.6 similar
// to it. The half is real-valued: with 3 responses a cluster needs 2 sources.
func FindConsensus(points []KeyPoint, responseCount int) []string {
	var clusters [][]KeyPoint
	for _, p := range points {
		placed := false
		for i, c := range clusters {
			if anySimilar(c, p.Text, consensusCutoff) {
				clusters[i] = append(c, p)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []KeyPoint{p})
		}
	}

	consensus := []string{}
	half := float64(responseCount) / 2
	for _, c := range clusters {
		sources := distinctSources(c)
		if sources <= 1 || float64(sources) < half {
			continue
		}
		consensus = append(consensus, strongest(c).Text)
	}
	return consensus
}

func anySimilar(points []KeyPoint, text string, cutoff float64) bool {
	for _, p := range points {
		if Similarity(p.Text, text) > cutoff {
			return true
		}
	}
	return false
}

func anySimilarText(texts []string, text string, cutoff float64) bool {
	for _, t := range texts {
		if Similarity(t, text) > cutoff {
			return true
		}
	}
	return false
}

// strongest returns the first point with the highest confidence.
func strongest(points []KeyPoint) KeyPoint {
	best := points[0]
	for _, p := range points[1:] {
		if p.Confidence > best.Confidence {
			best = p
		}
	}
	return best
}
