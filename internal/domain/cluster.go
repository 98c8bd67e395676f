package domain

import "strconv"

// Cluster is a named group of related thoughts. A result set is created
// fresh on every clustering call and replaces the previous one wholesale.
type Cluster struct {
	ID    string   `json:"id" yaml:"id"`
	Title string   `json:"title" yaml:"title"`
	Ideas []string `json:"ideas" yaml:"ideas"`
}

// ClusterID returns the identifier used for the cluster at position i (0-based).
func ClusterID(i int) string {
	return strconv.Itoa(i + 1)
}

// FlattenIdeas returns every idea across clusters in cluster order.
func FlattenIdeas(clusters []Cluster) []string {
	n := 0
	for _, c := range clusters {
		n += len(c.Ideas)
	}
	ideas := make([]string, 0, n)
	for _, c := range clusters {
		ideas = append(ideas, c.Ideas...)
	}
	return ideas
}

// CloneClusters returns a deep copy so callers can't mutate a stored result set.
func CloneClusters(clusters []Cluster) []Cluster {
	if clusters == nil {
		return nil
	}
	out := make([]Cluster, len(clusters))
	for i, c := range clusters {
		out[i] = Cluster{
			ID:    c.ID,
			Title: c.Title,
			Ideas: append([]string(nil), c.Ideas...),
		}
	}
	return out
}
