package intelligence

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/pinely/internal/domain"
)

const (
	// MaxClusters bounds the size of any result set.
	MaxClusters = 6

	// minFragmentRunes is the shortest fragment kept by the fallback splitter.
	minFragmentRunes = 4

	otherThoughtsTitle = "Other Thoughts"
	emptyDumpTitle     = "Your thoughts"
	emptyDumpIdea      = "Start by writing down what's on your mind"
)

// clusterRule assigns fragments matching pattern to a fixed bucket title.
type clusterRule struct {
	Title   string
	pattern *regexp.Regexp
}

// fallbackRules is ordered: a fragment lands in the first rule it matches,
// and buckets are emitted in this order.
var fallbackRules = []clusterRule{
	{Title: "Work & Projects", pattern: regexp.MustCompile(`(?i)work|project|deadline|meeting|task|job|report`)},
	{Title: "Creative Seeds", pattern: regexp.MustCompile(`(?i)idea|create|build|make|start|design`)},
	{Title: "Learning & Growth", pattern: regexp.MustCompile(`(?i)learn|read|study|understand|explore`)},
	{Title: "Feelings & Reflections", pattern: regexp.MustCompile(`(?i)feel|worry|stress|happy|sad|anxious`)},
	{Title: "People & Connections", pattern: regexp.MustCompile(`(?i)friend|family|call|message|people`)},
}

var fragmentSplitter = regexp.MustCompile(`[\n.!?]+`)

// SplitFragments splits a brain dump on sentence punctuation and line
// breaks, trims each piece and drops pieces of three runes or fewer.
// Duplicates are kept.
func SplitFragments(rawDump string) []string {
	var out []string
	for _, part := range fragmentSplitter.Split(rawDump, -1) {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) < minFragmentRunes {
			continue
		}
		out = append(out, part)
	}
	return out
}

// FallbackClusters groups a brain dump with fixed keyword rules. It is
// deterministic: the same input always yields the same titles and
// membership, with input order kept inside each bucket.
func FallbackClusters(rawDump string) []domain.Cluster {
	fragments := SplitFragments(rawDump)
	if len(fragments) == 0 {
		return []domain.Cluster{{
			ID:    domain.ClusterID(0),
			Title: emptyDumpTitle,
			Ideas: []string{emptyDumpIdea},
		}}
	}

	buckets := make([][]string, len(fallbackRules))
	var other []string

	for _, frag := range fragments {
		matched := false
		for i, rule := range fallbackRules {
			if rule.pattern.MatchString(frag) {
				buckets[i] = append(buckets[i], frag)
				matched = true
				break
			}
		}
		if !matched {
			other = append(other, frag)
		}
	}

	var clusters []domain.Cluster
	add := func(title string, ideas []string) {
		if len(ideas) == 0 {
			return
		}
		clusters = append(clusters, domain.Cluster{
			ID:    domain.ClusterID(len(clusters)),
			Title: title,
			Ideas: ideas,
		})
	}
	for i, rule := range fallbackRules {
		add(rule.Title, buckets[i])
	}
	add(otherThoughtsTitle, other)

	if len(clusters) > MaxClusters {
		clusters = clusters[:MaxClusters]
	}
	return clusters
}
