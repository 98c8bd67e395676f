package domain

// SessionState is everything the client remembers between runs. It is
// persisted as one opaque JSON record; there is no schema versioning.
//
// Transitions are value methods returning an updated copy so the
// presentation layer can thread the state through its update cycle.
type SessionState struct {
	RawDump      string    `json:"rawDump" yaml:"rawDump"`
	Clusters     []Cluster `json:"clusters" yaml:"clusters"`
	SelectedIdea *string   `json:"selectedIdea" yaml:"selectedIdea"`
	NextAction   *string   `json:"nextAction" yaml:"nextAction"`

	// EditingDump is set when the user stepped back from the clusters to
	// revise the dump. The clusters are kept until a new set replaces them.
	EditingDump bool `json:"editingDump,omitempty" yaml:"editingDump,omitempty"`
}

// NewSessionState returns the empty session.
func NewSessionState() SessionState {
	return SessionState{Clusters: []Cluster{}}
}

// Empty reports whether the session holds nothing worth resuming.
func (s SessionState) Empty() bool {
	return s.RawDump == "" && len(s.Clusters) == 0 && s.SelectedIdea == nil && s.NextAction == nil
}

// Screen derives which step of the flow the session is on.
func (s SessionState) Screen() Screen {
	switch {
	case s.SelectedIdea != nil:
		return ScreenFocus
	case s.EditingDump:
		return ScreenDump
	case len(s.Clusters) > 0:
		return ScreenClusters
	default:
		return ScreenDump
	}
}

// AllIdeas returns every thought across the current clusters.
func (s SessionState) AllIdeas() []string {
	return FlattenIdeas(s.Clusters)
}

// HasIdea reports whether idea is one of the current thoughts.
func (s SessionState) HasIdea(idea string) bool {
	for _, c := range s.Clusters {
		for _, i := range c.Ideas {
			if i == idea {
				return true
			}
		}
	}
	return false
}

func (s SessionState) WithRawDump(raw string) SessionState {
	s.RawDump = raw
	return s
}

// WithClusters replaces the result set. Any selection or action belonged to
// the previous set and is dropped.
func (s SessionState) WithClusters(clusters []Cluster) SessionState {
	s.Clusters = CloneClusters(clusters)
	if s.Clusters == nil {
		s.Clusters = []Cluster{}
	}
	s.SelectedIdea = nil
	s.NextAction = nil
	s.EditingDump = false
	return s
}

// SelectIdea focuses on one thought and clears any previous action.
func (s SessionState) SelectIdea(idea string) SessionState {
	s.SelectedIdea = &idea
	s.NextAction = nil
	s.EditingDump = false
	return s
}

func (s SessionState) WithAction(action string) SessionState {
	s.NextAction = &action
	return s
}

// Back steps one screen backwards: focus returns to clusters, clusters
// return to the dump with the raw text and the clusters both kept.
func (s SessionState) Back() SessionState {
	switch s.Screen() {
	case ScreenFocus:
		s.SelectedIdea = nil
		s.NextAction = nil
	case ScreenClusters:
		s.EditingDump = true
	}
	return s
}

// ResumeClusters leaves dump editing and returns to the kept clusters.
// It is a no-op when there are none.
func (s SessionState) ResumeClusters() SessionState {
	if len(s.Clusters) > 0 {
		s.EditingDump = false
	}
	return s
}

// Selected returns the selected idea or "".
func (s SessionState) Selected() string {
	if s.SelectedIdea == nil {
		return ""
	}
	return *s.SelectedIdea
}

// Action returns the generated action or "".
func (s SessionState) Action() string {
	if s.NextAction == nil {
		return ""
	}
	return *s.NextAction
}
