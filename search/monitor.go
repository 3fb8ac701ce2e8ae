package search

import (
	"github.com/poiesic/sathi/core"
)

// MatchMonitor provides hooks to observe a match.
// Implement this interface to explain why an entry won.
type MatchMonitor interface {
	Start(query string)
	Scored(entry *core.KnowledgeEntry, breakdown Breakdown)
	Finish(answer Answer, found bool)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                             {}
func (n *noopMonitor) Scored(_ *core.KnowledgeEntry, _ Breakdown) {}
func (n *noopMonitor) Finish(_ Answer, _ bool)                    {}
