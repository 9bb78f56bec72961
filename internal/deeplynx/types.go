// Package deeplynx is the HTTP fetch gateway to a Deep Lynx ontology
// service. It normalizes malformed payloads into empty collections and
// surfaces failures as typed errors carrying the server's detail message.
package deeplynx

import "fmt"

// GraphNode is one ontology class in a fetched snapshot. Position and pin
// fields live on the simulation's working copy, not here.
type GraphNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// GraphEdge is a relationship between two nodes, referenced by id. Both
// endpoints must resolve to nodes present in the same snapshot; edges that
// do not are dropped at ingestion.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// GraphSnapshot is one complete fetched graph. A new fetch replaces the
// previous snapshot wholesale.
type GraphSnapshot struct {
	Nodes         []GraphNode `json:"nodes"`
	Relationships []GraphEdge `json:"relationships"`
}

// HasNode reports whether id names a node in the snapshot.
func (s GraphSnapshot) HasNode(id string) bool {
	for _, n := range s.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// DataSource is one configured ingestion source.
type DataSource struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// TypeMapping maps a source payload type onto an ontology class.
type TypeMapping struct {
	ID         int64  `json:"id"`
	SourceType string `json:"sourceType"`
	TargetType string `json:"targetType"`
	Rules      string `json:"rules"`
}

// FetchError is a failed request: a transport error or a non-2xx response.
// Detail carries the server-provided message when the body had one.
type FetchError struct {
	Resource   string
	StatusCode int // 0 for transport-level failures
	Detail     string
}

func (e *FetchError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("fetch %s: %s", e.Resource, e.Detail)
	}
	return fmt.Sprintf("fetch %s: status %d: %s", e.Resource, e.StatusCode, e.Detail)
}
