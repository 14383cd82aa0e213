package events

import "time"

type FrameworkSavedEvent struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Active  bool   `json:"active"`
}

type FrameworkDeletedEvent struct {
	Name string `json:"name"`
}

type CompassSavedEvent struct {
	Name       string  `json:"name"`
	UID        string  `json:"uid,omitempty"`
	Framework  string  `json:"framework,omitempty"`
	TotalScore float64 `json:"total_score"`
	Tier       string  `json:"tier,omitempty"`
}

type CompassDeletedEvent struct {
	Name string `json:"name"`
}

type CompassEvaluatedEvent struct {
	Name       string  `json:"name,omitempty"`
	TotalScore float64 `json:"total_score"`
	Tier       string  `json:"tier"`
}

type SubnetTableEvent struct {
	Rows      int       `json:"rows"`
	Timestamp time.Time `json:"timestamp"`
}
