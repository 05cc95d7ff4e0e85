// internal/domain/models/livestatus.go
package models

import "time"

// LiveStatus is one keyed live-status report (train position, road
// closure, …). Last write per (kind, key) wins; history is not kept.
type LiveStatus struct {
	Kind       string    `bson:"kind" json:"kind"` // "train" | "road"
	Key        string    `bson:"key" json:"key"`   // line or road identifier
	State      string    `bson:"state" json:"state"`
	Detail     string    `bson:"detail,omitempty" json:"detail,omitempty"`
	ReportedBy string    `bson:"reported_by,omitempty" json:"reported_by,omitempty"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
