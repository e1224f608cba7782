package domain

import "time"

// Audit is embedded in entities that track who changed them and when.
// CreatedTime and LastUpdatedTime are maintained by gorm on insert and
// on every update; the *By fields are supplied by the caller.
type Audit struct {
	CreatedTime     time.Time `json:"created_time" gorm:"autoCreateTime"`
	LastUpdatedTime time.Time `json:"last_updated_time" gorm:"autoUpdateTime"`
	CreatedBy       *string   `json:"created_by"`
	LastUpdatedBy   *string   `json:"last_updated_by"`
}

func (a *Audit) fields(m map[string]any) {
	m["created_time"] = a.CreatedTime
	m["last_updated_time"] = a.LastUpdatedTime
	m["created_by"] = a.CreatedBy
	m["last_updated_by"] = a.LastUpdatedBy
}
