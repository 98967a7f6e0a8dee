package models

type Organization struct {
	ID   int64  `json:"organization_id"`
	Name string `json:"name"`
}
