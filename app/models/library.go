package models

// Static library content served alongside the wall.

type Recipe struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

type Place struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

type HistoryEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
