package types

import "time"

// Image describes one settled image load.
type Image struct {
	Path     string    `json:"path"`
	URL      string    `json:"url"`
	Format   string    `json:"format,omitempty"`
	Width    int       `json:"width,omitempty"`
	Height   int       `json:"height,omitempty"`
	Size     int64     `json:"size"`
	Loaded   bool      `json:"loaded"`
	Error    string    `json:"error,omitempty"`
	SettleAt time.Time `json:"settled_at"`
}
