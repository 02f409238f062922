package models

// AppInfo describes the running server build.
type AppInfo struct {
	Version string `json:"version"`
}
