// internal/workers/catalog/refresh-catalog/models.go
package refreshcatalog

type Input struct {
	// Reason is logged only, e.g. "schedule" or "manual".
	Reason string `json:"reason,omitempty"`
}

// Output reports the load. A failed fetch still completes the job with
// OK=false so the process can show the error and keep the old catalog.
type Output struct {
	OK        bool   `json:"ok"`
	Count     int    `json:"count"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
	LoadedAt  string `json:"loadedAt,omitempty"`
}
