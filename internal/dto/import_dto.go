package dto

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ImportRowResult reports the outcome of one spreadsheet row.
type ImportRowResult struct {
	Row    int    `json:"row"`
	Name   string `json:"name"`
	Status string `json:"status"` // created | updated | failed
	Error  string `json:"error,omitempty"`
}

type ImportResponse struct {
	Created int               `json:"created"`
	Updated int               `json:"updated"`
	Failed  int               `json:"failed"`
	Rows    []ImportRowResult `json:"rows"`
}
