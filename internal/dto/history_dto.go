package dto

// ─── Filter ──────────────────────────────────────────────────────────────────

type HistoryFilter struct {
	Limit int `form:"limit,default=100" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type HistoryEntryResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type HistoryListResponse struct {
	Data []HistoryEntryResponse `json:"data"`
}
