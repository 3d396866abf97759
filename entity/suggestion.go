package entity

type SuggestionRequest struct {
	TelegramID int64  `json:"telegram_id" validate:"required"`
	Name       string `json:"nome_streaming" validate:"required,max=255"`
}

type Suggestion struct {
	ID   ID     `json:"id"`
	Name string `json:"nome_streaming"`
}
