package models

// Holding is the net number of shares a user owns of one symbol.
// It is a projection of the user's history, stored in the shares table.
type Holding struct {
	UserID   string `json:"user_id"`
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
}
