package response

import "github.com/screenhouse/cinema-api/internal/domain"

type ProfileResponse struct {
	domain.User

	TotalSpent float64 `json:"total_spent"`
}
