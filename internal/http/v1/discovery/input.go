package discovery

import (
	"github.com/zipparents/backend/internal/platform/pagination"
)

// SearchInput for GET /discovery
type SearchInput struct {
	Zip string `query:"zip" required:"true" pattern:"^\\d{5}$" doc:"Zip code to search around" example:"11201"`
	pagination.Params
}
