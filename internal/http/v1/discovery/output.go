package discovery

import (
	"github.com/zipparents/backend/internal/http/v1/profiles"
)

// DiscoveryListData is the body for GET /discovery.
type DiscoveryListData struct {
	Profiles []profiles.PublicProfile `json:"profiles" doc:"Ranked profiles visible to the viewer"`
	Total    int                      `json:"total"    doc:"Total matches before pagination" example:"42"`
}

// SearchOutput for GET /discovery
type SearchOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body DiscoveryListData
}
