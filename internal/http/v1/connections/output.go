package connections

// ConnectionRequestOutput for POST /connections (201 Created)
type ConnectionRequestOutput struct {
	Location string `header:"Location" doc:"URL of the connection"`
	Body     Connection
}

// ConnectionListData is the body for GET /connections.
type ConnectionListData struct {
	Connections []Connection `json:"connections" doc:"The user's connections, newest activity first"`
	Total       int          `json:"total"       doc:"Total before pagination" example:"12"`
}

// ConnectionListOutput for GET /connections
type ConnectionListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ConnectionListData
}

// ConnectionRespondOutput for accept/decline
type ConnectionRespondOutput struct {
	Body Connection
}
