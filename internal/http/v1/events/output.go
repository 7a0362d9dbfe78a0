package events

// EventCreateOutput for POST /events (201 Created)
type EventCreateOutput struct {
	Location string `header:"Location" doc:"URL of created event"`
	Body     Event
}

// EventListData is the body for GET /events.
type EventListData struct {
	Events []Event `json:"events" doc:"Upcoming events, soonest first"`
	Total  int     `json:"total"  doc:"Total matches before pagination" example:"7"`
}

// EventListOutput for GET /events
type EventListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body EventListData
}

// EventGetOutput for GET /events/{id}
type EventGetOutput struct {
	Body Event
}

// EventJoinOutput for POST /events/{id}/join
type EventJoinOutput struct {
	Body Event
}

// EventLeaveOutput for POST /events/{id}/leave
type EventLeaveOutput struct {
	Body Event
}
