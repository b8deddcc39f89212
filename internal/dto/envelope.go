package dto

// Envelope wraps every API response. Response carries the payload on success
// and a human readable message on failure.
type Envelope struct {
	Success  bool        `json:"success"`
	Response interface{} `json:"response"`
	Error    string      `json:"error,omitempty"`
}

func OK(data interface{}) Envelope {
	return Envelope{Success: true, Response: data}
}

func Fail(message, kind string) Envelope {
	return Envelope{Success: false, Response: message, Error: kind}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

type DeletedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
