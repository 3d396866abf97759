package response

import "time"

type Response struct {
	Data          interface{} `json:"data,omitempty"`
	Success       bool        `json:"success"`
	StatusMessage string      `json:"status_message,omitempty"`
	Timestamp     string      `json:"timestamp"`
}

func Ok(data interface{}) Response {
	return Response{
		Data:      data,
		Success:   true,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func Error(msg string) Response {
	return Response{
		Success:       false,
		StatusMessage: msg,
		Timestamp:     time.Now().Format(time.RFC3339),
	}
}
