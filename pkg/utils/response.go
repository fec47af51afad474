package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope is the response body shared by every endpoint.
type Envelope struct {
	Status      string `json:"status"`
	RequestedAt string `json:"requestedAt,omitempty"`
	Results     *int   `json:"results,omitempty"`
	Message     string `json:"message,omitempty"`
	Data        any    `json:"data,omitempty"`
}

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status == http.StatusNoContent {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondSuccess wraps data in a success envelope.
func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, Envelope{Status: StatusSuccess, Data: data})
}

// RespondFail 发送客户端错误响应
func RespondFail(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Envelope{Status: StatusFail, Message: message})
}

// RespondError 发送服务端错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Envelope{Status: StatusError, Message: message})
}
