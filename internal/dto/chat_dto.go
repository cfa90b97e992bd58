package dto

import "time"

type SendChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"sessionId"`
	UserId    string `json:"userId"`
}

type SendChatResponse struct {
	Reply     string    `json:"reply"`
	SessionId string    `json:"sessionId"`
	Timestamp time.Time `json:"timestamp"`
}
