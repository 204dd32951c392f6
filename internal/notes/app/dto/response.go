// Package dto описывает формы запросов и ответов HTTP API заметок.
package dto

import (
	"net/http"
	"strings"

	"notekeeper/pkg/timefmt"
)

// Response - единая обертка всех ответов API, успешных и ошибочных.
type Response struct {
	Notes            []Note `json:"notes,omitzero"`
	Message          string `json:"message,omitempty"`
	Reason           string `json:"reason,omitempty"`
	DeveloperMessage string `json:"developerMessage,omitempty"`
	Status           string `json:"status"`
	StatusCode       int    `json:"statusCode"`
	TimeStamp        string `json:"timeStamp"`
}

// NewResponse создает успешный ответ. notes == nil опускает поле notes,
// пустой срез сохраняет его как [].
func NewResponse(clock *timefmt.Formatter, code int, message string, notes []Note) *Response {
	return &Response{
		Notes:      notes,
		Message:    message,
		Status:     StatusName(code),
		StatusCode: code,
		TimeStamp:  clock.Timestamp(),
	}
}

// NewErrorResponse создает ответ об ошибке без данных.
func NewErrorResponse(clock *timefmt.Formatter, code int, reason, developerMessage string) *Response {
	return &Response{
		Reason:           reason,
		DeveloperMessage: developerMessage,
		Status:           StatusName(code),
		StatusCode:       code,
		TimeStamp:        clock.Timestamp(),
	}
}

// StatusName возвращает символьное имя HTTP-статуса: 200 -> OK, 400 -> BAD_REQUEST.
func StatusName(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text))
}
