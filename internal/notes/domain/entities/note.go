// Package entities defines the domain entities for the notes service.
package entities

import (
	"fmt"
	"time"
)

// Level - степень важности заметки.
type Level string

// Допустимые уровни важности.
const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// Levels возвращает все допустимые уровни в порядке возрастания важности.
func Levels() []Level {
	return []Level{LevelLow, LevelMedium, LevelHigh}
}

// ErrUnknownLevel возвращается ParseLevel для значения вне набора.
type ErrUnknownLevel struct {
	Value string
}

func (e *ErrUnknownLevel) Error() string {
	return fmt.Sprintf("unknown level %q: accepted values are %v", e.Value, Levels())
}

// ParseLevel разбирает строку в Level. Регистр должен совпадать.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels() {
		if string(l) == s {
			return l, nil
		}
	}
	return "", &ErrUnknownLevel{Value: s}
}

// Valid сообщает, входит ли уровень в набор. Пустой уровень не валиден.
func (l Level) Valid() bool {
	_, err := ParseLevel(string(l))
	return err == nil
}

// Note представляет собой заметку.
// Level может быть пустым: уровень важности не обязателен.
type Note struct {
	ID          int64
	Title       string
	Description string
	Level       Level
	CreatedAt   time.Time
}

// NewNote создает заметку со временем создания createdAt.
func NewNote(title, description string, level Level, createdAt time.Time) *Note {
	return &Note{
		Title:       title,
		Description: description,
		Level:       level,
		CreatedAt:   createdAt,
	}
}

// Clone возвращает копию заметки.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}
