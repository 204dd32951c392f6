// Package timefmt отвечает за серверные часы и единый формат меток времени в ответах API.
package timefmt

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // встроенная база зон
)

// Значения по умолчанию.
const (
	DefaultLayout   = "01-02-2006 03:04:05"
	DefaultTimezone = "America/New_York"
)

// Константы для сообщений об ошибках.
const (
	ErrLoadLocation = "failed to load timezone"
	ErrEmptyLayout  = "timestamp layout is empty"
)

// Formatter форматирует время в заданной зоне и выдает текущее время.
type Formatter struct {
	layout   string
	location *time.Location
	now      func() time.Time
}

// New создает Formatter для layout и IANA-зоны tz.
func New(layout, tz string) (*Formatter, error) {
	if layout == "" {
		return nil, errors.New(ErrEmptyLayout)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", ErrLoadLocation, tz, err)
	}
	return &Formatter{layout: layout, location: loc, now: time.Now}, nil
}

// Default возвращает Formatter с форматом MM-dd-yyyy hh:mm:ss и зоной America/New_York.
func Default() *Formatter {
	f, err := New(DefaultLayout, DefaultTimezone)
	if err != nil {
		panic(err)
	}
	return f
}

// WithClock возвращает копию с другими часами.
func (f *Formatter) WithClock(now func() time.Time) *Formatter {
	clone := *f
	clone.now = now
	return &clone
}

// Now возвращает текущее время.
func (f *Formatter) Now() time.Time {
	return f.now()
}

// Format переводит t в зону форматтера и форматирует.
func (f *Formatter) Format(t time.Time) string {
	return t.In(f.location).Format(f.layout)
}

// Timestamp форматирует текущее время.
func (f *Formatter) Timestamp() string {
	return f.Format(f.now())
}

// Location возвращает зону форматтера.
func (f *Formatter) Location() *time.Location {
	return f.location
}
