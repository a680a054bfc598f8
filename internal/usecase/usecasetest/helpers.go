package usecasetest

import (
	"fmt"
	"sync"
	"time"
)

// Clock управляемое время для тестов
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock создает часы, показывающие t
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now возвращает текущее время часов
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set переводит часы
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Logger собирает сообщения в память
type Logger struct {
	mu       sync.Mutex
	Messages []string
}

func (l *Logger) add(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, level+" "+fmt.Sprintf(format, v...))
}

func (l *Logger) Info(format string, v ...interface{})  { l.add("INFO", format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.add("WARN", format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.add("ERROR", format, v...) }
