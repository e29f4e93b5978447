package dto

import (
	"time"
)

// Wire names match the editor form: btnContent, btnURL, showCTA.

type CreateNoteRequest struct {
	Id            string    `json:"id" validate:"omitempty,max=64"`
	Title         string    `json:"title" validate:"required,max=255"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	ButtonContent string    `json:"btnContent" validate:"max=255"`
	ButtonUrl     string    `json:"btnURL" validate:"omitempty,url"`
	ShowCTA       bool      `json:"showCTA"`
}

type UpdateNoteRequest struct {
	Id            string    `json:"-"`
	Title         string    `json:"title" validate:"required,max=255"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	ButtonContent string    `json:"btnContent" validate:"max=255"`
	ButtonUrl     string    `json:"btnURL" validate:"omitempty,url"`
	ShowCTA       bool      `json:"showCTA"`
}

type NoteResponse struct {
	Id            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Date          time.Time  `json:"date"`
	ButtonContent string     `json:"btnContent"`
	ButtonUrl     string     `json:"btnURL"`
	ShowCTA       bool       `json:"showCTA"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	NoteChangeCreated = "NOTE_CREATED"
	NoteChangeUpdated = "NOTE_UPDATED"
)

// NoteChangedMessage is published on the internal bus after every successful write.
type NoteChangedMessage struct {
	NoteId     string    `json:"note_id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}
