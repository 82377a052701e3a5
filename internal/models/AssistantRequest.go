package models

import (
	"strings"
	"unicode/utf8"
)

const MaxPromptLength = 4000

type AssistantRequest struct {
	Prompt string `json:"prompt"`
}

func (r *AssistantRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return badRequest("Missing or invalid prompt")
	}
	if utf8.RuneCountInString(r.Prompt) > MaxPromptLength {
		return tooLarge("Prompt too long (max 4000 chars)")
	}
	return nil
}

type GroundingLink struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type AssistantReply struct {
	Text  string          `json:"text"`
	Links []GroundingLink `json:"links"`
}
