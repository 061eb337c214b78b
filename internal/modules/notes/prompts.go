package notes

import "strings"

const masterTitleTemplate = "Generate a concise master title for the following topics: "

// joinNotes builds the text sent for summarization.
func joinNotes(notes []string) string {
	return strings.Join(notes, " ")
}

// buildMasterTitlePrompt wraps the titles in the title-generation instruction.
func buildMasterTitlePrompt(titles []string) string {
	return masterTitleTemplate + strings.Join(titles, ". ")
}
