package notes

// Request fields, named as the clients send them.
const (
	FieldNotesList  = "notesList"
	FieldTitlesList = "titlesList"
)

type summaryResponse struct {
	Summary string `json:"summary"`
}

type masterTitleResponse struct {
	MasterTitle string `json:"master_title"`
}
