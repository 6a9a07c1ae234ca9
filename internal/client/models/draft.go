package models

import "time"

// Language is a workspace file language.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangCPP        Language = "cpp"
	LangJava       Language = "java"
)

// DraftFile is one file of a problem workspace.
type DraftFile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Language Language `json:"language"`
	Content  string   `json:"content"`
}

// DraftSet is everything persisted for one problem.
type DraftSet struct {
	Files        []DraftFile `json:"files"`
	ActiveFileID string      `json:"activeFileId"`
}

// ProblemKey identifies a problem workspace.
type ProblemKey struct {
	ContestID string
	Index     string
}

func (k ProblemKey) String() string { return k.ContestID + k.Index }

// Draft is a stored draft record. Payload is the JSON-encoded DraftSet.
type Draft struct {
	Key       ProblemKey
	Payload   []byte
	UpdatedAt time.Time
}
