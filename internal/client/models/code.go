package models

// TestCase is a sample sent to the code runner.
type TestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// TestCodeRequest asks the backend to run code against samples.
type TestCodeRequest struct {
	Code      string     `json:"code"`
	Language  string     `json:"language"`
	TestCases []TestCase `json:"testCases"`
}

// TestResult is the verdict for a single sample.
type TestResult struct {
	TestCase int    `json:"testCase"`
	Passed   bool   `json:"passed"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Error    string `json:"error,omitempty"`
}

// TestReport is the aggregate result of a test run.
type TestReport struct {
	Results   []TestResult `json:"results"`
	AllPassed bool         `json:"allPassed"`
}

// ChatRole marks who wrote a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the duck conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// DuckChatRequest carries the question and its context.
type DuckChatRequest struct {
	Message          string        `json:"message"`
	ProblemTitle     string        `json:"problemTitle"`
	ProblemStatement string        `json:"problemStatement"`
	Code             string        `json:"code"`
	Language         string        `json:"language"`
	IdolHandle       string        `json:"idolHandle"`
	ChatHistory      []ChatMessage `json:"chatHistory"`
}
