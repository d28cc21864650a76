package domain

import "strings"

// Board is the curriculum authority that scopes topic and paper conventions
type Board string

const (
	BoardCBSE Board = "CBSE"
	BoardICSE Board = "ICSE"
)

// Boards lists every board in form order
var Boards = []Board{BoardCBSE, BoardICSE}

// ClassLevels is the fixed, ordered list of school classes
var ClassLevels = []string{
	"1st", "2nd", "3rd", "4th", "5th", "6th",
	"7th", "8th", "9th", "10th", "11th", "12th",
}

// Language is the language the material is written in
type Language string

const (
	LanguageEnglish   Language = "ENGLISH"
	LanguageHindi     Language = "HINDI"
	LanguageBilingual Language = "BILINGUAL"
)

// Languages lists every language in form order
var Languages = []Language{LanguageEnglish, LanguageHindi, LanguageBilingual}

// Label returns the human readable name used in forms and prompts
func (l Language) Label() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageHindi:
		return "Hindi"
	case LanguageBilingual:
		return "Bilingual (English + Hindi)"
	default:
		return string(l)
	}
}

// Difficulty is the depth the material is pitched at
type Difficulty string

const (
	DifficultyFoundational Difficulty = "FOUNDATIONAL"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

// Difficulties lists every difficulty in form order
var Difficulties = []Difficulty{DifficultyFoundational, DifficultyIntermediate, DifficultyAdvanced}

func (d Difficulty) Label() string {
	switch d {
	case DifficultyFoundational:
		return "Foundational"
	case DifficultyIntermediate:
		return "Intermediate"
	case DifficultyAdvanced:
		return "Advanced"
	default:
		return string(d)
	}
}

// RequestType is the category of teaching material to generate
type RequestType string

const (
	RequestLessonPlan         RequestType = "LESSON_PLAN"
	RequestQuiz               RequestType = "QUIZ"
	RequestInteractiveQuiz    RequestType = "INTERACTIVE_QUIZ"
	RequestBoardQuestionPaper RequestType = "BOARD_QUESTION_PAPER"
	RequestWorksheet          RequestType = "WORKSHEET"
	RequestExplanation        RequestType = "EXPLANATION"
	RequestRealWorldExamples  RequestType = "REAL_WORLD_EXAMPLES"
	RequestProjectIdeas       RequestType = "PROJECT_IDEAS"
)

// RequestTypes lists every request type in form order
var RequestTypes = []RequestType{
	RequestLessonPlan,
	RequestQuiz,
	RequestInteractiveQuiz,
	RequestBoardQuestionPaper,
	RequestWorksheet,
	RequestExplanation,
	RequestRealWorldExamples,
	RequestProjectIdeas,
}

func (r RequestType) Label() string {
	switch r {
	case RequestLessonPlan:
		return "Lesson Plan"
	case RequestQuiz:
		return "Quiz Questions (with answers)"
	case RequestInteractiveQuiz:
		return "Interactive Quiz"
	case RequestBoardQuestionPaper:
		return "Board Question Paper"
	case RequestWorksheet:
		return "Worksheet"
	case RequestExplanation:
		return "Simplified Explanation"
	case RequestRealWorldExamples:
		return "Real-world Examples"
	case RequestProjectIdeas:
		return "Project Ideas"
	default:
		return string(r)
	}
}

// ContentKind reports which GeneratedContent variant a request type produces.
// QUIZ and INTERACTIVE_QUIZ produce quizzes, everything else markdown.
func (r RequestType) ContentKind() ContentKind {
	switch r {
	case RequestQuiz, RequestInteractiveQuiz:
		return ContentQuiz
	default:
		return ContentMarkdown
	}
}

// ExamTypes are the paper kinds offered for board question papers
var ExamTypes = []string{"Main Exam", "Compartment Exam", "Sample Paper"}

// ParseBoard accepts a board code, case-insensitively
func ParseBoard(s string) (Board, bool) {
	for _, b := range Boards {
		if strings.EqualFold(strings.TrimSpace(s), string(b)) {
			return b, true
		}
	}
	return "", false
}

// ParseLanguage accepts either the code or the label
func ParseLanguage(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	for _, l := range Languages {
		if strings.EqualFold(s, string(l)) || strings.EqualFold(s, l.Label()) {
			return l, true
		}
	}
	return "", false
}

func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Difficulties {
		if strings.EqualFold(s, string(d)) || strings.EqualFold(s, d.Label()) {
			return d, true
		}
	}
	return "", false
}

func ParseRequestType(s string) (RequestType, bool) {
	s = strings.TrimSpace(s)
	for _, r := range RequestTypes {
		if strings.EqualFold(s, string(r)) || strings.EqualFold(s, r.Label()) {
			return r, true
		}
	}
	return "", false
}

// ParseClassLevel normalises a class level such as "10TH" to "10th"
func ParseClassLevel(s string) (string, bool) {
	for _, c := range ClassLevels {
		if strings.EqualFold(strings.TrimSpace(s), c) {
			return c, true
		}
	}
	return "", false
}

// ParseExamType matches one of ExamTypes, case-insensitively
func ParseExamType(s string) (string, bool) {
	for _, e := range ExamTypes {
		if strings.EqualFold(strings.TrimSpace(s), e) {
			return e, true
		}
	}
	return "", false
}
