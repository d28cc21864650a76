package domain

import (
	"regexp"
	"slices"
	"strings"
)

const (
	MaxSubjectLength = 100
	MaxTopicLength   = 200
)

var yearPattern = regexp.MustCompile(`^[12][0-9]{3}$`)

// FormData is one submission of the generation form. It is passed by value and
// never mutated after submission.
type FormData struct {
	Board       Board       `json:"board"`
	ClassLevel  string      `json:"classLevel"`
	Subject     string      `json:"subject"`
	Topic       string      `json:"topic"`
	RequestType RequestType `json:"requestType"`
	Language    Language    `json:"language"`
	Difficulty  Difficulty  `json:"difficulty"`
	// Year and ExamType are only used for board question papers
	Year     string `json:"year,omitempty"`
	ExamType string `json:"examType,omitempty"`
}

// IsBoardPaper reports whether the year/exam type fields apply
func (f FormData) IsBoardPaper() bool {
	return f.RequestType == RequestBoardQuestionPaper
}

// Normalize maps codes or labels in any letter case to the canonical codes and
// trims the free-text fields. Unknown values are left untouched for Validate.
func (f FormData) Normalize() FormData {
	if b, ok := ParseBoard(string(f.Board)); ok {
		f.Board = b
	}
	if c, ok := ParseClassLevel(f.ClassLevel); ok {
		f.ClassLevel = c
	}
	if r, ok := ParseRequestType(string(f.RequestType)); ok {
		f.RequestType = r
	}
	if l, ok := ParseLanguage(string(f.Language)); ok {
		f.Language = l
	}
	if d, ok := ParseDifficulty(string(f.Difficulty)); ok {
		f.Difficulty = d
	}
	f.Subject = strings.TrimSpace(f.Subject)
	f.Topic = strings.TrimSpace(f.Topic)
	if f.IsBoardPaper() {
		f.Year = strings.TrimSpace(f.Year)
		if e, ok := ParseExamType(f.ExamType); ok {
			f.ExamType = e
		}
	} else {
		f.Year = ""
		f.ExamType = ""
	}
	return f
}

// Validate enforces the form constraints on a normalized form: every select
// holds a canonical value and the free-text fields are present.
func (f FormData) Validate() ValidationErrors {
	var errs ValidationErrors

	if !slices.Contains(Boards, f.Board) {
		errs = append(errs, NewInvalidChoiceError("board", string(f.Board), boardCodes()))
	}
	if !slices.Contains(ClassLevels, f.ClassLevel) {
		errs = append(errs, NewInvalidChoiceError("classLevel", f.ClassLevel, ClassLevels))
	}

	if strings.TrimSpace(f.Subject) == "" {
		errs = append(errs, NewMissingFieldError("subject"))
	} else if len(f.Subject) > MaxSubjectLength {
		errs = append(errs, NewOutOfRangeError("subject", len(f.Subject), 1, MaxSubjectLength))
	}
	if strings.TrimSpace(f.Topic) == "" {
		errs = append(errs, NewMissingFieldError("topic"))
	} else if len(f.Topic) > MaxTopicLength {
		errs = append(errs, NewOutOfRangeError("topic", len(f.Topic), 1, MaxTopicLength))
	}

	if !slices.Contains(RequestTypes, f.RequestType) {
		errs = append(errs, NewInvalidChoiceError("requestType", string(f.RequestType), requestTypeCodes()))
	}
	if !slices.Contains(Languages, f.Language) {
		errs = append(errs, NewInvalidChoiceError("language", string(f.Language), languageCodes()))
	}
	if !slices.Contains(Difficulties, f.Difficulty) {
		errs = append(errs, NewInvalidChoiceError("difficulty", string(f.Difficulty), difficultyCodes()))
	}

	if f.IsBoardPaper() {
		if strings.TrimSpace(f.Year) == "" {
			errs = append(errs, NewMissingFieldError("year"))
		} else if !yearPattern.MatchString(strings.TrimSpace(f.Year)) {
			errs = append(errs, NewInvalidFormatError("year", f.Year))
		}
		if strings.TrimSpace(f.ExamType) == "" {
			errs = append(errs, NewMissingFieldError("examType"))
		} else if !slices.Contains(ExamTypes, f.ExamType) {
			errs = append(errs, NewInvalidChoiceError("examType", f.ExamType, ExamTypes))
		}
	}

	return errs
}

// DefaultFormData mirrors the initial state of the form
func DefaultFormData() FormData {
	return FormData{
		Board:       BoardCBSE,
		ClassLevel:  "10th",
		RequestType: RequestLessonPlan,
		Language:    LanguageEnglish,
		Difficulty:  DifficultyIntermediate,
		ExamType:    ExamTypes[0],
	}
}

func boardCodes() []string {
	out := make([]string, 0, len(Boards))
	for _, b := range Boards {
		out = append(out, string(b))
	}
	return out
}

func requestTypeCodes() []string {
	out := make([]string, 0, len(RequestTypes))
	for _, r := range RequestTypes {
		out = append(out, string(r))
	}
	return out
}

func languageCodes() []string {
	out := make([]string, 0, len(Languages))
	for _, l := range Languages {
		out = append(out, string(l))
	}
	return out
}

func difficultyCodes() []string {
	out := make([]string, 0, len(Difficulties))
	for _, d := range Difficulties {
		out = append(out, string(d))
	}
	return out
}
