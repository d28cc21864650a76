// Package prompt turns a form submission into the instruction text sent to the
// language model.
package prompt

import (
	"fmt"
	"strings"

	"edugen/internal/domain"
)

const persona = `You are an experienced Indian school teacher and curriculum designer.
You write accurate, age-appropriate teaching material that follows the conventions
of the selected board's syllabus and examinations.`

// Options tunes prompt generation.
type Options struct {
	// QuizQuestions is how many questions a quiz request asks for
	QuizQuestions int
}

// Build returns the full prompt for a form. Every form field is embedded.
func Build(form domain.FormData, opts Options) string {
	var b strings.Builder

	b.WriteString(persona)
	b.WriteString("\n\n")

	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Board: %s\n", form.Board)
	fmt.Fprintf(&b, "- Class: %s\n", form.ClassLevel)
	fmt.Fprintf(&b, "- Subject: %s\n", form.Subject)
	fmt.Fprintf(&b, "- Topic: %s\n", form.Topic)
	fmt.Fprintf(&b, "- Material requested: %s\n", form.RequestType.Label())
	fmt.Fprintf(&b, "- Language: %s\n", form.Language.Label())
	fmt.Fprintf(&b, "- Difficulty: %s\n", form.Difficulty.Label())
	if form.IsBoardPaper() {
		fmt.Fprintf(&b, "- Exam year: %s\n", form.Year)
		fmt.Fprintf(&b, "- Exam type: %s\n", form.ExamType)
	}
	b.WriteString("\n")

	b.WriteString("Task:\n")
	b.WriteString(taskInstruction(form, opts))
	b.WriteString("\n\n")

	b.WriteString("Language rules:\n")
	b.WriteString(languageInstruction(form.Language))
	b.WriteString("\n\n")

	b.WriteString("Output rules:\n")
	if form.RequestType.ContentKind() == domain.ContentQuiz {
		b.WriteString(quizOutputRules(quizCount(opts)))
	} else {
		b.WriteString(markdownOutputRules)
	}

	return b.String()
}

func quizCount(opts Options) int {
	if opts.QuizQuestions <= 0 {
		return 10
	}
	return opts.QuizQuestions
}

func taskInstruction(form domain.FormData, opts Options) string {
	audience := fmt.Sprintf("%s students of class %s (%s board)", form.Difficulty.Label(), form.ClassLevel, form.Board)

	switch form.RequestType {
	case domain.RequestLessonPlan:
		return fmt.Sprintf("Write a complete lesson plan on %q for %s. Include learning objectives, "+
			"required materials, a warm-up activity, a step-by-step teaching sequence with timings, "+
			"classroom activities, assessment questions and a homework assignment.", form.Topic, audience)
	case domain.RequestQuiz, domain.RequestInteractiveQuiz:
		return fmt.Sprintf("Create %d multiple-choice questions on %q for %s. Each question has exactly "+
			"%d options and exactly one correct option. Cover different sub-concepts of the topic and "+
			"keep the distractors plausible.", quizCount(opts), form.Topic, audience, domain.QuizOptionCount)
	case domain.RequestBoardQuestionPaper:
		return fmt.Sprintf("Prepare a %s board question paper in the style of the %s %s for %s, "+
			"subject %s, focused on %q. Follow the board's section layout, mark distribution, "+
			"general instructions and time allowed. Provide a marking scheme with answers after the paper.",
			form.Board, form.Year, form.ExamType, "class "+form.ClassLevel, form.Subject, form.Topic)
	case domain.RequestWorksheet:
		return fmt.Sprintf("Design a printable worksheet on %q for %s with a mix of fill in the blanks, "+
			"match the following, short answer and one application question. Add an answer key at the end.",
			form.Topic, audience)
	case domain.RequestExplanation:
		return fmt.Sprintf("Explain %q in simple terms for %s. Use short paragraphs, everyday analogies, "+
			"a worked example and a short recap of key points.", form.Topic, audience)
	case domain.RequestRealWorldExamples:
		return fmt.Sprintf("List real-world examples that show %q in action for %s. For each example, "+
			"explain the connection to the concept and suggest a question to discuss in class.", form.Topic, audience)
	case domain.RequestProjectIdeas:
		return fmt.Sprintf("Suggest hands-on project ideas on %q for %s. For each project give the aim, "+
			"materials, procedure, expected learning outcome and an assessment rubric.", form.Topic, audience)
	default:
		return fmt.Sprintf("Create teaching material of type %q on %q for %s.", form.RequestType.Label(), form.Topic, audience)
	}
}

func languageInstruction(lang domain.Language) string {
	switch lang {
	case domain.LanguageHindi:
		return "Write everything in Hindi using Devanagari script. Keep standard scientific terms recognisable."
	case domain.LanguageBilingual:
		return "Write every heading, question and explanation first in English and then in Hindi (Devanagari) directly below it."
	default:
		return "Write everything in clear Indian English."
	}
}

const markdownOutputRules = `- Format the answer as GitHub-flavoured Markdown with headings, lists and tables where useful.
- Do not wrap the whole answer in a code block.
- Do not add any preamble or closing remarks addressed to the user.`

func quizOutputRules(n int) string {
	return fmt.Sprintf(`- Respond with JSON only: no Markdown, no code fences, no commentary.
- The JSON must be an array of %d objects with exactly these fields:
  {"questionText": string, "options": [string, string, string, string], "correctAnswerIndex": integer}
- "correctAnswerIndex" is the zero-based index of the correct option (0 to %d).`, n, domain.QuizOptionCount-1)
}
