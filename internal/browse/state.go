package browse

// State is a position in the question and answer menus.
type State int

const (
	ListQuestions State = iota
	ViewQuestion
	ListAnswers
	ViewAnswer
	// QuestionPrompt is the {next question, back} menu shown after the
	// answers of a question.
	QuestionPrompt
	Done
)

func (s State) String() string {
	switch s {
	case ListQuestions:
		return "list-questions"
	case ViewQuestion:
		return "view-question"
	case ListAnswers:
		return "list-answers"
	case ViewAnswer:
		return "view-answer"
	case QuestionPrompt:
		return "question-prompt"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

const (
	questionMenu = "Do you want to see [a]nswers, check [n]ext question or go [b]ack? "
	answerMenu   = "Do you want to see [n]ext answer or go [b]ack? "
	nextMenu     = "Do you want to see [n]ext question or go [b]ack? "
)

const (
	keyAnswers = 'a'
	keyNext    = 'n'
	keyBack    = 'b'
)
