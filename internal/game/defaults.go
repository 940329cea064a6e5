package game

// DefaultQuestions returns the built-in question set used whenever AI
// generation fails or a game reaches start with no questions assigned.
func DefaultQuestions() []Question {
	return []Question{
		{
			Text:          "What is the capital of France?",
			Options:       []string{"London", "Berlin", "Paris", "Madrid"},
			CorrectAnswer: 2,
			TimeLimit:     30,
		},
		{
			Text:          "Which planet is known as the Red Planet?",
			Options:       []string{"Venus", "Mars", "Jupiter", "Saturn"},
			CorrectAnswer: 1,
			TimeLimit:     30,
		},
		{
			Text:          "What is 2 + 2?",
			Options:       []string{"3", "4", "5", "6"},
			CorrectAnswer: 1,
			TimeLimit:     30,
		},
	}
}
