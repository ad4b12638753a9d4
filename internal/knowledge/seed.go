package knowledge

import "sync"

// defaultNodes is the built-in concept catalog, grouped by subject.
// Load order within a subject is the recommendation tie-break order.
var defaultNodes = []Node{
	// Math
	{ID: "math.counting", Name: "Counting & Number Sense", Subject: "math", Difficulty: 1},
	{ID: "math.addition", Name: "Addition", Subject: "math", Difficulty: 1, Prerequisites: []string{"math.counting"}},
	{ID: "math.subtraction", Name: "Subtraction", Subject: "math", Difficulty: 1, Prerequisites: []string{"math.counting"}, Related: []string{"math.addition"}},
	{ID: "math.multiplication", Name: "Multiplication", Subject: "math", Difficulty: 2, Prerequisites: []string{"math.addition"}},
	{ID: "math.division", Name: "Division", Subject: "math", Difficulty: 2, Prerequisites: []string{"math.multiplication", "math.subtraction"}},
	{ID: "math.fractions", Name: "Fractions", Subject: "math", Difficulty: 3, Prerequisites: []string{"math.division"}},
	{ID: "math.decimals", Name: "Decimals", Subject: "math", Difficulty: 3, Prerequisites: []string{"math.fractions"}, Related: []string{"math.fractions"}},
	{ID: "math.algebra-basics", Name: "Algebra Basics", Subject: "math", Difficulty: 4, Prerequisites: []string{"math.fractions", "math.decimals"}},
	{ID: "math.linear-equations", Name: "Linear Equations", Subject: "math", Difficulty: 5, Prerequisites: []string{"math.algebra-basics"}},

	// Science
	{ID: "sci.scientific-method", Name: "The Scientific Method", Subject: "science", Difficulty: 1},
	{ID: "sci.states-of-matter", Name: "States of Matter", Subject: "science", Difficulty: 2, Prerequisites: []string{"sci.scientific-method"}},
	{ID: "sci.atoms", Name: "Atoms & Elements", Subject: "science", Difficulty: 3, Prerequisites: []string{"sci.states-of-matter"}},
	{ID: "sci.cells", Name: "Cells", Subject: "science", Difficulty: 3, Prerequisites: []string{"sci.scientific-method"}},
	{ID: "sci.photosynthesis", Name: "Photosynthesis", Subject: "science", Difficulty: 4, Prerequisites: []string{"sci.cells", "sci.atoms"}},
}

var defaultItems = []QuizItem{
	{
		ID:           "quiz.math.counting.1",
		Prompt:       "Which number comes right after 39?",
		Options:      []string{"38", "40", "41", "49"},
		CorrectIndex: 1,
		Explanation:  "Counting up by one from 39 gives 40.",
		ConceptID:    "math.counting",
		Difficulty:   1,
	},
	{
		ID:           "quiz.sci.method.1",
		Prompt:       "What do you call a testable prediction in an experiment?",
		Options:      []string{"A theory", "A hypothesis", "A conclusion", "A variable"},
		CorrectIndex: 1,
		Explanation:  "A hypothesis is the testable prediction an experiment checks.",
		ConceptID:    "sci.scientific-method",
		Difficulty:   1,
	},
	{
		ID:           "quiz.math.addition.1",
		Prompt:       "What is 7 + 5?",
		Options:      []string{"10", "11", "12", "13"},
		CorrectIndex: 2,
		Explanation:  "7 + 5 = 12. Count up five from seven.",
		ConceptID:    "math.addition",
		Difficulty:   1,
	},
	{
		ID:           "quiz.math.multiplication.1",
		Prompt:       "What is 6 x 7?",
		Options:      []string{"36", "42", "48", "54"},
		CorrectIndex: 1,
		Explanation:  "6 x 7 = 42, six groups of seven.",
		ConceptID:    "math.multiplication",
		Difficulty:   2,
	},
	{
		ID:           "quiz.math.fractions.1",
		Prompt:       "Which fraction equals 1/2?",
		Options:      []string{"2/6", "3/6", "4/6", "5/6"},
		CorrectIndex: 1,
		Explanation:  "3/6 reduces to 1/2 by dividing both parts by three.",
		ConceptID:    "math.fractions",
		Difficulty:   3,
	},
	{
		ID:           "quiz.sci.states.1",
		Prompt:       "Which state of matter has a fixed volume but no fixed shape?",
		Options:      []string{"Solid", "Liquid", "Gas", "Plasma"},
		CorrectIndex: 1,
		Explanation:  "Liquids keep their volume but take the shape of their container.",
		ConceptID:    "sci.states-of-matter",
		Difficulty:   2,
	},
	{
		ID:           "quiz.sci.photosynthesis.1",
		Prompt:       "What gas do plants release during photosynthesis?",
		Options:      []string{"Carbon dioxide", "Nitrogen", "Oxygen", "Hydrogen"},
		CorrectIndex: 2,
		Explanation:  "Plants take in carbon dioxide and release oxygen.",
		ConceptID:    "sci.photosynthesis",
		Difficulty:   4,
	},
}

var defaultGraph = sync.OnceValue(func() *Graph {
	g, err := NewGraph(defaultNodes, defaultItems)
	if err != nil {
		// ALLOW-PANIC: the built-in catalog is compile-time data; a bad
		// seed is a programming error, not a runtime condition.
		panic(err)
	}
	return g
})

// Default returns the built-in concept graph, constructed once.
func Default() *Graph {
	return defaultGraph()
}
