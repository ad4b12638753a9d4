package knowledge

// Node is one concept in the knowledge graph. Nodes are immutable after
// load; prerequisite edges must form a DAG.
type Node struct {
	ID            string
	Name          string
	Subject       string
	Difficulty    int // 1 (introductory) to 5+ (advanced)
	Prerequisites []string
	Related       []string
}

// QuizItem is one multiple-choice item owned by a concept. Immutable.
type QuizItem struct {
	ID           string
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  string
	ConceptID    string
	Difficulty   int
}
