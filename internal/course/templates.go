package course

// taskTemplate captures the per-category content of one week's task.
type taskTemplate struct {
	Category Category
	Priority Priority
	Points   []string
}

// weekTemplate is the authored plan for one course week. Weeks 1 and 2
// carry extra assignment and documentation work; later weeks settle
// into a lecture plus workshop rhythm.
type weekTemplate struct {
	Topic string
	Tasks []taskTemplate
}

const FinalWeek = 8

var weekTemplates = map[int]weekTemplate{
	1: {
		Topic: "Introduction to Python and AI",
		Tasks: []taskTemplate{
			{CategoryLecture, PriorityHigh, []string{
				"Python basics for AI",
				"Introduction to generative AI",
				"Setting up development environment",
				"Basic text processing",
			}},
			{CategoryWorkshop, PriorityHigh, []string{
				"Python fundamentals practice",
				"Simple text processing tasks",
				"Basic AI concept exploration",
				"Environment setup verification",
			}},
			{CategoryAssignment, PriorityMedium, []string{
				"Text preprocessing challenge",
				"Simple sentiment analysis",
				"File I/O operations",
				"Basic AI application",
			}},
			{CategoryDocumentation, PriorityLow, []string{
				"README updates",
				"Setup instructions",
				"Troubleshooting guide",
				"Learning resources",
			}},
		},
	},
	2: {
		Topic: "Neural Networks Fundamentals",
		Tasks: []taskTemplate{
			{CategoryLecture, PriorityHigh, []string{
				"Neural network basics",
				"Activation functions",
				"Backpropagation introduction",
				"Simple network implementation",
			}},
			{CategoryWorkshop, PriorityHigh, []string{
				"Build a simple neural network",
				"Experiment with activation functions",
				"Visualize network behavior",
				"Debug common issues",
			}},
			{CategoryAssignment, PriorityMedium, []string{
				"Implement a perceptron",
				"Train on a small dataset",
				"Analyze learning curves",
				"Document findings",
			}},
		},
	},
	3: {
		Topic: "Deep Learning with PyTorch",
		Tasks: []taskTemplate{
			{CategoryLecture, PriorityHigh, []string{
				"PyTorch fundamentals",
				"Tensors and autograd",
				"Building models with nn.Module",
				"Training loops",
			}},
			{CategoryWorkshop, PriorityHigh, []string{
				"PyTorch tensor exercises",
				"Build and train a classifier",
				"GPU acceleration basics",
				"Model debugging techniques",
			}},
		},
	},
	4: {
		Topic: "Natural Language Processing",
		Tasks: []taskTemplate{
			{CategoryLecture, PriorityHigh, []string{
				"Text tokenization and embeddings",
				"Language model basics",
				"Attention mechanisms",
				"Transformer architecture overview",
			}},
			{CategoryWorkshop, PriorityHigh, []string{
				"Tokenization exercises",
				"Work with pre-trained embeddings",
				"Fine-tune a small model",
				"Evaluate NLP outputs",
			}},
		},
	},
	5: {
		Topic: "Large Language Models",
		Tasks: []taskTemplate{
			{CategoryLecture, PriorityHigh, []string{
				"LLM architecture and training",
				"Prompt engineering",
				"API integration patterns",
				"Responsible AI practices",
			}},
			{CategoryWorkshop, PriorityHigh, []string{
				"Prompt engineering practice",
				"Build an LLM-powered application",
				"Compare model outputs",
				"Handle API errors and limits",
			}},
		},
	},
	6: {
		Topic: "Frontend Development for AI Apps",
		Tasks: []taskTemplate{
			{CategoryLecture, PriorityHigh, []string{
				"Web interfaces for AI models",
				"Streaming responses",
				"User experience for AI apps",
				"Deployment considerations",
			}},
			{CategoryWorkshop, PriorityHigh, []string{
				"Build a chat interface",
				"Connect frontend to model API",
				"Handle loading and error states",
				"Polish and deploy",
			}},
		},
	},
	7: {
		Topic: "Automation and CI/CD",
		Tasks: []taskTemplate{
			{CategoryLecture, PriorityHigh, []string{
				"Testing AI applications",
				"Continuous integration pipelines",
				"Automated evaluation",
				"Monitoring deployed models",
			}},
			{CategoryWorkshop, PriorityHigh, []string{
				"Write tests for an AI app",
				"Set up a CI pipeline",
				"Automate model evaluation",
				"Add monitoring hooks",
			}},
		},
	},
	8: {
		Topic: "Capstone Project",
		Tasks: []taskTemplate{
			{CategoryLecture, PriorityHigh, []string{
				"Project planning and scoping",
				"Architecture review",
				"Presentation techniques",
				"Course retrospective",
			}},
			{CategoryWorkshop, PriorityHigh, []string{
				"Capstone project work session",
				"Peer code review",
				"Presentation dry runs",
				"Final demos",
			}},
		},
	},
}
