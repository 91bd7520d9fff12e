// Package content holds the copy rendered on the portfolio pages and in the
// chat widget.
package content

var (
	AboutMe = `I build systems that learn, and interfaces that make them feel alive.
	Most of my work sits where optimisation research meets shipping software: evolutionary
	search, model tuning, and the plumbing that gets results in front of people.`

	ResumePath = "assets/resume.pdf"

	WelcomeMessage = "Hello! I'm the portfolio's AI assistant. How can I help you explore my work today?"

	OfflineMessage = "System offline. Please try again later."
)

// QuickAsk is a canned question offered as a button in the chat widget.
type QuickAsk struct {
	Label    string
	Icon     string
	Question string
}

var QuickAsks = []QuickAsk{
	{Label: "About Me", Icon: "👨‍💻", Question: "Tell me about yourself"},
	{Label: "EGO-Optimizer", Icon: "🚀", Question: "Tell me about the EGO-Optimizer"},
	{Label: "Tech Skills", Icon: "💻", Question: "What are your technical skills?"},
}

type Feature struct {
	Title       string
	Description string
}

var Features = []Feature{
	{"Machine Learning", "Model design, hyper-parameter search and evaluation pipelines."},
	{"Optimisation", "Evolutionary and gradient-free search for hard engineering problems."},
	{"Backend", "Go and Python services, APIs and data stores that stay up."},
	{"Interfaces", "Interactive front ends and visualisations with real-time feedback."},
}

type Project struct {
	Name    string
	Summary string
	Link    string
}

var Projects = []Project{
	{
		Name:    "EGO-Optimizer",
		Summary: "An efficient global optimisation toolkit pairing surrogate models with expected-improvement search.",
		Link:    "#showcase",
	},
	{
		Name:    "Portfolio Assistant",
		Summary: "A retrieval-backed chat assistant that answers questions about my work and routes visitors around this site.",
		Link:    "#contact",
	},
	{
		Name:    "Neural Glass",
		Summary: "This site: a Go server with an HTMX chat widget and a pointer-reactive dot-grid background.",
		Link:    "#home",
	},
}

// Entry is one item on the journey timeline.
type Entry struct {
	Title        string
	Organization string
	StartDate    string
	EndDate      string
	LogoPath     string
	BulletPoints []string
}

var Work = []Entry{
	{
		Title:        "Machine Learning Engineer",
		Organization: "Independent",
		StartDate:    "Jan 2023",
		EndDate:      "Present",
		LogoPath:     "images/work.png",
		BulletPoints: []string{
			"Built surrogate-model optimisation tooling that cut tuning runs by an order of magnitude",
			"Shipped a chat assistant over personal project data with retrieval and usage analytics",
			"Maintained deployment pipelines and health monitoring for small production services",
		},
	},
}

var Education = []Entry{
	{
		Title:        "B.Sc. Computer Engineering",
		Organization: "University",
		StartDate:    "Sept 2018",
		EndDate:      "June 2023",
		LogoPath:     "images/education.png",
		BulletPoints: []string{
			"Graduation project on evolutionary optimisation of neural architectures",
			"Relevant coursework: Algorithms, Machine Learning, Distributed Systems",
		},
	},
}
