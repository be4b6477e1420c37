package portfolio

// Default returns the content the site ships with when no content file is
// configured.
func Default() Content {
	return Content{
		PersonalInfo: PersonalInfo{
			Name:       "Akash Agrawal",
			Title:      "Fullstack Developer",
			Email:      "hello@example.com",
			LinkedIn:   "https://www.linkedin.com/in/akash-agrawal-8b6504104/",
			GitHub:     "https://github.com/marcos-para-garud",
			CodeStudio: "https://www.naukri.com/code360/profile/a85761cc-08bd-427c-bf34-681b4dc2fe0e",
		},
		ProfessionalSummary: `Experienced **Fullstack Developer** with a strong background in building
scalable web applications using React, Node.js, and JavaScript. Proven ability in
developing APIs, designing relational databases, and delivering end-to-end features
using modern frontend frameworks.

Skilled in creating responsive UIs and integrating RESTful web services, with
working knowledge of SQL and HTML5. Experienced in Agile teams, contributing to
reliable, maintainable, and user-focused products.`,
		Skills: Skills{
			"languagesFrameworks":   {"Java", "JavaScript", "Node.js", "Express.js", "React.js", "HTML", "CSS", "Data Structures and Algorithms"},
			"databasesTechnologies": {"MongoDB", "SQL", "DBMS", "MERN Stack", "Redux Toolkit", "Git", "GitHub"},
			"microservicesPayments": {"RabbitMQ", "AMQP", "Stripe API", "Payment Gateway Setup"},
			"devopsCICD":            {"Jenkins", "Docker", "Render", "Jenkins Pipelines"},
			"agileTools":            {"Sprint planning", "Scrum", "JIRA", "Kanban"},
		},
		SkillOrder: []string{"languagesFrameworks", "databasesTechnologies", "microservicesPayments", "devopsCICD", "agileTools"},
		Experience: []Experience{
			{
				ID:       1,
				Title:    "Software Developer",
				Company:  "Bodex",
				Duration: "October 2024 – Present",
				Achievements: []string{
					"Built interactive GeoJSON maps with boundary overlays and table integration; added multi-field filtering (zip, city, etc.), improving data navigation by 40%",
					"Improved mobile retention by 20% and reduced load times by 40%, increasing Lighthouse scores from 70 → 95+",
					"Engineered an event-driven Node.js service to auto-sync external data sources for real-time updates",
					"Implemented secure payment flows using Express.js and resolved backend issues including data inconsistency, broken API responses, and latency bottlenecks, boosting system reliability by 30%",
				},
				TechStack: []string{"Node.js", "Express.js", "React.js", "Redux Toolkit", "TailwindCSS", "GeoJSON", "Jest", "Cypress", "SEO", "Lighthouse"},
			},
			{
				ID:       2,
				Title:    "Software Engineer 1",
				Company:  "ClickIt Tech Solutions",
				Duration: "November 2023 - October 2024",
				Achievements: []string{
					"Designed and implemented employee onboarding and attendance tracking modules in ClickHR, integrating with the payroll service using REST APIs and JWT authentication",
					"Integrated email and notification services to trigger alerts for HR actions such as approval and absence notification",
					"Collaborated in sprint planning and worked with QA teams to resolve reported issues in ERP module features",
				},
				TechStack: []string{"Node.js", "Express.js", "React.js", "SQL", "JIRA"},
			},
		},
		Projects: []Project{
			{
				ID:          1,
				Title:       "FlashCache",
				Subtitle:    "Created My Own Database for Caching",
				Description: "Built FlashCache, an in-memory key-value store inspired by Redis with `Set`/`Get`/`Delete`, TTL, FlushAll, and LRU operations.",
				Features: []string{
					"Implemented Pub/Sub messaging, master-slave replication, and clustering with sharding via consistent hashing",
					"Used Worker Threads for async TTL expiry and Child Processes for non-blocking RDB-style persistence to JSON",
					"Simulates production-grade caching, demonstrating deep understanding of concurrency, replication and scalability",
				},
				TechStack: []string{"Node.js", "Worker Threads", "Child Process", "TCP", "RDB Persistence", "Pub/Sub"},
				GitHub:    "https://github.com/marcos-para-garud/my-redis-project",
			},
			{
				ID:          2,
				Title:       "VideoTweet",
				Subtitle:    "Video Sharing Platform",
				Description: "Built VideoTweet, a video-sharing platform with features like tweeting, comments, likes, subscriptions and uploads.",
				Features: []string{
					"Integrated Stripe for creator to receive payment and designed payment & notification microservices using RabbitMQ",
					"Implemented real-time notifications for user actions like likes, comments, and payments",
					"Containerized with Docker and deployed via Jenkins CI/CD for automation",
				},
				TechStack: []string{"Node.js", "Express.js", "MongoDB", "Stripe API", "RabbitMQ", "React.js", "Docker", "Jenkins", "JWT"},
				GitHub:    "https://github.com/marcos-para-garud/mega-project-backend",
				LiveDemo:  "https://mega-project-backend-1.onrender.com/",
			},
		},
		Achievements: []Achievement{
			{
				ID:          1,
				Title:       "Tech Newsletter Creator",
				Description: `Started my own weekly Tech newsletter "The Engineering Playbook" with 1800+ subscribers on LinkedIn`,
				Icon:        "newsletter",
				Category:    "Content Creation",
				Link:        "https://www.linkedin.com/newsletters/the-engineering-playbook-7312772573631545344/",
			},
			{
				ID:          2,
				Title:       "DSA Problem Solver",
				Description: "Solved more than 600+ DSA questions with a 200+ days streak on Code Studio platform",
				Icon:        "code",
				Category:    "Programming",
			},
			{
				ID:          3,
				Title:       "Code Studio Badges",
				Description: "Earned 2 Masters, 17 Specialists, and 21 Achievers badges on Code Studio platform",
				Icon:        "trophy",
				Category:    "Platform Recognition",
			},
			{
				ID:          4,
				Title:       "Academic Excellence",
				Description: "Awarded Gold Medals from IITs in NPTEL exams and received a tuition fee waiver scholarship from college",
				Icon:        "medal",
				Category:    "Academic",
			},
		},
		Education: []Education{
			{
				ID:          1,
				Degree:      "Full Stack Web Development",
				Institution: "Coding Ninjas",
				Duration:    "May 2023 - Dec 2024",
				GPA:         "4/4",
				Type:        "Certification",
			},
			{
				ID:          2,
				Degree:      "Bachelor of Engineering",
				Institution: "Shree Shankaracharya Group of Institutions",
				GPA:         "9.15/10",
				Type:        "Undergraduate",
			},
		},
	}
}
