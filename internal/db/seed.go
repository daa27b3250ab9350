package db

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oggyb/mentormatch/internal/logger"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password"

type seedUser struct {
	key, name, email string
	role             Role
	profile          Profile
}

var seedUsers = []seedUser{
	{"mentor1", "Dr. Sarah Chen", "sarah.chen@example.com", RoleMentor, Profile{
		Bio:       "Senior Software Engineer with 10+ years of experience in full-stack development. Passionate about mentoring the next generation of developers.",
		Skills:    "Laravel, React, Docker, AWS, PostgreSQL, System Design",
		Interests: "Web Development, Cloud Architecture, Teaching, Open Source",
		Major:     "Computer Science",
	}},
	{"mentor2", "James Rodriguez", "james.r@example.com", RoleMentor, Profile{
		Bio:       "AI/ML researcher and educator. Love working with students on innovative projects.",
		Skills:    "Python, TensorFlow, PyTorch, NLP, Computer Vision",
		Interests: "Artificial Intelligence, Machine Learning, Research, Innovation",
		Major:     "Artificial Intelligence",
	}},
	{"mentor3", "Emily Watson", "emily.watson@example.com", RoleMentor, Profile{
		Bio:       "UX/UI Designer turned developer. Helping students create beautiful and functional applications.",
		Skills:    "Figma, React, TypeScript, Tailwind CSS, User Research",
		Interests: "UI/UX Design, Frontend Development, Accessibility, User Experience",
		Major:     "Interaction Design",
	}},
	{"mentor4", "Michael Chang", "michael.chang@example.com", RoleMentor, Profile{
		Bio:       "DevOps Engineer with expertise in CI/CD and cloud infrastructure. Happy to guide students in modern development practices.",
		Skills:    "Docker, Kubernetes, Jenkins, GitHub Actions, Terraform",
		Interests: "DevOps, Cloud Computing, Automation, Best Practices",
		Major:     "Software Engineering",
	}},
	{"mentor5", "Dr. Aisha Patel", "aisha.patel@example.com", RoleMentor, Profile{
		Bio:       "Data Scientist and educator. Specializing in statistical analysis and data visualization.",
		Skills:    "Python, R, SQL, Tableau, Data Analysis, Statistics",
		Interests: "Data Science, Analytics, Teaching, Research",
		Major:     "Statistics",
	}},
	{"mentee1", "Alex Thompson", "alex.t@example.com", RoleStudent, Profile{
		Bio:       "Second-year CS student eager to learn web development and build real-world projects.",
		Skills:    "HTML, CSS, JavaScript, Python basics",
		Interests: "Web Development, Mobile Apps, Game Development",
		Major:     "Computer Science",
	}},
	{"mentee2", "Sophia Martinez", "sophia.m@example.com", RoleStudent, Profile{
		Bio:       "Aspiring data scientist looking for guidance in ML projects and career advice.",
		Skills:    "Python, Pandas, NumPy, Basic ML concepts",
		Interests: "Machine Learning, Data Analysis, Research",
		Major:     "Data Science",
	}},
	{"mentee3", "Ryan Lee", "ryan.lee@example.com", RoleStudent, Profile{
		Bio:       "First-year student passionate about building user-friendly applications.",
		Skills:    "React basics, CSS, Figma",
		Interests: "Frontend Development, UI/UX, Design Systems",
		Major:     "Software Engineering",
	}},
	{"mentee4", "Priya Sharma", "priya.s@example.com", RoleStudent, Profile{
		Bio:       "Interested in cloud computing and backend development. Looking to build scalable systems.",
		Skills:    "Java, Spring Boot, MySQL, Basic AWS",
		Interests: "Backend Development, Cloud Services, System Design",
		Major:     "Information Technology",
	}},
	{"mentee5", "David Kim", "david.kim@example.com", RoleStudent, Profile{
		Bio:       "Third-year student working on AI projects and seeking research opportunities.",
		Skills:    "Python, TensorFlow basics, OpenCV",
		Interests: "Computer Vision, Deep Learning, Robotics",
		Major:     "Computer Engineering",
	}},
	{"mentee6", "Isabella Garcia", "isabella.g@example.com", RoleStudent, Profile{
		Bio:       "Passionate about cybersecurity and ethical hacking. Want to learn secure coding practices.",
		Skills:    "Python, Bash, Networking basics",
		Interests: "Cybersecurity, Penetration Testing, Security Research",
		Major:     "Cybersecurity",
	}},
	{"test", "Test User", "test@example.com", RoleStudent, Profile{
		Bio:       "I am the main test user exploring the mentorship platform.",
		Skills:    "Full-stack Development, Testing, Debugging",
		Interests: "Learning, Collaboration, Quality Assurance",
		Major:     "Information Technology",
	}},
}

type seedProject struct {
	title, description string
	deadline           time.Duration
	tags               []string
	owner              string
	members            []string
}

var seedProjects = []seedProject{
	{"Build a Mentorship Portal", "A comprehensive web application to connect mentors and mentees. Features include user profiles, matchmaking, project collaboration, forum discussions, and real-time chat.",
		30 * 24 * time.Hour, []string{"laravel", "react", "docker", "tailwind"}, "mentor1", []string{"mentee1", "mentee3"}},
	{"AI Research Group: LLM Applications", "Researching practical applications of Large Language Models in education. Building tools for automated tutoring and content generation.",
		90 * 24 * time.Hour, []string{"python", "ai", "ml", "nlp"}, "mentor2", []string{"mentee2", "mentee5"}},
	{"Mobile App for Campus Events", "Developing a mobile application to help students discover and organize campus events. Features include event calendar, RSVPs, and social sharing.",
		42 * 24 * time.Hour, []string{"react-native", "firebase", "typescript"}, "mentee1", []string{"mentee3"}},
	{"E-Commerce Platform Development", "Building a full-featured e-commerce platform with payment integration, inventory management, and analytics dashboard.",
		120 * 24 * time.Hour, []string{"vue", "nodejs", "mongodb", "stripe"}, "mentor1", []string{"mentee4"}},
	{"Data Visualization Dashboard", "Creating interactive dashboards for analyzing university enrollment data and student performance metrics.",
		60 * 24 * time.Hour, []string{"python", "dash", "plotly", "pandas"}, "mentor5", []string{"mentee2"}},
	{"Cybersecurity Awareness Platform", "Educational platform with interactive modules teaching cybersecurity best practices and common vulnerabilities.",
		56 * 24 * time.Hour, []string{"security", "education", "web", "gamification"}, "mentee6", []string{"test"}},
}

type seedComment struct{ author, content string }

type seedPost struct {
	author, title, content string
	comments               []seedComment
}

var seedPosts = []seedPost{
	{"mentor1", "Welcome to the Mentorship Portal!", "Hello everyone! I'm excited to be part of this community. As a senior developer, I'm here to help students with web development questions, code reviews, and career advice. Feel free to reach out!", []seedComment{
		{"mentee1", "Thank you for offering to help! I'm looking forward to learning from experienced developers like you."},
		{"test", "This platform is amazing! Excited to connect with both mentors and peers."},
	}},
	{"mentee2", "How to get started with Machine Learning?", "I'm a second-year student interested in ML but feeling overwhelmed by all the resources. What's the best learning path for beginners? Should I start with theory or jump into projects?", []seedComment{
		{"mentor2", "Great question! I recommend starting with Andrew Ng's Machine Learning course on Coursera for theory, then work on simple projects like linear regression on real datasets. The key is balancing theory with hands-on practice."},
		{"mentor5", "Also, make sure you're comfortable with Python and basic statistics. Those are foundational skills that will make learning ML much easier!"},
		{"mentee5", "I started with Kaggle competitions! They have great tutorials and you learn by doing."},
	}},
	{"mentor3", "UI/UX Design Principles Every Developer Should Know", "As someone who transitioned from design to development, I can't stress enough how important it is to understand basic design principles. Here are some key concepts: consistency, visual hierarchy, feedback, and accessibility. Happy to discuss more!", []seedComment{
		{"mentee3", "This is so helpful! I struggle with making my apps look professional. Do you have any resources you'd recommend?"},
		{"mentor3", "Absolutely! Check out \"Refactoring UI\" and \"The Design of Everyday Things\". Also, study apps you like and try to understand why their interfaces work well."},
	}},
	{"mentee4", "Looking for teammates: E-commerce project", "Hi! I'm working on an e-commerce platform as part of my coursework and looking for 2-3 teammates interested in backend development. We'll be using Node.js and MongoDB. Anyone interested?", []seedComment{
		{"mentee1", "I'd be interested! I have some experience with Node.js and want to learn more about backend architecture."},
	}},
	{"test", "Best practices for Docker in development?", "Just started using Docker for my projects. What are some best practices you all follow? Things like multi-stage builds, volume management, etc.", []seedComment{
		{"mentor4", "Great that you're learning Docker! Key tips: 1) Use .dockerignore to exclude unnecessary files, 2) Leverage multi-stage builds for smaller images, 3) Don't run containers as root, 4) Use docker-compose for local dev. I can do a workshop on this if there's interest!"},
		{"test", "A workshop would be amazing! I'd definitely attend."},
	}},
	{"mentee6", "Resources for learning cybersecurity?", "I'm passionate about cybersecurity and want to pursue a career in this field. What certifications, platforms, or projects would you recommend for someone just starting out?", []seedComment{
		{"mentor1", "TryHackMe and HackTheBox are excellent platforms for hands-on learning. For certifications, consider starting with CompTIA Security+ or CEH. Also, learn about OWASP Top 10 vulnerabilities!"},
	}},
}

type seedMessage struct{ from, to, content string }

var seedMessages = []seedMessage{
	{"test", "mentor1", "Hi Dr. Chen! I saw your profile and I'm really interested in learning more about full-stack development. Would you be open to mentoring me?"},
	{"mentor1", "test", "Hi! Of course, I'd be happy to help! What areas are you most interested in learning about?"},
	{"test", "mentor1", "I want to learn about building scalable web applications with Laravel and React. Also interested in Docker and deployment strategies."},
	{"mentor1", "test", "Perfect! Those are great skills to have. Let's set up a video call this week to discuss a learning plan. I can also add you to one of my active projects."},
	{"mentee2", "mentor2", "Hello James! I'm working on a sentiment analysis project and running into issues with model accuracy. Could you help me debug?"},
	{"mentor2", "mentee2", "Sure! Send me your code and dataset description. Let's start by looking at your data preprocessing and feature engineering."},
	{"mentee2", "mentor2", "Thanks! I'll send the GitHub link. Also, do you have time for a quick call tomorrow?"},
	{"mentee3", "mentor3", "Hi Emily! I attended your talk on design systems and found it super helpful. Can I get your feedback on a project I'm working on?"},
	{"mentor3", "mentee3", "Absolutely! I'd love to see what you're working on. Share a Figma link or screenshots and I'll give you detailed feedback."},
	{"mentee1", "mentee3", "Hey Ryan! Want to pair program on the mobile app project this weekend?"},
	{"mentee3", "mentee1", "Yes! Saturday afternoon works for me. Let's work on the event calendar feature."},
}

type seedSwipe struct {
	actor, candidate string
	status           SwipeStatus
}

// Matched pairs are listed in both directions.
var seedSwipes = []seedSwipe{
	{"test", "mentor1", StatusMatched},
	{"mentor1", "test", StatusMatched},
	{"test", "mentor2", StatusLiked},
	{"test", "mentor3", StatusPassed},
	{"mentee1", "mentor1", StatusMatched},
	{"mentor1", "mentee1", StatusMatched},
	{"mentee2", "mentor2", StatusMatched},
	{"mentor2", "mentee2", StatusMatched},
	{"mentee3", "mentor3", StatusMatched},
	{"mentor3", "mentee3", StatusMatched},
	{"mentee4", "mentor5", StatusPassed},
	{"mentee5", "mentor4", StatusPassed},
}

// seedTables lists tables in delete order (children first).
var seedTables = []string{
	"messages", "forum_comments", "forum_posts", "project_members", "projects",
	"swipe_pair_locks", "swipes", "profiles", "users",
}

// SeedTestData resets the database and populates it with demo mentors,
// students, projects, forum threads, chats and swipes.
//
// Behavior:
//  1. Clears every application table.
//  2. Creates 5 mentors, 6 students and test@example.com, all with password "password".
//  3. Adds projects with members, forum posts with comments, chat threads and
//     swipes including mutual matches.
//
// Compatible with both MySQL and SQLite (AUTO_INCREMENT reset skipped for SQLite).
func SeedTestData(db *gorm.DB) error {
	log := logger.With("op", "seed")

	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range seedTables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
			switch tx.Dialector.Name() {
			case "mysql":
				tx.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1")
			case "sqlite":
				tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table)
			}
		}
		log.Info("cleared existing data")

		hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		ids := make(map[string]uint64, len(seedUsers))
		for _, su := range seedUsers {
			profile := su.profile
			u := User{Name: su.name, Email: su.email, PasswordHash: string(hash), Role: su.role, Profile: &profile}
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("failed to create user %s: %w", su.email, err)
			}
			ids[su.key] = u.ID
		}

		now := time.Now().UTC()
		for _, sp := range seedProjects {
			deadline := now.Add(sp.deadline).Truncate(24 * time.Hour)
			p := Project{Title: sp.title, Description: sp.description, Deadline: &deadline, Tags: sp.tags, OwnerID: ids[sp.owner]}
			if err := tx.Omit("Members", "Owner").Create(&p).Error; err != nil {
				return fmt.Errorf("failed to create project %q: %w", sp.title, err)
			}
			for _, key := range append([]string{sp.owner}, sp.members...) {
				if err := tx.Create(&ProjectMember{ProjectID: p.ID, UserID: ids[key]}).Error; err != nil {
					return fmt.Errorf("failed to add project member: %w", err)
				}
			}
		}

		for _, sp := range seedPosts {
			post := ForumPost{UserID: ids[sp.author], Title: sp.title, Content: sp.content}
			if err := tx.Omit("Author", "Comments").Create(&post).Error; err != nil {
				return fmt.Errorf("failed to create post %q: %w", sp.title, err)
			}
			for _, c := range sp.comments {
				comment := ForumComment{PostID: post.ID, UserID: ids[c.author], Content: c.content}
				if err := tx.Omit("Author").Create(&comment).Error; err != nil {
					return fmt.Errorf("failed to create comment: %w", err)
				}
			}
		}

		for _, m := range seedMessages {
			msg := Message{SenderID: ids[m.from], ReceiverID: ids[m.to], Content: m.content}
			if err := tx.Create(&msg).Error; err != nil {
				return fmt.Errorf("failed to create message: %w", err)
			}
		}

		for _, s := range seedSwipes {
			sw := Swipe{ActorID: ids[s.actor], CandidateID: ids[s.candidate], Status: s.status}
			if err := tx.Omit("Candidate").Create(&sw).Error; err != nil {
				return fmt.Errorf("failed to create swipe: %w", err)
			}
		}

		log.Info("seeded demo data",
			"users", len(seedUsers),
			"projects", len(seedProjects),
			"posts", len(seedPosts),
			"messages", len(seedMessages),
			"swipes", len(seedSwipes),
		)
		return nil
	})
}
