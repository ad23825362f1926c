package seeder

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Content synthesizes human-readable strings. It carries no constraint
// responsibility: windows, statuses and uniqueness are decided elsewhere.
type Content struct {
	s *Sampler
}

func NewContent(sampler *Sampler) *Content {
	return &Content{s: sampler}
}

var firstNames = []string{
	"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank",
	"Grace", "Henry", "José", "María", "René", "Zoë", "Sören", "Linh",
	"Olga", "Pedro", "Ivana", "Tomás",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "García", "Miller",
	"Davis", "Rodríguez", "Martínez", "Nguyễn", "Müller", "Dvořák",
	"Fernández", "O'Brien", "Kowalski",
}

var occupations = []string{
	"Video editor", "Engineer", "Accountant", "Data Scientist", "Designer",
	"Project Manager", "Copywriter", "Photographer", "Web Developer",
	"Financial Analyst", "Product Manager", "Translator", "Architect",
	"Nutritionist", "Sound Technician",
}

var subjectWords = []string{
	"Workflow", "Strategy", "Toolkit", "Pipeline", "Portfolio", "Blueprint",
	"Framework", "Playbook", "Essentials", "Masterclass", "Lab", "Studio",
	"Bootcamp", "Practice", "Method",
}

var freeEmailDomains = []string{"gmail.com", "yahoo.com", "outlook.com", "hotmail.com"}

var mainCategoryAreas = []string{
	"Programming", "Business", "Design", "Marketing", "Technology", "Arts",
	"Engineering", "Communication", "Data Science", "Digital Media",
}

var coursePrefixes = []string{
	"Mastering", "Advanced", "Introduction to", "Professional",
	"Complete Guide to", "Essential", "Practical", "Modern",
	"Fundamentals of", "Ultimate",
}

var catchPhrases = []string{
	"streamlined deliverable orchestration", "proactive workflow design",
	"scalable creative production", "results-driven project delivery",
	"cross-functional collaboration", "sustainable quality practices",
	"iterative skill development", "industry-grade tooling",
}

var fillerSentences = []string{
	"Each section builds on the previous one with worked examples.",
	"Short assignments reinforce the material between sessions.",
	"The examples come from real projects, trimmed down for clarity.",
	"Expect a mix of theory, demonstration and guided practice.",
	"Earlier material is revisited whenever a new concept depends on it.",
	"Common mistakes are called out as they come up.",
	"The pace picks up once the fundamentals are in place.",
	"Supplementary reading is linked from every section.",
}

// PersonName draws a synthetic full name. Some entries carry diacritics on
// purpose so username/email folding gets exercised.
func (c *Content) PersonName() string {
	return c.s.pick(firstNames) + " " + c.s.pick(lastNames)
}

// Occupation draws a job title used as a course/category subject.
func (c *Content) Occupation() string {
	return c.s.pick(occupations)
}

// FreeEmailDomain draws a consumer mail domain.
func (c *Content) FreeEmailDomain() string {
	return c.s.pick(freeEmailDomains)
}

var foldTransformer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// asciiFold strips diacritics so natural keys stay plain ASCII.
func asciiFold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}

// Username derives a username candidate from a person name: folded,
// lowercased, spaces and apostrophes removed.
func Username(name string) string {
	folded := strings.ToLower(asciiFold(name))
	folded = strings.ReplaceAll(folded, " ", "")
	return strings.ReplaceAll(folded, "'", "")
}

// EmailLocal derives the local part of an email address from a person name.
func EmailLocal(name string) string {
	folded := strings.ToLower(asciiFold(name))
	folded = strings.ReplaceAll(folded, " ", ".")
	return strings.ReplaceAll(folded, "'", "")
}

// CategoryName produces a category title. With a base area the area is
// qualified by a subject word; without one a templated name is drawn.
func (c *Content) CategoryName(area string) string {
	if area != "" {
		return area + " " + c.s.pick(subjectWords)
	}
	patterns := []string{
		c.s.pick(occupations) + " Training",
		c.s.pick(subjectWords) + " Studies",
		"Advanced " + c.s.pick(subjectWords),
		c.s.pick(occupations) + " Development",
		"Professional " + c.s.pick(occupations),
		"Digital " + c.s.pick(subjectWords),
		c.s.pick(subjectWords) + " Technology",
		c.s.pick(subjectWords) + " Innovation",
	}
	return c.s.pick(patterns)
}

// CourseTitle produces a prefixed course title.
func (c *Content) CourseTitle() string {
	return c.s.pick(coursePrefixes) + " " + c.s.pick(occupations) + " " + c.s.pick(subjectWords)
}

// CourseDescription produces the multi-sentence course blurb.
func (c *Content) CourseDescription() string {
	return fmt.Sprintf("This comprehensive course focuses on %s. "+
		"Learn essential skills in %s. "+
		"Master the fundamentals with hands-on projects and real-world applications. "+
		"By the end of this course, you'll be proficient in %s.",
		c.s.pick(catchPhrases), c.s.pick(catchPhrases), c.s.pick(catchPhrases))
}

// CourseTopic extracts the main topic from a course title by stripping the
// known prefixes.
func CourseTopic(title string) string {
	t := strings.TrimSpace(title)
	for _, prefix := range coursePrefixes {
		if strings.HasPrefix(t, prefix) {
			t = strings.TrimSpace(t[len(prefix):])
		}
	}
	return t
}

var chapterTopicSets = map[string][]string{
	"Video editor": {
		"Introduction to Video Editing Basics",
		"Video Composition and Framing",
		"Advanced Editing Techniques",
		"Color Correction and Grading",
		"Audio Editing and Sound Design",
		"Transitions and Effects",
		"Project Organization and Workflow",
		"Final Output and Delivery",
	},
	"Engineer": {
		"Engineering Fundamentals",
		"Design Principles and Methodology",
		"Technical Analysis and Planning",
		"Project Implementation Strategies",
		"Quality Assurance and Testing",
		"Documentation and Standards",
		"Performance Optimization",
		"Professional Best Practices",
	},
	"Design": {
		"Design Fundamentals and Principles",
		"User Experience and Interface Design",
		"Visual Composition and Layout",
		"Color Theory and Typography",
		"Interactive Design Patterns",
		"Prototyping and Testing",
		"Design Systems and Standards",
		"Advanced Design Techniques",
	},
	"Development": {
		"Core Development Concepts",
		"Software Architecture and Design",
		"Code Quality and Best Practices",
		"Testing and Debugging Strategies",
		"Performance Optimization",
		"Security Implementation",
		"Deployment and Maintenance",
		"Advanced Development Patterns",
	},
	"Management": {
		"Management Principles and Theory",
		"Leadership and Team Building",
		"Strategic Planning and Execution",
		"Resource Allocation and Optimization",
		"Performance Management",
		"Risk Management and Mitigation",
		"Change Management Strategies",
		"Organizational Development",
	},
}

// ChapterTitle produces a chapter title contextual to the course topic,
// using a curated set when the topic matches one and generic patterns
// otherwise.
func (c *Content) ChapterTitle(topic string) string {
	for key, set := range chapterTopicSets {
		if strings.Contains(strings.ToLower(topic), strings.ToLower(key)) {
			return c.s.pick(set)
		}
	}
	patterns := []string{
		fmt.Sprintf("Understanding %s Fundamentals", topic),
		fmt.Sprintf("Core Principles of %s", topic),
		fmt.Sprintf("Advanced %s Concepts", topic),
		fmt.Sprintf("Practical %s Applications", topic),
		fmt.Sprintf("Professional %s Techniques", topic),
		fmt.Sprintf("%s Best Practices", topic),
		fmt.Sprintf("%s Analysis and Implementation", topic),
		fmt.Sprintf("Mastering %s Skills", topic),
	}
	return c.s.pick(patterns)
}

// ChapterDescription is the fixed blurb stored alongside a chapter title.
func ChapterDescription(title string) string {
	return "Comprehensive coverage of " + title
}

// LessonTitle produces a lesson title that follows the chapter's logical
// progression: introductory patterns first, capstone patterns last.
func (c *Content) LessonTitle(chapterTitle string, number, total int) string {
	topic := chapterTitle
	if idx := strings.LastIndex(chapterTitle, ":"); idx >= 0 {
		topic = strings.TrimSpace(chapterTitle[idx+1:])
	}

	var patterns []string
	switch {
	case number == 1:
		patterns = []string{
			"Fundamentals of " + topic,
			"Introduction to " + topic,
			"Getting Started with " + topic,
			"Core Concepts of " + topic,
		}
	case number == total:
		patterns = []string{
			"Advanced Applications in " + topic,
			"Mastering " + topic,
			"Professional " + topic + " Techniques",
			"Real-world " + topic + " Projects",
		}
	default:
		ratio := float64(number) / float64(total)
		switch {
		case ratio < 0.33:
			patterns = []string{
				"Understanding " + topic + " Principles",
				"Essential " + topic + " Concepts",
				"Building Blocks of " + topic,
				topic + " Foundations",
			}
		case ratio < 0.66:
			patterns = []string{
				"Practical " + topic + " Applications",
				"Implementing " + topic,
				topic + " in Practice",
				"Working with " + topic,
			}
		default:
			patterns = []string{
				"Advanced " + topic + " Techniques",
				"Professional " + topic + " Skills",
				"Complex " + topic + " Scenarios",
				"Optimizing " + topic,
			}
		}
	}
	return c.s.pick(patterns)
}

func (c *Content) objectives(topic string) []string {
	pool := []string{
		"Understand key concepts of " + topic,
		"Apply practical techniques in " + topic,
		"Analyze various approaches to " + topic,
		"Evaluate best practices in " + topic,
		"Implement effective solutions for " + topic,
		"Master advanced techniques in " + topic,
	}
	return c.sampleStrings(pool, 3)
}

func (c *Content) keyPoints(topic string) []string {
	pool := []string{
		"Essential principles of " + topic,
		"Common challenges in " + topic + " and their solutions",
		"Best practices for " + topic + " implementation",
		"Important considerations when working with " + topic,
		"Industry standards for " + topic,
		"Professional tips for " + topic,
	}
	return c.sampleStrings(pool, 3)
}

func (c *Content) exercises(topic string) []string {
	pool := []string{
		"Implement a basic " + topic + " solution",
		"Analyze a real-world " + topic + " scenario",
		"Optimize an existing " + topic + " implementation",
		"Troubleshoot common " + topic + " issues",
		"Design a complete " + topic + " solution",
		"Review and improve " + topic + " performance",
	}
	return c.sampleStrings(pool, 3)
}

func (c *Content) sampleStrings(pool []string, k int) []string {
	perm := c.s.Perm(len(pool))
	out := make([]string, 0, k)
	for _, i := range perm[:k] {
		out = append(out, pool[i])
	}
	return out
}

func (c *Content) paragraph(sentences int) string {
	parts := make([]string, 0, sentences)
	for i := 0; i < sentences; i++ {
		parts = append(parts, c.s.pick(fillerSentences))
	}
	return strings.Join(parts, " ")
}

// LessonBody produces structured lesson content for the given lesson type
// (VIDEO, TEXT or QUIZ) and title.
func (c *Content) LessonBody(lessonType, title string) string {
	topic := title
	if idx := strings.LastIndex(title, "of "); idx >= 0 {
		topic = strings.TrimSpace(title[idx+len("of "):])
	}

	switch lessonType {
	case "VIDEO":
		return c.videoBody(topic)
	case "QUIZ":
		return c.quizBody(topic)
	default:
		return c.textBody(topic)
	}
}

func (c *Content) textBody(topic string) string {
	var b strings.Builder
	b.WriteString("Learning Objectives:\n")
	for _, obj := range c.objectives(topic) {
		b.WriteString("- " + obj + "\n")
	}
	b.WriteString("\nIntroduction:\n" + c.paragraph(3) + "\n")
	b.WriteString("\nKey Concepts:\n")
	for _, p := range c.keyPoints(topic) {
		b.WriteString("- " + p + "\n")
	}
	b.WriteString("\nDetailed Explanation:\n" + c.paragraph(4) + "\n" + c.paragraph(3) + "\n")
	b.WriteString("\nPractice Exercises:\n")
	for i, ex := range c.exercises(topic) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ex)
	}
	b.WriteString("\nSummary:\n" + c.paragraph(2))
	return b.String()
}

func (c *Content) videoBody(topic string) string {
	var b strings.Builder
	b.WriteString("Learning Objectives:\n")
	for _, obj := range c.objectives(topic) {
		b.WriteString("- " + obj + "\n")
	}
	fmt.Fprintf(&b, "\nVideo Outline:\n1. Introduction to %s\n2. Core Concepts and Principles\n"+
		"3. Practical Demonstrations\n4. Common Challenges and Solutions\n5. Best Practices and Tips\n", topic)
	b.WriteString("\nKey Points to Remember:\n")
	for _, p := range c.keyPoints(topic) {
		b.WriteString("- " + p + "\n")
	}
	b.WriteString("\nAfter Watching:\n- Practice the demonstrated techniques\n" +
		"- Complete the hands-on exercises\n- Review the key concepts")
	return b.String()
}

func (c *Content) quizBody(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Quiz Overview:\nThis quiz will test your understanding of %s.\n", topic)
	for i, quizTopic := range c.keyPoints(topic) {
		fmt.Fprintf(&b, "\nQuestion %d: Regarding %s, explain how you would:\n", i+1, quizTopic)
		b.WriteString("A) " + c.s.pick(fillerSentences) + "\n")
		b.WriteString("B) " + c.s.pick(fillerSentences) + "\n")
		b.WriteString("C) " + c.s.pick(fillerSentences) + "\n")
		b.WriteString("D) " + c.s.pick(fillerSentences) + "\n")
	}
	b.WriteString("\nNote: Complete all questions and review your answers carefully.")
	return b.String()
}

var reviewsByStars = map[int][]string{
	5: {
		"Exceptionally well-structured course with great practical examples.",
		"Outstanding content and delivery. Highly recommended!",
		"The course exceeded my expectations. Very comprehensive!",
		"Excellent instructor and material. Really helped my understanding.",
	},
	4: {
		"Good course with helpful content.",
		"Solid material and well-presented information.",
		"Useful content and good examples.",
		"Clear explanations and practical applications.",
	},
	3: {
		"Decent course but could use more examples.",
		"Basic coverage of the topics.",
		"Adequate content but needs more depth.",
		"Okay course overall, meets basic requirements.",
	},
	2: {
		"Content could be more engaging.",
		"Needs more practical examples.",
		"Some concepts were not explained clearly.",
		"Course structure needs improvement.",
	},
	1: {
		"Content needs significant improvement.",
		"Explanations were unclear and confusing.",
		"Did not meet expectations.",
		"Needs major updates and revisions.",
	},
}

// ReviewText produces a review appropriate for a star rating (1 to 5).
func (c *Content) ReviewText(stars int) string {
	pool, ok := reviewsByStars[stars]
	if !ok {
		pool = reviewsByStars[3]
	}
	return c.s.pick(fillerSentences) + " " + c.s.pick(pool)
}
