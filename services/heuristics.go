package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"paper-swipe/models"
)

// Die Regeln in dieser Datei sind feste Schwellwert- und Stichwort-Heuristiken.
// Sie fließen nicht in die Empfehlungen ein.

const (
	PaperOne = "paper1"
	PaperTwo = "paper2"
	Equal    = "equal"

	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"

	promisingMargin = 0.1
	day             = 24 * time.Hour
)

// Comparison ist das Ergebnis von ComparePapers.
type Comparison struct {
	MorePromising    string   `json:"morePromising"`
	Paper1Score      float64  `json:"paper1Score"`
	Paper2Score      float64  `json:"paper2Score"`
	Reasoning        string   `json:"reasoning"`
	Paper1Strengths  []string `json:"paper1Strengths"`
	Paper2Strengths  []string `json:"paper2Strengths"`
	Paper1Weaknesses []string `json:"paper1Weaknesses"`
	Paper2Weaknesses []string `json:"paper2Weaknesses"`
	Recommendation   string   `json:"recommendation"`
}

// ComparePapers bewertet zwei Paper heuristisch. Ein Paper gilt nur dann als
// vielversprechender, wenn es mehr als 0.1 Punkte vorne liegt.
func ComparePapers(p1, p2 models.PaperWithLikes, now time.Time) Comparison {
	s1 := PromisingScore(p1, now)
	s2 := PromisingScore(p2, now)

	c := Comparison{
		MorePromising:    Equal,
		Paper1Score:      s1,
		Paper2Score:      s2,
		Paper1Strengths:  paperStrengths(p1),
		Paper2Strengths:  paperStrengths(p2),
		Paper1Weaknesses: paperWeaknesses(p1),
		Paper2Weaknesses: paperWeaknesses(p2),
	}
	switch {
	case s1 > s2+promisingMargin:
		c.MorePromising = PaperOne
	case s2 > s1+promisingMargin:
		c.MorePromising = PaperTwo
	}

	var verdict string
	switch c.MorePromising {
	case PaperOne:
		verdict = fmt.Sprintf("the first paper %q appears more promising", p1.Title)
		c.Recommendation = focusOn(p1.Title, p2.Title)
	case PaperTwo:
		verdict = fmt.Sprintf("the second paper %q appears more promising", p2.Title)
		c.Recommendation = focusOn(p2.Title, p1.Title)
	default:
		verdict = "both papers show similar promise"
		c.Recommendation = "Both papers offer valuable insights. Consider your specific research goals and how each aligns with your interests and available resources."
	}
	c.Reasoning = "After analyzing both papers, " + verdict +
		". This assessment is based on factors including citation count, recency, novelty indicators, and research scope."
	return c
}

func focusOn(winner, other string) string {
	return fmt.Sprintf("Focus on %q if you're looking for the most promising direction. However, %q may offer complementary insights worth exploring.", winner, other)
}

// PromisingScore vergibt Punkte für Zitationen, Aktualität, Abstract-Länge,
// Keyword-Anzahl und Likes; höchstens 1.
func PromisingScore(p models.PaperWithLikes, now time.Time) float64 {
	var score float64

	switch {
	case p.Citations > 100:
		score += 0.3
	case p.Citations > 50:
		score += 0.2
	case p.Citations > 10:
		score += 0.1
	}

	if p.PublishedDate != nil {
		age := now.Sub(*p.PublishedDate)
		switch {
		case age < 365*day:
			score += 0.2
		case age < 730*day:
			score += 0.1
		}
	}

	switch n := utf8.RuneCountInString(p.Abstract); {
	case n > 500:
		score += 0.2
	case n > 300:
		score += 0.1
	}

	switch n := len(p.Keywords); {
	case n > 5:
		score += 0.15
	case n > 3:
		score += 0.1
	}

	switch {
	case p.LikeCount > 20:
		score += 0.15
	case p.LikeCount > 10:
		score += 0.1
	case p.LikeCount > 5:
		score += 0.05
	}

	if score > 1 {
		return 1
	}
	return score
}

func paperStrengths(p models.PaperWithLikes) []string {
	out := make([]string, 0, 3)
	if p.Citations > 50 {
		out = append(out, "High citation count indicates impact")
	} else {
		out = append(out, "Recent publication")
	}
	if len(p.Keywords) > 5 {
		out = append(out, "Well-categorized with multiple keywords")
	} else {
		out = append(out, "Clear research focus")
	}
	if utf8.RuneCountInString(p.Abstract) > 500 {
		out = append(out, "Comprehensive abstract")
	} else {
		out = append(out, "Concise and clear")
	}
	return out
}

func paperWeaknesses(p models.PaperWithLikes) []string {
	out := []string{}
	if p.Citations < 10 {
		out = append(out, "Low citation count may indicate limited impact")
	}
	if utf8.RuneCountInString(p.Abstract) < 200 {
		out = append(out, "Abstract may lack detail")
	}
	return out
}

var (
	incrementalMarkers = []string{
		"improve", "enhance", "extend", "optimize", "better", "faster", "more accurate",
		"incremental", "baseline", "state-of-the-art", "sota", "existing method",
	}
	foundationalMarkers = []string{
		"novel", "new paradigm", "fundamental", "foundational", "breakthrough",
		"first to", "pioneering", "establish", "introduce", "propose new",
		"unexplored", "unaddressed", "new direction",
	}
)

// Critique ist das Ergebnis von CritiqueIdea.
type Critique struct {
	IsIncremental   bool     `json:"isIncremental"`
	IsFoundational  bool     `json:"isFoundational"`
	Assessment      string   `json:"assessment"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	PotentialIssues []string `json:"potentialIssues"`
	Suggestions     []string `json:"suggestions"`
	TimeInvestment  string   `json:"timeInvestment"`
	RiskLevel       string   `json:"riskLevel"`
	Recommendation  string   `json:"recommendation"`
}

// CritiqueIdea bewertet eine Forschungsidee anhand von Stichwörtern.
// Der Kontext fließt nur in die Einordnung inkrementell/grundlegend ein.
func CritiqueIdea(idea, context string) Critique {
	text := strings.ToLower(idea)
	scope := strings.TrimSpace(text + " " + strings.ToLower(context))
	length := utf8.RuneCountInString(idea)

	c := Critique{
		IsIncremental:  containsAny(scope, incrementalMarkers...),
		IsFoundational: containsAny(scope, foundationalMarkers...),
	}

	switch {
	case c.IsFoundational:
		c.Assessment = "Your research idea appears to be foundational research that could establish new directions in the field. " +
			"This suggests significant potential impact but also higher risk and time investment."
	case c.IsIncremental:
		c.Assessment = "Your research idea appears to be incremental research that builds upon existing work. " +
			"This approach is typically lower risk but may have limited novelty."
	default:
		c.Assessment = "Your research idea appears to be a mix of incremental and foundational elements. " +
			"This approach is typically lower risk but may have limited novelty."
	}

	hasNovelty := containsAny(text, "novel", "new")
	hasProblem := containsAny(text, "problem", "challenge")
	hasMethod := containsAny(text, "method", "approach")

	c.Strengths = []string{}
	if length > 200 {
		c.Strengths = append(c.Strengths, "Well-articulated problem statement")
	}
	if hasNovelty {
		c.Strengths = append(c.Strengths, "Identifies novelty")
	}
	if hasProblem {
		c.Strengths = append(c.Strengths, "Clearly defines the problem")
	}
	if hasMethod {
		c.Strengths = append(c.Strengths, "Proposes a methodology")
	}

	c.Weaknesses = []string{}
	if length < 100 {
		c.Weaknesses = append(c.Weaknesses, "Idea description is too brief - more detail needed")
	}
	if !hasProblem {
		c.Weaknesses = append(c.Weaknesses, "Problem statement could be clearer")
	}
	if !hasMethod {
		c.Weaknesses = append(c.Weaknesses, "Methodology needs more detail")
	}
	if !hasNovelty && !strings.Contains(text, "improve") {
		c.Weaknesses = append(c.Weaknesses, "Novelty claim needs strengthening")
	}

	c.PotentialIssues = []string{}
	if c.IsFoundational {
		c.PotentialIssues = append(c.PotentialIssues, "Foundational research typically requires 6+ months and significant resources")
	}
	if strings.Contains(text, "requires") && strings.Contains(text, "data") {
		c.PotentialIssues = append(c.PotentialIssues, "Data requirements may be a bottleneck")
	}
	if strings.Contains(text, "requires") && strings.Contains(text, "compute") {
		c.PotentialIssues = append(c.PotentialIssues, "Computational requirements may be high")
	}
	if !containsAny(text, "evaluate", "validate") {
		c.PotentialIssues = append(c.PotentialIssues, "Consider how you will evaluate/validate your approach")
	}

	c.Suggestions = []string{
		"Consider conducting a thorough literature review to identify gaps",
		"Define clear success metrics and evaluation criteria",
		"Break down the research into smaller, testable milestones",
		"Consider pilot studies or proof-of-concept experiments",
	}
	if c.IsFoundational {
		c.Suggestions = append(c.Suggestions, "Plan for longer timeline and potential setbacks")
	} else {
		c.Suggestions = append(c.Suggestions, "Consider how to demonstrate clear improvement over baselines")
	}

	switch {
	case c.IsFoundational:
		c.TimeInvestment = LevelHigh
	case length > 500 && strings.Contains(text, "comprehensive"):
		c.TimeInvestment = LevelMedium
	default:
		c.TimeInvestment = LevelLow
	}

	switch {
	case c.IsFoundational:
		c.RiskLevel = LevelHigh
	case len(c.Weaknesses) > 2:
		c.RiskLevel = LevelMedium
	default:
		c.RiskLevel = LevelLow
	}

	switch {
	case c.IsFoundational:
		c.Recommendation = "This appears to be foundational research with high potential impact. However, it comes with significant risk and time investment. Consider starting with a smaller proof-of-concept to validate core assumptions before committing to the full project."
	case c.IsIncremental:
		c.Recommendation = "This incremental approach is lower risk and can be completed in a shorter timeframe. Focus on clearly demonstrating improvements over existing methods and ensuring your contributions are well-defined."
	default:
		c.Recommendation = "This research combines incremental and foundational elements. Consider breaking it into phases: start with incremental improvements to establish a foundation, then explore more foundational aspects."
	}
	return c
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
