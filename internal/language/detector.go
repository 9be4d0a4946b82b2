// Package language provides a small heuristic language detector for
// routing template lookups. It is deliberately not a statistical
// classifier: the check order is the tie-break, and it never fails.
package language

import (
	"strings"
	"unicode"
)

// Confidence levels per heuristic. Script evidence is near-certain,
// diacritics are strong, a lexicon hit is weak but usable.
const (
	confidenceCJK       = 0.99
	confidenceDiacritic = 0.85
	confidenceLexicon   = 0.70
	confidenceDefault   = 0.60
)

// frenchDiacritics are accented Latin letters characteristic of French.
const frenchDiacritics = "àâäæçéèêëîïôöœùûüÿÀÂÄÆÇÉÈÊËÎÏÔÖŒÙÛÜŸ"

// frenchLexicon is a fixed stop/keyword set checked against tokens.
var frenchLexicon = map[string]struct{}{
	"le": {}, "la": {}, "les": {}, "un": {}, "une": {}, "des": {},
	"du": {}, "de": {}, "et": {}, "est": {}, "vous": {}, "nous": {},
	"je": {}, "pour": {}, "avec": {}, "quel": {}, "quelle": {},
	"bonjour": {}, "merci": {}, "salut": {}, "oui": {}, "non": {},
	"prix": {}, "horaires": {}, "ouvert": {}, "combien": {},
	"où": {}, "réservation": {}, "s'il": {}, "c'est": {},
}

// Detector guesses the language of an utterance.
type Detector struct{}

// NewDetector returns a heuristic language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns a language code and a confidence score. Checks run
// highest-priority first and short-circuit; the default is English.
func (d *Detector) Detect(text string) (string, float64) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "en", 0
	}

	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return "zh", confidenceCJK
		}
	}

	for _, r := range text {
		if strings.ContainsRune(frenchDiacritics, r) {
			return "fr", confidenceDiacritic
		}
	}

	if countLexiconHits(text) > 0 {
		return "fr", confidenceLexicon
	}

	return "en", confidenceDefault
}

// countLexiconHits tokenizes on letter runs (keeping apostrophes and
// accented letters inside tokens) and counts French lexicon matches.
func countLexiconHits(text string) int {
	hits := 0
	isTokenRune := func(r rune) bool {
		return unicode.IsLetter(r) || r == '\''
	}
	for _, token := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isTokenRune(r)
	}) {
		if _, ok := frenchLexicon[token]; ok {
			hits++
		}
	}
	return hits
}
