package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// German umlauts are spelled out before diacritics are stripped so that
// "Flöte" becomes "Floete" rather than "Flote".
var umlautReplacer = strings.NewReplacer(
	"ä", "ae", "Ä", "Ae",
	"ö", "oe", "Ö", "Oe",
	"ü", "ue", "Ü", "Ue",
	"ß", "ss",
)

var (
	nonIDChars     = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	repeatedUnders = regexp.MustCompile(`_{2,}`)
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// FoldASCII spells out umlauts and removes remaining diacritics.
func FoldASCII(text string) string {
	text = umlautReplacer.Replace(text)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// Idify turns free text into a string that is valid as a media URI authority:
// ASCII letters, digits, underscore and hyphen. Returns "" when nothing is left.
func Idify(text string) string {
	text = FoldASCII(strings.TrimSpace(text))
	text = nonIDChars.ReplaceAllString(text, "_")
	text = repeatedUnders.ReplaceAllString(text, "_")
	return strings.Trim(text, "_-")
}

// TitleFromID reverses Idify loosely: underscores become spaces and each word
// is title cased. "Ludwig_van_Beethoven" stays "Ludwig Van Beethoven".
func TitleFromID(id string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(id))
	if len(words) == 0 {
		return ""
	}
	caser := cases.Title(language.German, cases.NoLower)
	return caser.String(strings.Join(words, " "))
}
