package masters

import (
	"fmt"
	"net/url"
	"strings"

	"baldr/internal/master"
)

const defaultWikipediaLanguage = "de"

// Wikipedia embeds an article. The short form is `lang:Title`, e.g.
// `de:Ludwig_van_Beethoven`; without a language prefix German is assumed.
type Wikipedia struct{}

func (Wikipedia) Name() string        { return "wikipedia" }
func (Wikipedia) DisplayName() string { return "Wikipedia" }

func (Wikipedia) FieldsDefinition() map[string]master.FieldDefinition {
	return map[string]master.FieldDefinition{
		"title":    {Type: master.TypeString, Required: true, Description: "Article title with underscores."},
		"language": {Type: master.TypeString, Default: defaultWikipediaLanguage},
		"oldid":    {Type: master.TypeNumber, Description: "Pin a specific revision."},
	}
}

func (Wikipedia) NormalizeFieldsInput(raw any) (master.Fields, error) {
	switch v := raw.(type) {
	case string:
		lang, title, ok := strings.Cut(strings.TrimSpace(v), ":")
		if !ok || len(lang) != 2 {
			return master.Fields{"title": strings.TrimSpace(v)}, nil
		}
		return master.Fields{"language": lang, "title": title}, nil
	case map[string]any:
		return master.Fields(v).Clone(), nil
	default:
		return nil, errUnsupportedInput("wikipedia", raw)
	}
}

func (Wikipedia) CollectFieldsOnInstantiation(fields master.Fields) (master.Fields, error) {
	title := strings.ReplaceAll(strings.TrimSpace(fields.String("title")), " ", "_")
	if title == "" {
		return nil, fmt.Errorf("empty article title")
	}
	lang := fields.String("language")
	out := fields.Clone()
	out["title"] = title
	out["httpUrl"] = wikipediaURL(lang, title, fields, false)
	out["embedHttpUrl"] = wikipediaURL(lang, title, fields, true)
	return out, nil
}

func wikipediaURL(lang, title string, fields master.Fields, mobile bool) string {
	host := lang + ".wikipedia.org"
	if mobile {
		host = lang + ".m.wikipedia.org"
	}
	u := url.URL{Scheme: "https", Host: host, Path: "/wiki/" + title}
	if oldid, ok := fields.Int("oldid"); ok {
		u.RawQuery = url.Values{"oldid": {fmt.Sprint(oldid)}}.Encode()
	}
	return u.String()
}

func (Wikipedia) DeriveTitleFromFields(fields master.Fields) string {
	return humanizeID(fields.String("title"))
}

func (Wikipedia) DerivePlainTextFromFields(fields master.Fields) string {
	return fmt.Sprintf("%s (%s.wikipedia.org)", humanizeID(fields.String("title")), fields.String("language"))
}
