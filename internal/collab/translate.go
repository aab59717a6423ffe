package collab

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	appLog "tripboard/internal/log"
)

const translateTTL = 24 * time.Hour

// Lang is a translator language code.
type Lang string

const (
	English Lang = "en"
	Polish  Lang = "pl"
)

func (l Lang) Valid() bool { return l == English || l == Polish }

// Other returns the opposite language.
func (l Lang) Other() Lang {
	if l == Polish {
		return English
	}
	return Polish
}

// Where a translation came from.
const (
	SourceDictionary = "dictionary"
	SourceService    = "service"
	SourceEcho       = "echo"
)

// Translation is the answer of Translate.
type Translation struct {
	Text   string `json:"text"`
	From   Lang   `json:"from"`
	To     Lang   `json:"to"`
	Source string `json:"source"`
}

var englishToPolish = map[string]string{
	"hello":        "cześć",
	"thank you":    "dziękuję",
	"please":       "proszę",
	"excuse me":    "przepraszam",
	"how much":     "ile kosztuje",
	"where is":     "gdzie jest",
	"yes":          "tak",
	"no":           "nie",
	"water":        "woda",
	"food":         "jedzenie",
	"toilet":       "toaleta",
	"help":         "pomoc",
	"good morning": "dzień dobry",
	"good evening": "dobry wieczór",
	"goodbye":      "do widzenia",
	"restaurant":   "restauracja",
	"hotel":        "hotel",
	"train":        "pociąg",
	"bus":          "autobus",
	"ticket":       "bilet",
	"coffee":       "kawa",
	"beer":         "piwo",
	"menu":         "menu",
	"bill":         "rachunek",
	"lemon":        "cytryna",
	"kite":         "latawiec",
	"apple":        "jabłko",
	"book":         "książka",
	"car":          "samochód",
	"house":        "dom",
	"cat":          "kot",
	"dog":          "pies",
}

var polishToEnglish = func() map[string]string {
	m := make(map[string]string, len(englishToPolish))
	for en, pl := range englishToPolish {
		m[pl] = en
	}
	return m
}()

// Lookup consults the built-in dictionary only.
func Lookup(text string, from Lang) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	dict := englishToPolish
	if from == Polish {
		dict = polishToEnglish
	}
	v, ok := dict[key]
	return v, ok
}

type googleRequest struct {
	Q      string `json:"q"`
	Source Lang   `json:"source"`
	Target Lang   `json:"target"`
	Format string `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// TranslatorOptions configure NewTranslator.
type TranslatorOptions struct {
	BaseURL string
	APIKey  string
	Client  HTTPClient
}

// Translator translates between English and Polish: dictionary first, then
// Google Translate v2, then the input itself.
type Translator struct {
	client  HTTPClient
	baseURL string
	apiKey  string
	cache   *expirable.LRU[string, string]
}

func NewTranslator(opts TranslatorOptions) *Translator {
	t := &Translator{
		client:  opts.Client,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		cache:   expirable.NewLRU[string, string](256, nil, translateTTL),
	}
	if t.client == nil {
		t.client = defaultHTTPClient()
	}
	if t.baseURL == "" {
		t.baseURL = "https://translation.googleapis.com"
	}
	return t
}

// Translate never fails: when no translation can be produced the input is
// echoed back with SourceEcho.
func (t *Translator) Translate(ctx context.Context, text string, from Lang) Translation {
	if !from.Valid() {
		from = English
	}
	out := Translation{From: from, To: from.Other()}
	if strings.TrimSpace(text) == "" {
		out.Source = SourceEcho
		return out
	}
	if v, ok := Lookup(text, from); ok {
		out.Text, out.Source = v, SourceDictionary
		return out
	}

	cacheKey := string(from) + "|" + text
	if v, ok := t.cache.Get(cacheKey); ok {
		out.Text, out.Source = v, SourceService
		return out
	}

	translated, err := t.remote(ctx, text, from)
	if err != nil {
		appLog.Error("translation failed; echoing input", err, "from", string(from))
		out.Text, out.Source = text, SourceEcho
		return out
	}
	t.cache.Add(cacheKey, translated)
	out.Text, out.Source = translated, SourceService
	return out
}

func (t *Translator) remote(ctx context.Context, text string, from Lang) (string, error) {
	if t.apiKey == "" {
		return "", unavailable("translate", errors.New("API key not configured"))
	}
	endpoint := t.baseURL + "/language/translate/v2?key=" + url.QueryEscape(t.apiKey)
	body := googleRequest{Q: text, Source: from, Target: from.Other(), Format: "text"}

	var raw googleResponse
	if err := doJSON(ctx, t.client, "translate", 0, postJSONRequest(endpoint, body), &raw); err != nil {
		return "", err
	}
	if len(raw.Data.Translations) == 0 || raw.Data.Translations[0].TranslatedText == "" {
		return "", unavailable("translate", errors.New("empty translation"))
	}
	return raw.Data.Translations[0].TranslatedText, nil
}
