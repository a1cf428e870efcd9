package insight

import (
	"github.com/pacebudget/backend/internal/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

type text struct {
	title   string
	message string
	args    []string // Var names in message argument order
}

var scopeArgs = []string{"scope"}

var messages = map[language.Tag]map[Key]text{
	language.English: {
		KeyNoBudget:     {"No budget set", "Set an income for this period to track %[1]v.", scopeArgs},
		KeyEarly:        {"Early days", "Day %[1]d of %[2]d. Forecasts start after a few more days.", []string{"days", "totalDays"}},
		KeyNoSpend:      {"Nothing spent yet", "%[1]v has no transactions in this period.", scopeArgs},
		KeyPaceDanger:   {"Spending too fast", "%[1]v has used %[2]v of its budget with %[3]v of the period gone.", []string{"scope", "burn", "pace"}},
		KeyPaceWarn:     {"Slightly ahead of pace", "%[1]v has used %[2]v of its budget with %[3]v of the period gone.", []string{"scope", "burn", "pace"}},
		KeyPaceSuccess:  {"Under pace", "%[1]v has used only %[2]v of its budget with %[3]v of the period gone.", []string{"scope", "burn", "pace"}},
		KeyOverspent:    {"Over budget", "%[1]v is %[2]v over its allocation.", []string{"scope", "amount"}},
		KeyRunOutSoon:   {"Money runs out soon", "At the current pace %[1]v runs out in %[2]d days, on %[3]v.", []string{"scope", "days", "date"}},
		KeyRunOut:       {"Money runs out early", "At the current pace %[1]v runs out in %[2]d days, on %[3]v.", []string{"scope", "days", "date"}},
		KeyPerDayDanger: {"Very tight", "%[1]v leaves %[2]v per day, normally it would be %[3]v.", []string{"scope", "perDay", "normal"}},
		KeyPerDayWarn:   {"Getting tight", "%[1]v leaves %[2]v per day, normally it would be %[3]v.", []string{"scope", "perDay", "normal"}},
		KeyPerDay:       {"Daily allowance", "%[1]v leaves %[2]v per day for the rest of the period.", []string{"scope", "perDay"}},
	},
	language.Italian: {
		KeyNoBudget:     {"Nessun budget", "Imposta un reddito per questo periodo per seguire %[1]v.", scopeArgs},
		KeyEarly:        {"Primi giorni", "Giorno %[1]d di %[2]d. Le previsioni partono tra qualche giorno.", []string{"days", "totalDays"}},
		KeyNoSpend:      {"Ancora nessuna spesa", "%[1]v non ha transazioni in questo periodo.", scopeArgs},
		KeyPaceDanger:   {"Spese troppo veloci", "%[1]v ha usato %[2]v del budget con %[3]v del periodo trascorso.", []string{"scope", "burn", "pace"}},
		KeyPaceWarn:     {"Leggermente in anticipo", "%[1]v ha usato %[2]v del budget con %[3]v del periodo trascorso.", []string{"scope", "burn", "pace"}},
		KeyPaceSuccess:  {"Sotto il ritmo", "%[1]v ha usato solo %[2]v del budget con %[3]v del periodo trascorso.", []string{"scope", "burn", "pace"}},
		KeyOverspent:    {"Budget superato", "%[1]v supera lo stanziamento di %[2]v.", []string{"scope", "amount"}},
		KeyRunOutSoon:   {"Soldi quasi finiti", "Al ritmo attuale %[1]v finisce tra %[2]d giorni, il %[3]v.", []string{"scope", "days", "date"}},
		KeyRunOut:       {"Soldi finiti in anticipo", "Al ritmo attuale %[1]v finisce tra %[2]d giorni, il %[3]v.", []string{"scope", "days", "date"}},
		KeyPerDayDanger: {"Molto stretto", "%[1]v lascia %[2]v al giorno, di solito sarebbero %[3]v.", []string{"scope", "perDay", "normal"}},
		KeyPerDayWarn:   {"Si stringe", "%[1]v lascia %[2]v al giorno, di solito sarebbero %[3]v.", []string{"scope", "perDay", "normal"}},
		KeyPerDay:       {"Disponibile al giorno", "%[1]v lascia %[2]v al giorno per il resto del periodo.", []string{"scope", "perDay"}},
	},
}

var scopeNames = map[language.Tag]map[types.Scope]string{
	language.English: {
		"total":   "Your budget",
		"needs":   "Needs",
		"wants":   "Wants",
		"savings": "Savings",
	},
	language.Italian: {
		"total":   "Il budget",
		"needs":   "Necessità",
		"wants":   "Desideri",
		"savings": "Risparmi",
	},
}

// Languages lists the languages insights can be rendered in.
var Languages = []language.Tag{language.English, language.Italian}

func titleKey(k Key) string {
	return "title." + string(k)
}

func messageKey(k Key) string {
	return "message." + string(k)
}

func scopeKey(s types.Scope) string {
	return "scope." + string(s)
}

func newCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	for tag, texts := range messages {
		for key, t := range texts {
			if err := b.SetString(tag, titleKey(key), t.title); err != nil {
				return nil, err
			}
			if err := b.SetString(tag, messageKey(key), t.message); err != nil {
				return nil, err
			}
		}
	}

	for tag, names := range scopeNames {
		for scope, name := range names {
			if err := b.SetString(tag, scopeKey(scope), name); err != nil {
				return nil, err
			}
		}
	}

	return b, nil
}
