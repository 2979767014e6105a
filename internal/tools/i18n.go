package tools

import "strings"

// IsEnglish reports whether replies should be in English for language.
func IsEnglish(language string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(language)), "en")
}

type messages struct {
	balance          string
	accountNotFound  string
	clientIDRequired string
	accountsFailed   string
	invalidPeriod    string
}

var (
	messagesUK = messages{ //nolint: gochecknoglobals
		balance:          "Баланс на рахунку {account}: {amount} {currency}",
		accountNotFound:  "Рахунок {account} не знайдено.",
		clientIDRequired: "Потрібен ідентифікатор клієнта, щоб отримати рахунки.",
		accountsFailed:   "Наразі не вдається отримати рахунки. Спробуйте пізніше.",
		invalidPeriod: "Будь ласка, вкажіть коректний період для виписки: дата початку не може бути " +
			"пізнішою за дату завершення, а дати не можуть бути в майбутньому.",
	}
	messagesEN = messages{ //nolint: gochecknoglobals
		balance:          "Balance on account {account}: {amount} {currency}",
		accountNotFound:  "Account {account} not found.",
		clientIDRequired: "I need the client ID to retrieve accounts.",
		accountsFailed:   "Cannot retrieve accounts right now.",
		invalidPeriod: "Please provide a valid statement period: the start date must not be after " +
			"the end date and dates cannot be in the future.",
	}
)

func messagesFor(language string) messages {
	if IsEnglish(language) {
		return messagesEN
	}

	return messagesUK
}

func format(template string, pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(template)
}
