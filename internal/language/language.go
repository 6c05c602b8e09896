package language

// Language holds the locale code and welcome text for one supported language.
type Language struct {
	Code    string
	Welcome string
}

// Supported maps language names to their locale code and welcome message.
var Supported = map[string]Language{
	"English": {
		Code: "en",
		Welcome: `👋 Welcome to RAN Ops Assist!

I'm your AI-powered NOC (Network Operations Center) assistant, specialized in Radio Access Network (RAN) operations.

I can help you with:
- Troubleshooting network issues
- Providing insights on alarms and incidents
- Guiding you through NOC best practices

How can I assist you today with your telecom network operations?`,
	},
	"Romanian": {
		Code: "ro",
		Welcome: `👋 Bun venit la RAN Ops Assist!

Sunt asistentul dvs. NOC (Network Operations Center) bazat pe AI, specializat în operațiuni Radio Access Network (RAN).

Vă pot ajuta cu:
- Depanarea problemelor de rețea
- Oferirea de informații despre alarme și incidente
- Ghidarea prin cele mai bune practici NOC

Cum vă pot ajuta astăzi cu operațiunile dvs. de rețea de telecomunicații?`,
	},
	"German": {
		Code: "de",
		Welcome: `👋 Willkommen bei RAN Ops Assist!

Ich bin Ihr KI-gestützter NOC (Network Operations Center) Assistent, spezialisiert auf Radio Access Network (RAN) Betrieb.

Ich kann Ihnen helfen bei:
- Fehlerbehebung von Netzwerkproblemen
- Einblicke in Alarme und Vorfälle
- Anleitung durch NOC Best Practices

Wie kann ich Ihnen heute bei Ihren Telekommunikationsnetzwerk-Operationen helfen?`,
	},
}

// Default is the language used when none is configured.
const Default = "English"

// names keeps a stable order for UI cycling and selectors.
var names = []string{"English", "Romanian", "German"}

// Names returns the supported language names in a stable order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Welcome returns the welcome message for the given language,
// falling back to the default language for unknown names.
func Welcome(name string) string {
	if l, ok := Supported[name]; ok {
		return l.Welcome
	}
	return Supported[Default].Welcome
}

// Next returns the language name following the given one, wrapping around.
// Unknown names restart at the first supported language.
func Next(name string) string {
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
