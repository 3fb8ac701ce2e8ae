package locale

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedLanguage is returned by Parse for codes outside the table.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language is an ISO 639-1 language code.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
	French  Language = "fr"
	German  Language = "de"
	Hindi   Language = "hi"
	Chinese Language = "zh"
)

// Default is used whenever a language is unknown.
const Default = English

// Languages lists the supported languages in display order.
var Languages = []Language{English, Spanish, French, German, Hindi, Chinese}

// Messages is the user-facing text for one language.
type Messages struct {
	Name               string // Language name in its own script
	Title              string
	Subtitle           string
	Welcome            string // Format string, takes the username
	NoMatch            string
	UsernamePrompt     string
	PasswordPrompt     string
	InvalidCredentials string
	Forbidden          string
	ChatHint           string
	Goodbye            string
}

var tables = map[Language]Messages{
	English: {
		Name:               "English",
		Title:              "Campus_Sathi",
		Subtitle:           "Your Intelligent Campus Assistant",
		Welcome:            "Welcome, %s! Ask me anything about institutional policies, procedures, and announcements.",
		NoMatch:            "I couldn't find that information in our knowledge base. Please contact the administrator for assistance, or try rephrasing your question.",
		UsernamePrompt:     "Enter your username",
		PasswordPrompt:     "Enter your password",
		InvalidCredentials: "Invalid credentials. Please try again.",
		Forbidden:          "You do not have permission to do that.",
		ChatHint:           "Type 'exit' to quit, '/history' to show your transcript.",
		Goodbye:            "Logout",
	},
	Spanish: {
		Name:               "Español",
		Title:              "Campus_Sathi",
		Subtitle:           "Tu Asistente de Campus Inteligente",
		Welcome:            "¡Bienvenido, %s! Pregúntame lo que quieras sobre políticas, procedimientos y anuncios institucionales.",
		NoMatch:            "No pude encontrar esa información en nuestra base de conocimientos. Contacta al administrador o intenta reformular tu pregunta.",
		UsernamePrompt:     "Ingresa tu nombre de usuario",
		PasswordPrompt:     "Ingresa tu contraseña",
		InvalidCredentials: "Credenciales inválidas. Por favor, intenta de nuevo.",
		Forbidden:          "No tienes permiso para hacer eso.",
		ChatHint:           "Escribe 'exit' para salir o '/history' para ver tu historial.",
		Goodbye:            "Cerrar Sesión",
	},
	French: {
		Name:               "Français",
		Title:              "Campus_Sathi",
		Subtitle:           "Votre Assistant de Campus Intelligent",
		Welcome:            "Bienvenue, %s ! Posez-moi vos questions sur les politiques, procédures et annonces de l'établissement.",
		NoMatch:            "Je n'ai pas trouvé cette information dans notre base de connaissances. Contactez l'administrateur ou reformulez votre question.",
		UsernamePrompt:     "Entrez votre nom d'utilisateur",
		PasswordPrompt:     "Entrez votre mot de passe",
		InvalidCredentials: "Identifiants invalides. Veuillez réessayer.",
		Forbidden:          "Vous n'avez pas la permission de faire cela.",
		ChatHint:           "Tapez 'exit' pour quitter ou '/history' pour afficher votre historique.",
		Goodbye:            "Déconnexion",
	},
	German: {
		Name:               "Deutsch",
		Title:              "Campus_Sathi",
		Subtitle:           "Ihr Intelligenter Campus-Assistent",
		Welcome:            "Willkommen, %s! Fragen Sie mich alles zu Richtlinien, Abläufen und Ankündigungen der Einrichtung.",
		NoMatch:            "Ich konnte diese Information in unserer Wissensdatenbank nicht finden. Bitte wenden Sie sich an den Administrator oder formulieren Sie Ihre Frage um.",
		UsernamePrompt:     "Geben Sie Ihren Benutzernamen ein",
		PasswordPrompt:     "Geben Sie Ihr Passwort ein",
		InvalidCredentials: "Ungültige Anmeldedaten. Bitte versuchen Sie es erneut.",
		Forbidden:          "Dazu fehlt Ihnen die Berechtigung.",
		ChatHint:           "Geben Sie 'exit' zum Beenden oder '/history' für Ihren Verlauf ein.",
		Goodbye:            "Abmelden",
	},
	Hindi: {
		Name:               "हिंदी",
		Title:              "Campus_Sathi",
		Subtitle:           "आपका बुद्धिमान कैंपस सहायक",
		Welcome:            "स्वागत है, %s! संस्थान की नीतियों, प्रक्रियाओं और घोषणाओं के बारे में कुछ भी पूछें।",
		NoMatch:            "मुझे यह जानकारी हमारे ज्ञानकोष में नहीं मिली। कृपया सहायता के लिए व्यवस्थापक से संपर्क करें या अपना प्रश्न दूसरे शब्दों में पूछें।",
		UsernamePrompt:     "अपना उपयोगकर्ता नाम दर्ज करें",
		PasswordPrompt:     "अपना पासवर्ड दर्ज करें",
		InvalidCredentials: "अमान्य क्रेडेंशियल। कृपया पुनः प्रयास करें।",
		Forbidden:          "आपको यह करने की अनुमति नहीं है।",
		ChatHint:           "बाहर निकलने के लिए 'exit' और अपना इतिहास देखने के लिए '/history' लिखें।",
		Goodbye:            "लॉगआउट",
	},
	Chinese: {
		Name:               "中文",
		Title:              "Campus_Sathi",
		Subtitle:           "您的智能校园助手",
		Welcome:            "欢迎，%s！您可以询问任何有关学校政策、流程和公告的问题。",
		NoMatch:            "我在知识库中找不到该信息。请联系管理员寻求帮助，或尝试换一种方式提问。",
		UsernamePrompt:     "输入您的用户名",
		PasswordPrompt:     "输入您的密码",
		InvalidCredentials: "凭据无效。请重试。",
		Forbidden:          "您无权执行此操作。",
		ChatHint:           "输入 'exit' 退出，输入 '/history' 查看聊天记录。",
		Goodbye:            "登出",
	},
}

// Parse converts a language code such as "es" or "ES-mx" to a Language.
// Unknown codes return Default together with ErrUnsupportedLanguage.
func Parse(code string) (Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	lang := Language(code)
	if _, ok := tables[lang]; !ok {
		return Default, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return lang, nil
}

// For returns the messages for lang, falling back to English.
func For(lang Language) Messages {
	if msgs, ok := tables[lang]; ok {
		return msgs
	}
	return tables[Default]
}

// WelcomeFor renders the welcome line for username.
func (m Messages) WelcomeFor(username string) string {
	return fmt.Sprintf(m.Welcome, username)
}

// String returns the language code.
func (l Language) String() string {
	return string(l)
}
