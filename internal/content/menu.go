package content

// Button is one inline keyboard cell. Key names the caption (via the
// catalog) and the callback payload; URL buttons open a link instead.
type Button struct {
	Key string
	URL string
}

// Keyboard identifiers referenced by render directives.
const (
	KbStart       = "start"
	KbMaster      = "master"
	KbClient      = "client"
	KbServices    = "services"
	KbServicePage = "service_page"
	KbReviews     = "reviews"
	KbFAQ         = "faq"
	KbSignup      = "signup"
	KbContacts    = "contacts"
)

const (
	signupURL = "https://dikidi.ru/1723277"
)

// keyboards is the declarative menu tree: rows of buttons per keyboard id.
// The transport turns these into actual inline markup.
var keyboards = map[string][][]Button{
	KbStart: {
		{{Key: KeyMaster}, {Key: KeyClient}},
	},
	KbMaster: {
		{{Key: KeyServices}},
	},
	KbClient: {
		{{Key: KeyServices}},
		{{Key: KeyPrice}, {Key: KeyReviews}},
		{{Key: KeyQuiz}},
		{{Key: KeySigning, URL: signupURL}, {Key: KeyConsulting}},
	},
	KbServices: {
		{{Key: KeyKeratin}},
		{{Key: KeyBotox}},
		{{Key: KeyNanoplastic}},
	},
	KbServicePage: {
		{{Key: KeyPrice}, {Key: KeyReviews}},
		{{Key: KeySigning, URL: signupURL}, {Key: KeyConsulting}},
		{{Key: KeyClient}},
	},
	KbReviews: {
		{{Key: KeySigning, URL: signupURL}},
	},
	KbFAQ: {
		{{Key: KeyFAQMore}},
	},
	KbSignup: {
		{{Key: KeySigning, URL: signupURL}},
	},
	KbContacts: {
		{{Key: "channel", URL: "https://t.me/pro_keratin_msk"}},
		{{Key: "telegram", URL: "https://t.me/Tatyana_domaeva"}},
		{{Key: "whatsapp", URL: "https://wa.me/79536333979"}},
		{{Key: "taplink", URL: "https://taplink.cc/prokeratin_msk"}},
	},
}

// pages maps every recognized selection label to the keyboard rendered
// beneath its page. Labels absent here are not menu selections.
var pages = map[string]string{
	KeyStart:       KbStart,
	KeyMaster:      KbMaster,
	KeyClient:      KbClient,
	KeyServices:    KbServices,
	KeyPrice:       KbServicePage,
	KeyReviews:     KbReviews,
	KeyKeratin:     KbServicePage,
	KeyBotox:       KbServicePage,
	KeyNanoplastic: KbServicePage,
	KeyConsulting:  "",
	KeyAbout:       KbMaster,
	KeyGuide:       "",
	KeyFAQ:         KbFAQ,
	KeyFAQMore:     "",
	KeySigning:     KbSignup,
	KeyContacts:    KbContacts,
}

// Page reports the keyboard for a selection label and whether the label is
// part of the menu tree at all.
func Page(label string) (string, bool) {
	kb, ok := pages[label]
	return kb, ok
}

// Keyboard returns the button rows for a keyboard id.
func Keyboard(id string) ([][]Button, bool) {
	rows, ok := keyboards[id]
	return rows, ok
}
