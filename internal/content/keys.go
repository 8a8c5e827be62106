package content

// Selection labels. Each doubles as the callback payload of its menu button,
// the content key of its page in texts.json, and the command label audited
// into the contact record.
const (
	KeyStart       = "start"
	KeyMaster      = "master"
	KeyClient      = "client"
	KeyServices    = "services"
	KeyPrice       = "price"
	KeyReviews     = "reviews"
	KeyKeratin     = "keratin"
	KeyBotox       = "botox"
	KeyNanoplastic = "nanoplastic"
	KeyConsulting  = "consulting"
	KeySigning     = "signing"
	KeyQuiz        = "test"
	KeyAbout       = "about"
	KeyGuide       = "guid"
	KeyFAQ         = "faq"
	KeyFAQMore     = "faq_more"
	KeyContacts    = "contacts"
)

// Service pages and acknowledgment texts.
const (
	KeyConsultAck   = "consult_ack"
	KeyContactAck   = "contact_ack"
	KeyFallback     = "fallback"
	KeyFileMissing  = "file_missing"
	KeyNoAccess     = "no_access"
	KeyReloaded     = "reloaded"
	KeyStaleAnswer  = "stale_answer"
	KeyResultLow    = "test_result_low"
	KeyResultMedium = "test_result_medium"
	KeyResultHigh   = "test_result_high"
)
