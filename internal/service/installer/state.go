package installer

// InstallState accumulates the values collected by the wizard steps. The env
// tags drive serialization into the runtime .env file.
type InstallState struct {
	Token       string `env:"LUMI_TELEGRAM_TOKEN"`
	AdminChatID int64  `env:"LUMI_ADMIN_CHAT_ID"`
}

func NewInstallState() *InstallState {
	return &InstallState{}
}
