package email

const (
	subjectPointConfirmationFmt = "Seu ponto de coleta %s foi cadastrado"
)
