package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConfig struct{ enabled bool }

func (c stubConfig) GetEmailEnabled() bool       { return c.enabled }
func (c stubConfig) GetSMTPHost() string         { return "smtp.example.com" }
func (c stubConfig) GetSMTPPort() int            { return 587 }
func (c stubConfig) GetSMTPUsername() string     { return "" }
func (c stubConfig) GetSMTPPassword() string     { return "" }
func (c stubConfig) GetEmailFromName() string    { return "Ecoleta" }
func (c stubConfig) GetEmailFromAddress() string { return "noreply@example.com" }

func TestRenderPointConfirmation(t *testing.T) {
	subject, content, err := renderPointConfirmation(PointConfirmation{
		PointID:  7,
		Name:     "Mercado <Bom>",
		City:     "São Paulo",
		UF:       "SP",
		Items:    []string{"Lâmpadas", "Óleo de Cozinha"},
		PointURL: "https://ecoleta.example.com/api/v1/points/7",
	})
	require.NoError(t, err)

	assert.Equal(t, "Seu ponto de coleta Mercado <Bom> foi cadastrado", subject)
	assert.Contains(t, content, "Mercado &lt;Bom&gt;")
	assert.Contains(t, content, "São Paulo/SP")
	assert.Contains(t, content, "<li>Lâmpadas</li>")
	assert.Contains(t, content, `href="https://ecoleta.example.com/api/v1/points/7"`)
}

func TestRenderPointConfirmationWithoutLink(t *testing.T) {
	_, content, err := renderPointConfirmation(PointConfirmation{Name: "Recicla", City: "Campinas", UF: "SP"})
	require.NoError(t, err)
	assert.NotContains(t, content, "Ver ponto de coleta")
	assert.NotContains(t, content, "Itens coletados")
}

func TestNewSender(t *testing.T) {
	sender := NewSender(stubConfig{enabled: false})
	assert.IsType(t, NoopSender{}, sender)
	assert.NoError(t, sender.SendPointConfirmationEmail(context.Background(), "a@b.com", PointConfirmation{}))

	assert.IsType(t, &SMTPSender{}, NewSender(stubConfig{enabled: true}))
}
