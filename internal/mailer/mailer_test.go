package mailer

import (
	"context"
	"testing"

	"childrenlk/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPMessage(t *testing.T) {
	msg, err := OTPMessage("amal@example.com", "Amal", OTPData{Name: "Amal", Code: "042917", TTLMinutes: 10})
	require.NoError(t, err)

	assert.Equal(t, "amal@example.com", msg.To)
	assert.Equal(t, TemplateOTP, msg.Template)
	assert.Contains(t, msg.Text, "042917")
	assert.Contains(t, msg.Text, "10 minutes")
	assert.Contains(t, msg.HTML, "<strong>042917</strong>")
}

func TestCredentialsMessage_EscapesHTML(t *testing.T) {
	msg, err := CredentialsMessage("org@example.com", "Org", CredentialsData{
		Name:             "Org",
		OrganizationName: "<Kids & Co>",
		Email:            "org@example.com",
		Password:         "s3cretpass",
		LoginURL:         "http://localhost:5173/login",
	})
	require.NoError(t, err)

	assert.Contains(t, msg.Text, "<Kids & Co>")
	assert.Contains(t, msg.HTML, "&lt;Kids &amp; Co&gt;")
	assert.Contains(t, msg.Text, "s3cretpass")
}

func TestNew(t *testing.T) {
	m, err := New(&config.Config{MailProvider: "console"})
	require.NoError(t, err)
	assert.NoError(t, m.Send(context.Background(), Message{To: "a@b.c", Subject: "hi"}))

	m, err = New(&config.Config{MailProvider: "sendgrid", SendGridAPIKey: "SG.x", MailFromName: "C", MailFromAddress: "c@d.e"})
	require.NoError(t, err)
	assert.IsType(t, &SendGrid{}, m)

	_, err = New(&config.Config{MailProvider: "smtp"})
	assert.Error(t, err)
}

func TestSendGrid_Prepare(t *testing.T) {
	s := NewSendGrid("SG.x", "Children.lk", "no-reply@children.lk")
	m := s.prepare(Message{To: "a@b.c", ToName: "A", Subject: "S", Text: "t", HTML: "<p>t</p>", Template: TemplateOTP})

	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "S", m.Personalizations[0].Subject)
	assert.Equal(t, "a@b.c", m.Personalizations[0].To[0].Address)
	assert.Len(t, m.Content, 2)
	assert.Equal(t, []string{TemplateOTP}, m.Categories)
}
